package wire

import (
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/metadata"
)

// MapCodec encodes an unordered key-value map. Pair order on the wire is not
// meaningful; duplicate keys on decode keep the last value.
type MapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
	fp    metadata.Fingerprint
	name  string
}

// Map returns the codec for map<K, V>.
func Map[K comparable, V any](key Codec[K], value Codec[V]) *MapCodec[K, V] {
	fp := metadata.MustGeneric(metadata.TypeHashMap, key.Fingerprint(), value.Fingerprint())
	return &MapCodec[K, V]{key: key, value: value, fp: fp, name: fp.Describe()}
}

func (c *MapCodec[K, V]) Lower(v map[K]V) ffi.Buffer {
	return LowerIntoBuffer[map[K]V](c, v)
}

func (c *MapCodec[K, V]) Lift(buf ffi.Buffer) (map[K]V, error) {
	return LiftFromBuffer[map[K]V](c, buf)
}

func (c *MapCodec[K, V]) Write(buf []byte, v map[K]V) []byte {
	buf = appendLength(buf, len(v), c.name)
	for key, value := range v {
		buf = c.key.Write(buf, key)
		buf = c.value.Write(buf, value)
	}
	return buf
}

func (c *MapCodec[K, V]) Read(r *Reader) (map[K]V, error) {
	n, err := r.ReadLength(c.name)
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, capHint(n, r))
	for i := 0; i < n; i++ {
		key, err := c.key.Read(r)
		if err != nil {
			return nil, err
		}
		value, err := c.value.Read(r)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func (c *MapCodec[K, V]) Fingerprint() metadata.Fingerprint { return c.fp }

func (c *MapCodec[K, V]) Default() map[K]V { return make(map[K]V) }
