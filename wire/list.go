package wire

import (
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/metadata"
)

// ListCodec encodes an ordered sequence.
type ListCodec[T any] struct {
	elem Codec[T]
	fp   metadata.Fingerprint
	name string
}

// List returns the codec for list<T>.
func List[T any](elem Codec[T]) *ListCodec[T] {
	fp := metadata.MustGeneric(metadata.TypeVec, elem.Fingerprint())
	return &ListCodec[T]{elem: elem, fp: fp, name: fp.Describe()}
}

func (c *ListCodec[T]) Lower(v []T) ffi.Buffer {
	return LowerIntoBuffer[[]T](c, v)
}

func (c *ListCodec[T]) Lift(buf ffi.Buffer) ([]T, error) {
	return LiftFromBuffer[[]T](c, buf)
}

func (c *ListCodec[T]) Write(buf []byte, v []T) []byte {
	buf = appendLength(buf, len(v), c.name)
	for _, item := range v {
		buf = c.elem.Write(buf, item)
	}
	return buf
}

func (c *ListCodec[T]) Read(r *Reader) ([]T, error) {
	n, err := r.ReadLength(c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, capHint(n, r))
	for i := 0; i < n; i++ {
		item, err := c.elem.Read(r)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *ListCodec[T]) Fingerprint() metadata.Fingerprint { return c.fp }

func (c *ListCodec[T]) Default() []T { return []T{} }
