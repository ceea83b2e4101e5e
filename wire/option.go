package wire

import (
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/metadata"
)

const (
	tagAbsent  = 0
	tagPresent = 1
)

// OptionCodec encodes an optional value as a nil or non-nil pointer.
type OptionCodec[T any] struct {
	inner Codec[T]
	fp    metadata.Fingerprint
	name  string
}

// Option returns the codec for option<T>.
func Option[T any](inner Codec[T]) *OptionCodec[T] {
	fp := metadata.MustGeneric(metadata.TypeOption, inner.Fingerprint())
	return &OptionCodec[T]{inner: inner, fp: fp, name: fp.Describe()}
}

func (c *OptionCodec[T]) Lower(v *T) ffi.Buffer {
	return LowerIntoBuffer[*T](c, v)
}

func (c *OptionCodec[T]) Lift(buf ffi.Buffer) (*T, error) {
	return LiftFromBuffer[*T](c, buf)
}

func (c *OptionCodec[T]) Write(buf []byte, v *T) []byte {
	if v == nil {
		return append(buf, tagAbsent)
	}
	buf = append(buf, tagPresent)
	return c.inner.Write(buf, *v)
}

func (c *OptionCodec[T]) Read(r *Reader) (*T, error) {
	b, err := r.Take(1, c.name)
	if err != nil {
		return nil, err
	}
	switch b[0] {
	case tagAbsent:
		return nil, nil
	case tagPresent:
		v, err := c.inner.Read(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, errors.InvalidEncoding(errors.PhaseLift, c.name, b[0], "unexpected tag byte for Option")
	}
}

func (c *OptionCodec[T]) Fingerprint() metadata.Fingerprint { return c.fp }

func (c *OptionCodec[T]) Default() *T { return nil }

// Some returns a pointer to v, for building option values inline.
func Some[T any](v T) *T {
	return &v
}
