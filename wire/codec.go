package wire

import (
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/metadata"
)

// Typed is implemented by anything that carries a type fingerprint.
type Typed interface {
	Fingerprint() metadata.Fingerprint
}

// Codec encodes and decodes values of type T embedded in a larger buffer.
type Codec[T any] interface {
	Typed

	// Write appends the encoding of v to buf.
	Write(buf []byte, v T) []byte
	// Read consumes exactly one encoding of T from r.
	Read(r *Reader) (T, error)
	// Default returns the safe zero value of T.
	Default() T
}

// Converter is a Codec that also converts T to and from the lowered form F
// passed across the boundary.
type Converter[T, F any] interface {
	Codec[T]

	Lower(v T) F
	Lift(v F) (T, error)
}

// Encode returns the encoding of v.
func Encode[T any](c Codec[T], v T) []byte {
	return c.Write(nil, v)
}

// Decode decodes a self-contained encoding. All of data must be consumed.
func Decode[T any](c Codec[T], data []byte) (T, error) {
	r := NewReader(data)
	v, err := c.Read(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if n := r.Remaining(); n != 0 {
		var zero T
		return zero, errors.TrailingData(errors.PhaseLift, c.Fingerprint().Describe(), n)
	}
	return v, nil
}

// LowerIntoBuffer encodes v into a fresh Buffer whose ownership passes to the caller.
func LowerIntoBuffer[T any](c Codec[T], v T) ffi.Buffer {
	return ffi.FromBytes(c.Write(nil, v))
}

// LiftFromBuffer destroys buf and decodes its contents. Leftover bytes fail
// with trailing_data.
func LiftFromBuffer[T any](c Codec[T], buf ffi.Buffer) (T, error) {
	data, err := buf.DestroyIntoBytes()
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(c, data)
}

// LiftFromForeign decodes a borrowed argument without taking ownership.
func LiftFromForeign[T any](c Codec[T], fb ffi.ForeignBytes) (T, error) {
	data, err := fb.Bytes()
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(c, data)
}
