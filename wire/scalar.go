package wire

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/abiwire/metadata"
)

type number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Scalar is the codec of a fixed-width number. Scalars are lowered to
// themselves and cross the boundary by value.
type Scalar[T number] struct {
	code metadata.Code
	size int
	fp   metadata.Fingerprint
	put  func([]byte, T) []byte
	get  func([]byte) T
}

func newScalar[T number](code metadata.Code, size int, put func([]byte, T) []byte, get func([]byte) T) *Scalar[T] {
	return &Scalar[T]{
		code: code,
		size: size,
		fp:   metadata.FromCode(code),
		put:  put,
		get:  get,
	}
}

var (
	U8 = newScalar(metadata.TypeU8, 1,
		func(b []byte, v uint8) []byte { return append(b, v) },
		func(b []byte) uint8 { return b[0] })
	I8 = newScalar(metadata.TypeI8, 1,
		func(b []byte, v int8) []byte { return append(b, byte(v)) },
		func(b []byte) int8 { return int8(b[0]) })
	U16 = newScalar(metadata.TypeU16, 2,
		func(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) },
		binary.BigEndian.Uint16)
	I16 = newScalar(metadata.TypeI16, 2,
		func(b []byte, v int16) []byte { return binary.BigEndian.AppendUint16(b, uint16(v)) },
		func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) })
	U32 = newScalar(metadata.TypeU32, 4,
		func(b []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(b, v) },
		binary.BigEndian.Uint32)
	I32 = newScalar(metadata.TypeI32, 4,
		func(b []byte, v int32) []byte { return binary.BigEndian.AppendUint32(b, uint32(v)) },
		func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
	U64 = newScalar(metadata.TypeU64, 8,
		func(b []byte, v uint64) []byte { return binary.BigEndian.AppendUint64(b, v) },
		binary.BigEndian.Uint64)
	I64 = newScalar(metadata.TypeI64, 8,
		func(b []byte, v int64) []byte { return binary.BigEndian.AppendUint64(b, uint64(v)) },
		func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) })
	F32 = newScalar(metadata.TypeF32, 4,
		func(b []byte, v float32) []byte { return binary.BigEndian.AppendUint32(b, math.Float32bits(v)) },
		func(b []byte) float32 { return math.Float32frombits(binary.BigEndian.Uint32(b)) })
	F64 = newScalar(metadata.TypeF64, 8,
		func(b []byte, v float64) []byte { return binary.BigEndian.AppendUint64(b, math.Float64bits(v)) },
		func(b []byte) float64 { return math.Float64frombits(binary.BigEndian.Uint64(b)) })
)

// Lower returns v unchanged.
func (s *Scalar[T]) Lower(v T) T { return v }

// Lift returns v unchanged.
func (s *Scalar[T]) Lift(v T) (T, error) { return v, nil }

func (s *Scalar[T]) Write(buf []byte, v T) []byte {
	return s.put(buf, v)
}

func (s *Scalar[T]) Read(r *Reader) (T, error) {
	b, err := r.Take(s.size, s.code.String())
	if err != nil {
		var zero T
		return zero, err
	}
	return s.get(b), nil
}

func (s *Scalar[T]) Fingerprint() metadata.Fingerprint { return s.fp }

func (s *Scalar[T]) Default() T {
	var zero T
	return zero
}

// Size returns the encoded width in bytes.
func (s *Scalar[T]) Size() int { return s.size }
