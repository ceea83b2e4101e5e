package metadata

import (
	"sync"

	"github.com/wippyai/abiwire/errors"
)

// MaxSize is the accumulator capacity in bytes.
const MaxSize = 16384

// Builder accumulates fingerprint bytes. The first append that would exceed
// MaxSize is recorded and every later append is ignored.
type Builder struct {
	bytes [MaxSize]byte
	size  int
	err   error
}

var builderPool = sync.Pool{
	New: func() any {
		return new(Builder)
	},
}

// NewBuilder returns an empty builder. Release it with Build or MustBuild.
func NewBuilder() *Builder {
	b := builderPool.Get().(*Builder)
	b.size = 0
	b.err = nil
	return b
}

func (b *Builder) reserve(n int) bool {
	if b.err != nil {
		return false
	}
	if b.size+n > MaxSize {
		b.err = errors.CapacityExceeded(errors.PhaseFingerprint, b.size+n, MaxSize)
		return false
	}
	return true
}

// Code appends a single type code.
func (b *Builder) Code(c Code) *Builder {
	return b.Value(byte(c))
}

// Value appends a raw byte.
func (b *Builder) Value(v byte) *Builder {
	if b.reserve(1) {
		b.bytes[b.size] = v
		b.size++
	}
	return b
}

// Concat appends another fingerprint.
func (b *Builder) Concat(f Fingerprint) *Builder {
	if b.reserve(len(f.data)) {
		b.size += copy(b.bytes[b.size:], f.data)
	}
	return b
}

// Bool appends a boolean as one byte.
func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Value(1)
	}
	return b.Value(0)
}

// U32 appends v as four little-endian bytes.
func (b *Builder) U32(v uint32) *Builder {
	if b.reserve(4) {
		b.bytes[b.size] = byte(v)
		b.bytes[b.size+1] = byte(v >> 8)
		b.bytes[b.size+2] = byte(v >> 16)
		b.bytes[b.size+3] = byte(v >> 24)
		b.size += 4
	}
	return b
}

// Str appends a string shorter than 256 bytes with a one-byte length prefix.
func (b *Builder) Str(s string) *Builder {
	if b.err == nil && len(s) >= 256 {
		b.err = errors.InvalidInput(errors.PhaseFingerprint, "string must be shorter than 256 bytes")
		return b
	}
	if b.reserve(1 + len(s)) {
		b.bytes[b.size] = byte(len(s))
		b.size++
		b.size += copy(b.bytes[b.size:], s)
	}
	return b
}

// LongStr appends a string with a two-byte little-endian length prefix.
func (b *Builder) LongStr(s string) *Builder {
	if b.err == nil && len(s) > 0xffff {
		b.err = errors.InvalidInput(errors.PhaseFingerprint, "string must be shorter than 65536 bytes")
		return b
	}
	if b.reserve(2 + len(s)) {
		b.bytes[b.size] = byte(len(s))
		b.bytes[b.size+1] = byte(len(s) >> 8)
		b.size += 2
		b.size += copy(b.bytes[b.size:], s)
	}
	return b
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int {
	return b.size
}

// Build returns the accumulated fingerprint and releases the builder.
// The builder must not be used afterwards.
func (b *Builder) Build() (Fingerprint, error) {
	f, err := Fingerprint{data: string(b.bytes[:b.size])}, b.err
	b.err = nil
	b.size = 0
	builderPool.Put(b)
	if err != nil {
		return Fingerprint{}, err
	}
	return f, nil
}

// MustBuild is like Build but panics if the capacity was exceeded.
func (b *Builder) MustBuild() Fingerprint {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// Generic composes the fingerprint of a generic type from its code and the
// fingerprints of its type parameters.
func Generic(c Code, params ...Fingerprint) (Fingerprint, error) {
	b := NewBuilder().Code(c)
	for _, p := range params {
		b.Concat(p)
	}
	return b.Build()
}

// MustGeneric is like Generic but panics on error.
func MustGeneric(c Code, params ...Fingerprint) Fingerprint {
	f, err := Generic(c, params...)
	if err != nil {
		panic(err)
	}
	return f
}
