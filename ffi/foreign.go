package ffi

import (
	"math"
	"unsafe"

	"github.com/wippyai/abiwire/errors"
)

// ForeignBytes is a borrowed, read-only view of caller-owned memory.
// It is never destroyed by this side.
type ForeignBytes struct {
	len  int32
	data unsafe.Pointer
}

// BorrowRawParts wraps a pointer and length received from the caller.
// The caller guarantees data stays valid and unmodified for the duration of the call.
func BorrowRawParts(data unsafe.Pointer, length int32) ForeignBytes {
	return ForeignBytes{len: length, data: data}
}

// Borrow returns a view of b for passing arguments within the same process.
// b must stay alive for as long as the view is used.
func Borrow(b []byte) ForeignBytes {
	if len(b) == 0 {
		return ForeignBytes{}
	}
	if len(b) > math.MaxInt32 {
		panic(errors.Overflow(errors.PhaseLower, "bytes", len(b), "int32"))
	}
	return ForeignBytes{len: int32(len(b)), data: unsafe.Pointer(unsafe.SliceData(b))}
}

// Len returns the length field as received.
func (f ForeignBytes) Len() int32 {
	return f.len
}

// IsEmpty reports whether the view has zero length.
func (f ForeignBytes) IsEmpty() bool {
	return f.len == 0
}

// Bytes returns the viewed memory. A null pointer with zero length yields an
// empty slice.
func (f ForeignBytes) Bytes() ([]byte, error) {
	if f.len < 0 {
		return nil, errors.Overflow(errors.PhaseLift, "bytes", f.len, "size")
	}
	if f.data == nil {
		if f.len != 0 {
			return nil, errors.InvalidHandle(errors.PhaseLift, "null foreign bytes had non-zero length %d", f.len)
		}
		return []byte{}, nil
	}
	return unsafe.Slice((*byte)(f.data), int(f.len)), nil
}
