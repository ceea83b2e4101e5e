package ffi

import (
	"math"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/abiwire/errors"
)

// Buffer is an owned byte buffer handed across the ABI boundary by value.
type Buffer struct {
	capacity uint64
	len      uint64
	data     unsafe.Pointer
}

type allocation struct {
	backing []byte // full capacity
	pinner  runtime.Pinner
}

var (
	liveMu sync.Mutex
	live   = make(map[unsafe.Pointer]*allocation)
)

// New returns an empty Buffer.
func New() Buffer {
	return Buffer{}
}

// NewWithSize returns a Buffer holding size zero bytes.
func NewWithSize(size uint64) Buffer {
	return FromBytes(make([]byte, size))
}

// FromBytes transfers ownership of b's backing array into a Buffer.
// The caller must not touch b afterwards. A slice with zero capacity
// becomes the null sentinel.
//
// FromBytes panics if the backing array is already owned by a live Buffer.
func FromBytes(b []byte) Buffer {
	if cap(b) == 0 {
		return Buffer{}
	}

	backing := b[:cap(b)]
	data := unsafe.Pointer(unsafe.SliceData(backing))

	a := &allocation{backing: backing}
	a.pinner.Pin(data)

	liveMu.Lock()
	if _, exists := live[data]; exists {
		liveMu.Unlock()
		a.pinner.Unpin()
		panic("ffi: byte slice is already owned by a live Buffer")
	}
	live[data] = a
	liveMu.Unlock()

	return Buffer{
		capacity: uint64(cap(b)),
		len:      uint64(len(b)),
		data:     data,
	}
}

// FromRawParts reassembles a Buffer from the three fields received across
// the boundary.
//
// The caller asserts that data, length and capacity describe a single
// allocation previously produced by FromBytes and not yet destroyed, or that
// data is nil and both sizes are zero. Violations are reported when the
// Buffer is destroyed.
func FromRawParts(data unsafe.Pointer, length, capacity uint64) Buffer {
	return Buffer{
		capacity: capacity,
		len:      length,
		data:     data,
	}
}

// Len returns the number of valid bytes.
func (b Buffer) Len() uint64 {
	return b.len
}

// Capacity returns the size of the backing allocation.
func (b Buffer) Capacity() uint64 {
	return b.capacity
}

// IsEmpty reports whether the buffer holds no bytes.
func (b Buffer) IsEmpty() bool {
	return b.len == 0
}

// IsNull reports whether the buffer is the null sentinel.
func (b Buffer) IsNull() bool {
	return b.data == nil
}

// Data returns the data pointer. It is valid only while the caller owns the Buffer.
func (b Buffer) Data() unsafe.Pointer {
	return b.data
}

// View returns the buffer contents without taking ownership.
// The slice must not be retained or modified past the next ownership transfer.
func (b Buffer) View() []byte {
	if b.data == nil || b.len == 0 || b.len > b.capacity || b.len > math.MaxInt {
		return nil
	}
	return unsafe.Slice((*byte)(b.data), int(b.len))
}

// DestroyIntoBytes consumes the buffer and returns its bytes, reclaiming the
// backing allocation. b is reset to the null sentinel.
func (b *Buffer) DestroyIntoBytes() ([]byte, error) {
	h := *b
	*b = Buffer{}

	// Foreign code may pass a null pointer to cheaply represent an empty buffer.
	if h.data == nil {
		if h.capacity != 0 {
			return nil, errors.InvalidHandle(errors.PhaseTransfer, "null buffer had non-zero capacity %d", h.capacity)
		}
		if h.len != 0 {
			return nil, errors.InvalidHandle(errors.PhaseTransfer, "null buffer had non-zero length %d", h.len)
		}
		return nil, nil
	}

	if h.len > h.capacity {
		return nil, errors.InvalidHandle(errors.PhaseTransfer, "buffer length %d exceeds capacity %d", h.len, h.capacity)
	}
	if h.capacity > math.MaxInt {
		return nil, errors.Overflow(errors.PhaseTransfer, "buffer", h.capacity, "int")
	}

	liveMu.Lock()
	a, ok := live[h.data]
	matches := ok && uint64(cap(a.backing)) == h.capacity
	if matches {
		delete(live, h.data)
	}
	liveMu.Unlock()

	if !ok {
		Logger().Warn("destroy of unowned buffer",
			zap.Uintptr("data", uintptr(h.data)),
			zap.Uint64("len", h.len),
			zap.Uint64("capacity", h.capacity))
		return nil, errors.InvalidHandle(errors.PhaseTransfer, "buffer is not owned by this side (already destroyed or foreign allocation)")
	}
	if !matches {
		return nil, errors.InvalidHandle(errors.PhaseTransfer, "buffer capacity %d does not match allocation capacity %d", h.capacity, cap(a.backing))
	}

	a.pinner.Unpin()
	return a.backing[:h.len:h.capacity], nil
}

// Destroy consumes the buffer and releases its allocation.
func (b *Buffer) Destroy() error {
	_, err := b.DestroyIntoBytes()
	return err
}

// Outstanding returns the number of buffers created by FromBytes that have
// not been destroyed yet.
func Outstanding() int {
	liveMu.Lock()
	defer liveMu.Unlock()
	return len(live)
}
