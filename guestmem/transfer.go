package guestmem

import (
	"github.com/wippyai/abiwire"
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
	"go.uber.org/zap"
)

// Transfer copies buf into a new guest allocation and consumes buf. The
// returned handle's capacity equals its length. A null or empty buffer
// transfers as the null handle without allocating.
//
// If allocation or the copy fails buf is left untouched and still owned by
// the caller.
func Transfer(mem abiwire.Memory, alloc abiwire.Allocator, buf *ffi.Buffer) (Handle, error) {
	data := buf.View()
	if len(data) == 0 {
		if err := buf.Destroy(); err != nil {
			return Handle{}, err
		}
		return Handle{}, nil
	}
	if uint64(len(data)) > uint64(^uint32(0)) {
		return Handle{}, errors.CapacityExceeded(errors.PhaseTransfer, len(data), int(^uint32(0)))
	}
	size := uint32(len(data))

	ptr, err := alloc.Alloc(size, 1)
	if err != nil {
		return Handle{}, err
	}
	if ptr == 0 {
		return Handle{}, errors.AllocationFailed(errors.PhaseTransfer, size, 1, nil)
	}
	if err := mem.Write(ptr, data); err != nil {
		alloc.Free(ptr, size, 1)
		return Handle{}, err
	}
	if err := buf.Destroy(); err != nil {
		alloc.Free(ptr, size, 1)
		return Handle{}, err
	}

	Logger().Debug("buffer transferred to guest",
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", size))
	return Handle{Capacity: uint64(size), Len: uint64(size), Data: ptr}, nil
}

// Reclaim copies the bytes of a guest handle into a new host buffer and frees
// the guest allocation. The null handle reclaims as the null buffer.
func Reclaim(mem abiwire.Memory, alloc abiwire.Allocator, h Handle) (ffi.Buffer, error) {
	if err := h.validate(); err != nil {
		return ffi.Buffer{}, err
	}
	if h.IsNull() {
		return ffi.New(), nil
	}

	view, err := mem.Read(h.Data, uint32(h.Len))
	if err != nil {
		return ffi.Buffer{}, err
	}
	data := make([]byte, len(view))
	copy(data, view)

	alloc.Free(h.Data, uint32(h.Capacity), 1)

	Logger().Debug("buffer reclaimed from guest",
		zap.Uint32("ptr", h.Data),
		zap.Uint64("len", h.Len),
		zap.Uint64("capacity", h.Capacity))
	return ffi.FromBytes(data), nil
}

// TransferTo transfers buf and stores the resulting handle at ptr.
func TransferTo(mem abiwire.Memory, alloc abiwire.Allocator, ptr uint32, buf *ffi.Buffer) error {
	h, err := Transfer(mem, alloc, buf)
	if err != nil {
		return err
	}
	if err := Store(mem, ptr, h); err != nil {
		if !h.IsNull() {
			alloc.Free(h.Data, uint32(h.Capacity), 1)
		}
		return err
	}
	return nil
}

// ReclaimFrom loads the handle at ptr, reclaims it and nulls the stored
// handle so the guest cannot free it again.
func ReclaimFrom(mem abiwire.Memory, alloc abiwire.Allocator, ptr uint32) (ffi.Buffer, error) {
	h, err := Load(mem, ptr)
	if err != nil {
		return ffi.Buffer{}, err
	}
	buf, err := Reclaim(mem, alloc, h)
	if err != nil {
		return ffi.Buffer{}, err
	}
	if err := Store(mem, ptr, Handle{}); err != nil {
		_ = buf.Destroy()
		return ffi.Buffer{}, err
	}
	return buf, nil
}
