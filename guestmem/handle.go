package guestmem

import (
	"github.com/wippyai/abiwire"
	"github.com/wippyai/abiwire/errors"
)

// Layout of a buffer handle in wasm32 linear memory.
const (
	HandleSize  = 24
	HandleAlign = 8

	offsetCapacity = 0
	offsetLen      = 8
	offsetData     = 16
)

// Handle is a buffer handle as seen by a wasm32 guest.
type Handle struct {
	Capacity uint64
	Len      uint64
	Data     uint32
}

// IsNull reports whether h is the null sentinel.
func (h Handle) IsNull() bool {
	return h.Data == 0
}

// validate checks the same invariants the host applies to its own handles.
func (h Handle) validate() error {
	if h.Data == 0 {
		if h.Capacity != 0 || h.Len != 0 {
			return errors.InvalidHandle(errors.PhaseTransfer, "null guest buffer had capacity %d and length %d", h.Capacity, h.Len)
		}
		return nil
	}
	if h.Len > h.Capacity {
		return errors.InvalidHandle(errors.PhaseTransfer, "guest buffer length %d exceeds capacity %d", h.Len, h.Capacity)
	}
	if h.Capacity > uint64(^uint32(0))-uint64(h.Data) {
		return errors.OutOfBounds(errors.PhaseTransfer, h.Data, uint32(min(h.Capacity, uint64(^uint32(0)))))
	}
	return nil
}

// Store writes h at ptr. ptr must be 8-byte aligned.
func Store(mem abiwire.Memory, ptr uint32, h Handle) error {
	if ptr%HandleAlign != 0 {
		return errors.InvalidInput(errors.PhaseTransfer, "handle address is not 8-byte aligned")
	}
	if err := mem.WriteU64(ptr+offsetCapacity, h.Capacity); err != nil {
		return err
	}
	if err := mem.WriteU64(ptr+offsetLen, h.Len); err != nil {
		return err
	}
	if err := mem.WriteU32(ptr+offsetData, h.Data); err != nil {
		return err
	}
	return mem.WriteU32(ptr+offsetData+4, 0)
}

// Load reads a handle from ptr.
func Load(mem abiwire.Memory, ptr uint32) (Handle, error) {
	if ptr%HandleAlign != 0 {
		return Handle{}, errors.InvalidInput(errors.PhaseTransfer, "handle address is not 8-byte aligned")
	}
	var h Handle
	var err error
	if h.Capacity, err = mem.ReadU64(ptr + offsetCapacity); err != nil {
		return Handle{}, err
	}
	if h.Len, err = mem.ReadU64(ptr + offsetLen); err != nil {
		return Handle{}, err
	}
	if h.Data, err = mem.ReadU32(ptr + offsetData); err != nil {
		return Handle{}, err
	}
	return h, nil
}
