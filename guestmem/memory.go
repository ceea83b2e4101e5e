// Package guestmem moves owned buffers across a WebAssembly boundary.
//
// A guest compiled for wasm32 sees a buffer handle as the same three-field
// record the host uses, laid out with a 32-bit data pointer:
//
//	offset  0  capacity  u64
//	offset  8  len       u64
//	offset 16  data      u32 (+4 bytes padding)
//
// Transfer copies a host buffer into a fresh guest allocation and consumes
// the host buffer. Reclaim does the reverse and frees the guest allocation.
package guestmem

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/abiwire"
	"github.com/wippyai/abiwire/errors"
)

// WrapMemory adapts a wazero api.Memory to abiwire.Memory.
func WrapMemory(mem api.Memory) abiwire.Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem}
}

// WrapAllocator adapts a guest realloc export (cabi_realloc signature) to
// abiwire.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) abiwire.Allocator {
	if fn == nil {
		return nil
	}
	return &Allocator{Ctx: ctx, Fn: fn}
}

// Memory adapts wazero api.Memory to abiwire.Memory.
type Memory struct {
	Mem api.Memory
}

func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseTransfer, offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseTransfer, offset, uint32(len(data)))
	}
	return nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseTransfer, offset, 4)
	}
	return v, nil
}

// ReadU64 reads an unsigned 64-bit little-endian value.
func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.Mem.ReadUint64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseTransfer, offset, 8)
	}
	return v, nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.Mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseTransfer, offset, 4)
	}
	return nil
}

// WriteU64 writes an unsigned 64-bit little-endian value.
func (m *Memory) WriteU64(offset uint32, value uint64) error {
	if !m.Mem.WriteUint64Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseTransfer, offset, 8)
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.Mem.Size()
}

// Allocator calls a guest realloc export: realloc(0, 0, align, size)
// allocates and realloc(ptr, size, align, 0) frees.
type Allocator struct {
	Ctx context.Context
	Fn  api.Function
}

func (a *Allocator) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseTransfer, size, align, err)
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseTransfer, size, align, nil)
	}
	return uint32(results[0]), nil
}

func (a *Allocator) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
