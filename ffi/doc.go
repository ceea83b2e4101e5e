// Package ffi defines the memory layouts that cross the ABI boundary.
//
// # Buffer
//
// Buffer is an owned byte buffer whose ownership moves across the boundary.
// Its layout matches the C struct
//
//	struct Buffer { uint64_t capacity; uint64_t len; uint8_t *data; };
//
// A Buffer created on this side from a Go byte slice keeps the backing array
// registered and pinned until the Buffer is destroyed, so the data pointer
// stays valid while foreign code owns it. Destroying is the only way to get
// the bytes back; a Buffer that is never destroyed leaks its allocation, the
// same way a moved-out allocation would.
//
// A null data pointer with zero capacity and length is the empty sentinel and
// is never dereferenced.
//
// # ForeignBytes
//
// ForeignBytes is a read-only view of memory owned by the caller, valid for
// the duration of a single call:
//
//	struct ForeignBytes { int32_t len; const uint8_t *data; };
//
// # CallStatus
//
// CallStatus is the four-state outcome envelope filled in by the call
// mechanism:
//
//	struct CallStatus { uint32_t code; Buffer error; };
//
// # Thread Safety
//
// A Buffer may be destroyed on a different goroutine than the one that
// created it. The ownership registry is safe for concurrent use; a single
// Buffer value must still be owned by exactly one party at a time.
package ffi
