package guestmem

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/abiwire"
	"github.com/wippyai/abiwire/errors"
)

// HeapBase is the first address the loopback allocator hands out.
const HeapBase = 1024

// Loopback is a minimal guest instance: exported linear memory and a bump
// allocator behind a cabi_realloc export. Frees are ignored.
type Loopback struct {
	rt    wazero.Runtime
	mod   api.Module
	mem   abiwire.Memory
	alloc abiwire.Allocator
}

// NewLoopback instantiates a loopback guest with the given number of 64 KiB
// memory pages.
func NewLoopback(ctx context.Context, pages uint32) (*Loopback, error) {
	if pages == 0 || pages > 65536 {
		return nil, errors.InvalidInput(errors.PhaseTransfer, "memory pages must be between 1 and 65536")
	}

	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, loopbackModule(pages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseTransfer, errors.KindUnexpectedError, err, "instantiate loopback guest")
	}

	return &Loopback{
		rt:    rt,
		mod:   mod,
		mem:   WrapMemory(mod.ExportedMemory("memory")),
		alloc: WrapAllocator(ctx, mod.ExportedFunction("cabi_realloc")),
	}, nil
}

// Memory returns the guest's linear memory.
func (l *Loopback) Memory() abiwire.Memory { return l.mem }

// Allocator returns the guest's allocator.
func (l *Loopback) Allocator() abiwire.Allocator { return l.alloc }

// Close releases the guest and its runtime.
func (l *Loopback) Close(ctx context.Context) error {
	return l.rt.Close(ctx)
}

// loopbackModule assembles:
//
//	(memory (export "memory") pages)
//	(global $heap (mut i32) (i32.const 1024))
//	(func (export "cabi_realloc") (param $old i32) (param $old_size i32) (param $align i32) (param $size i32) (result i32)
//	  (if (i32.eqz (local.get $size)) (then (return (i32.const 0))))
//	  (global.set $heap (i32.add
//	    (local.tee $old (i32.and (i32.sub (i32.add (global.get $heap) (local.get $align)) (i32.const 1))
//	                             (i32.sub (i32.const 0) (local.get $align))))
//	    (local.get $size)))
//	  (local.get $old))
func loopbackModule(pages uint32) []byte {
	const i32 = 0x7f
	body := []byte{
		0x00,                                     // no locals
		0x20, 0x03, 0x45, 0x04,                   // local.get 3; i32.eqz; if
		0x40, 0x41, 0x00, 0x0f, 0x0b,             // i32.const 0; return; end
		0x23, 0x00, 0x20, 0x02, 0x6a,             // global.get 0; local.get 2; i32.add
		0x41, 0x01, 0x6b,                         // i32.const 1; i32.sub
		0x41, 0x00, 0x20, 0x02, 0x6b, 0x71,       // i32.const 0; local.get 2; i32.sub; i32.and
		0x22, 0x00, 0x20, 0x03, 0x6a, 0x24, 0x00, // local.tee 0; local.get 3; i32.add; global.set 0
		0x20, 0x00, 0x0b,                         // local.get 0; end
	}

	mod := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	mod = appendSection(mod, 1, []byte{0x01, 0x60, 0x04, i32, i32, i32, i32, 0x01, i32})
	mod = appendSection(mod, 3, []byte{0x01, 0x00})
	mod = appendSection(mod, 5, appendULEB([]byte{0x01, 0x00}, pages))
	mod = appendSection(mod, 6, []byte{0x01, i32, 0x01, 0x41, 0x80, 0x08, 0x0b})

	exports := []byte{0x02}
	exports = appendName(exports, "memory")
	exports = append(exports, 0x02, 0x00)
	exports = appendName(exports, "cabi_realloc")
	exports = append(exports, 0x00, 0x00)
	mod = appendSection(mod, 7, exports)

	code := appendULEB([]byte{0x01}, uint32(len(body)))
	return appendSection(mod, 10, append(code, body...))
}

func appendSection(dst []byte, id byte, content []byte) []byte {
	dst = append(dst, id)
	dst = appendULEB(dst, uint32(len(content)))
	return append(dst, content...)
}

func appendName(dst []byte, name string) []byte {
	dst = appendULEB(dst, uint32(len(name)))
	return append(dst, name...)
}

func appendULEB(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
