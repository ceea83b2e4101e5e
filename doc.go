// Package abiwire implements the value-marshalling boundary between Go and a
// foreign library that exchanges data through owned byte buffers.
//
// Every value that crosses the boundary is either passed directly as a
// scalar or serialized into a length-prefixed big-endian byte stream and
// carried in a buffer whose ownership moves with it. Each type also has a
// fingerprint, a short byte string describing its shape, whose 16-bit
// checksum both sides compare at load time to catch mismatched bindings.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	abiwire/          Root package with the guest Memory and Allocator interfaces
//	├── ffi/          Buffer handles, borrowed bytes and the call status envelope
//	├── wire/         Codecs: scalars, bool, string, option, list, map
//	├── metadata/     Type codes, fingerprint builder and checksum
//	├── typeid/       Fingerprints and dynamic codecs from WIT type descriptors
//	├── manifest/     Checksum manifests and load-time verification
//	├── guestmem/     Moving buffers in and out of WebAssembly linear memory
//	├── errors/       Structured error types
//	└── cmd/abidump/  Command line inspector
//
// # Quick Start
//
// Lower a value into an owned buffer and lift it back:
//
//	c := wire.Map(wire.String, wire.List(wire.U32))
//	buf := c.Lower(map[string][]uint32{"ids": {1, 2, 3}})
//	v, err := c.Lift(buf) // buf is consumed
//
// Check a call result reported by the foreign side:
//
//	status := ffi.NewCallStatus()
//	// ... foreign call fills status ...
//	if err := wire.CheckCallStatus(&status, errCodec); err != nil {
//	    var callErr *wire.CallError[MyError]
//	    if errors.As(err, &callErr) { ... }
//	}
//
// Verify that the generated glue matches the compiled library:
//
//	m, _ := manifest.Load("types.yaml")
//	if err := m.Verify(reg); err != nil {
//	    log.Fatal(err) // *errors.ChecksumMismatchError
//	}
//
// # Ownership
//
// A buffer has exactly one owner. Lift and DestroyIntoBytes consume it and
// reset the handle to the null sentinel, so a second destroy is reported as
// an invalid handle instead of freeing twice. Borrowed bytes are read-only
// views valid for the duration of one call and are never freed by the
// receiver.
//
// # Thread Safety
//
// Codecs are immutable and safe for concurrent use. A buffer may be created
// on one goroutine and destroyed on another; the ownership registry is
// synchronized. A typeid.Registry is safe for concurrent use.
package abiwire
