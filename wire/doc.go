// Package wire implements the value encoding used across the ABI boundary.
//
// # Wire Format
//
//	Type            Encoding
//	──────────────────────────────────────────────────────────────
//	u8..u64, i8..i64, f32, f64   fixed width, big-endian
//	bool            one byte, 0 or 1
//	string          i32 length prefix + UTF-8 bytes
//	option<T>       tag byte (0 absent, 1 present) + T if present
//	list<T>         i32 length prefix + elements in order
//	map<K, V>       i32 length prefix + (key, value) pairs
//
// # Codecs
//
// Every wire type has a Codec. Write appends a value's encoding to a byte
// slice; Read consumes exactly one encoding from a shared Reader. Container
// codecs are generic over their element codecs:
//
//	tags := wire.Map(wire.String, wire.List(wire.U32))
//	data := wire.Encode(tags, map[string][]uint32{"a": {1, 2}})
//	v, err := wire.Decode(tags, data)
//
// A Converter additionally lowers a value into the form passed across the
// boundary and lifts it back. Scalars cross by value; strings and containers
// cross as an ffi.Buffer whose ownership moves with it:
//
//	buf := wire.List(wire.U8).Lower([]uint8{1, 2, 3})
//	// ... buf crosses the boundary ...
//	v, err := wire.List(wire.U8).Lift(buf)
//
// Lifting a buffer must consume it completely; leftover bytes are a
// trailing_data error.
//
// # Fingerprints
//
// Each codec carries the fingerprint of its type, composed at construction.
// Package-level codecs are therefore fingerprinted during initialization.
//
// # Errors
//
// Decoding never panics on malformed input. Failures are *errors.Error values
// of kind insufficient_data, invalid_encoding, overflow or trailing_data and
// propagate unchanged from nested codecs. Write panics only when a length does
// not fit the 32-bit prefix.
//
// # Thread Safety
//
// Codecs are stateless and safe for concurrent use. A Reader is not.
package wire
