// Package metadata builds type fingerprints.
//
// A fingerprint is a deterministic byte sequence describing the wire shape of
// a type. Primitives contribute a single code byte; generic types contribute
// their own code followed by the fingerprints of their type parameters in
// declared order:
//
//	u8                     00
//	list<u8>               0d 00
//	option<string>         0c 0b
//	map<string, list<u32>> 0e 0b 0d 02
//
// Both sides of the ABI boundary compute the 16-bit Checksum of every
// fingerprint and compare them before any call is made, so a mismatched
// pairing of glue code and library fails deterministically.
//
// Fingerprints are assembled with a Builder, a fixed-capacity append-only
// accumulator of MaxSize bytes. Exceeding the capacity is reported by Build
// and makes MustBuild panic; static codecs compose their fingerprints at
// package initialization, so an oversized composition fails at startup.
package metadata
