// Package typeid derives fingerprints and codecs from WIT type descriptors.
//
// Generated glue describes the types it exchanges with go.bytecodealliance.org/wit
// descriptors or with short type expressions:
//
//	bool u8 u16 u32 u64 s8 s16 s32 s64 f32 f64 string
//	option<T>  list<T>  map<K, V>
//
// The integer aliases i8..i64 and float32/float64 are accepted as well. WIT
// has no map type, so map<K, V> is represented as list<tuple<K, V>>; any list
// of two-element tuples fingerprints as a map.
//
// Fingerprint composes the same bytes as the static codecs in package wire,
// so a type expression can be checked against a compiled codec:
//
//	t, _ := typeid.Parse("map<string, list<u8>>")
//	fp, _ := typeid.Fingerprint(t)
//	fp == wire.Map(wire.String, wire.List(wire.U8)).Fingerprint() // true
//
// Codec builds a wire.Codec[any] for values whose type is only known at run
// time. Dynamic values use Go scalars, string, []any and map[any]any; an
// option is nil when absent and Some when present.
//
// A Registry memoizes compiled expressions and holds named static codecs. It
// is safe for concurrent use.
package typeid
