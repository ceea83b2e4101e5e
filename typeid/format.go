package typeid

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// Format renders t as a type expression. Unsupported descriptors render as "?".
func Format(t wit.Type) string {
	var b strings.Builder
	format(&b, t)
	return b.String()
}

func format(b *strings.Builder, t wit.Type) {
	switch t := t.(type) {
	case wit.Bool:
		b.WriteString("bool")
	case wit.U8:
		b.WriteString("u8")
	case wit.U16:
		b.WriteString("u16")
	case wit.U32:
		b.WriteString("u32")
	case wit.U64:
		b.WriteString("u64")
	case wit.S8:
		b.WriteString("s8")
	case wit.S16:
		b.WriteString("s16")
	case wit.S32:
		b.WriteString("s32")
	case wit.S64:
		b.WriteString("s64")
	case wit.F32:
		b.WriteString("f32")
	case wit.F64:
		b.WriteString("f64")
	case wit.String:
		b.WriteString("string")
	case *wit.TypeDef:
		formatTypeDef(b, t)
	default:
		b.WriteByte('?')
	}
}

func formatTypeDef(b *strings.Builder, td *wit.TypeDef) {
	switch kind := td.Kind.(type) {
	case *wit.Option:
		b.WriteString("option<")
		format(b, kind.Type)
		b.WriteByte('>')
	case *wit.List:
		if k, v, ok := mapParams(kind); ok {
			b.WriteString("map<")
			format(b, k)
			b.WriteString(", ")
			format(b, v)
			b.WriteByte('>')
			return
		}
		b.WriteString("list<")
		format(b, kind.Type)
		b.WriteByte('>')
	case wit.Type:
		format(b, kind)
	default:
		b.WriteByte('?')
	}
}

// mapParams reports whether l is list<tuple<K, V>> and returns K and V.
func mapParams(l *wit.List) (wit.Type, wit.Type, bool) {
	td, ok := l.Type.(*wit.TypeDef)
	if !ok {
		return nil, nil, false
	}
	tuple, ok := td.Kind.(*wit.Tuple)
	if !ok || len(tuple.Types) != 2 {
		return nil, nil, false
	}
	return tuple.Types[0], tuple.Types[1], true
}
