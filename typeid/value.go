package typeid

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/abiwire/errors"
	"go.bytecodealliance.org/wit"
)

// FromValue converts loosely typed input, as produced by YAML or JSON
// decoders, into the dynamic representation of t expected by Codec.
//
// Numbers may arrive as any Go integer or float type and are range checked.
// Map keys given as strings are parsed into the key type.
func FromValue(t wit.Type, v any) (any, error) {
	return fromValue(t, v, Format(t))
}

func fromValue(t wit.Type, v any, path string) (any, error) {
	switch t.(type) {
	case wit.Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch(path, "bool", v)
		}
		return b, nil
	case wit.String:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(path, "string", v)
		}
		return s, nil
	case wit.U8:
		n, err := toUint(v, math.MaxUint8, path, "u8")
		return uint8(n), err
	case wit.U16:
		n, err := toUint(v, math.MaxUint16, path, "u16")
		return uint16(n), err
	case wit.U32:
		n, err := toUint(v, math.MaxUint32, path, "u32")
		return uint32(n), err
	case wit.U64:
		return toUint(v, math.MaxUint64, path, "u64")
	case wit.S8:
		n, err := toInt(v, math.MinInt8, math.MaxInt8, path, "s8")
		return int8(n), err
	case wit.S16:
		n, err := toInt(v, math.MinInt16, math.MaxInt16, path, "s16")
		return int16(n), err
	case wit.S32:
		n, err := toInt(v, math.MinInt32, math.MaxInt32, path, "s32")
		return int32(n), err
	case wit.S64:
		return toInt(v, math.MinInt64, math.MaxInt64, path, "s64")
	case wit.F32:
		f, err := toFloat(v, path)
		return float32(f), err
	case wit.F64:
		return toFloat(v, path)
	}

	td, ok := t.(*wit.TypeDef)
	if !ok {
		return nil, unsupported(t)
	}
	switch kind := td.Kind.(type) {
	case *wit.Option:
		if v == nil {
			return nil, nil
		}
		if s, ok := v.(Some); ok {
			v = s.Value
		}
		inner, err := fromValue(kind.Type, v, path)
		if err != nil {
			return nil, err
		}
		return Some{Value: inner}, nil
	case *wit.List:
		if k, val, ok := mapParams(kind); ok {
			return fromMap(k, val, v, path)
		}
		items, ok := v.([]any)
		if !ok {
			return nil, mismatch(path, "list", v)
		}
		out := make([]any, len(items))
		for i, item := range items {
			conv, err := fromValue(kind.Type, item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case wit.Type:
		return fromValue(kind, v, path)
	}
	return nil, unsupported(t)
}

func fromMap(k, val wit.Type, v any, path string) (any, error) {
	out := make(map[any]any)
	put := func(key, value any) error {
		if s, ok := key.(string); ok && !isString(k) {
			parsed, err := parseKey(k, s, path)
			if err != nil {
				return err
			}
			key = parsed
		}
		ck, err := fromValue(k, key, path+".key")
		if err != nil {
			return err
		}
		cv, err := fromValue(val, value, fmt.Sprintf("%s[%v]", path, key))
		if err != nil {
			return err
		}
		out[ck] = cv
		return nil
	}

	switch m := v.(type) {
	case map[string]any:
		for key, value := range m {
			if err := put(key, value); err != nil {
				return nil, err
			}
		}
	case map[any]any:
		for key, value := range m {
			if err := put(key, value); err != nil {
				return nil, err
			}
		}
	default:
		return nil, mismatch(path, "map", v)
	}
	return out, nil
}

func isString(t wit.Type) bool {
	_, ok := t.(wit.String)
	return ok
}

func parseKey(t wit.Type, s, path string) (any, error) {
	switch t.(type) {
	case wit.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, mismatch(path+".key", "bool", s)
		}
		return b, nil
	case wit.F32, wit.F64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, mismatch(path+".key", "number", s)
		}
		return f, nil
	case wit.U8, wit.U16, wit.U32, wit.U64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, mismatch(path+".key", "unsigned integer", s)
		}
		return n, nil
	case wit.S8, wit.S16, wit.S32, wit.S64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, mismatch(path+".key", "integer", s)
		}
		return n, nil
	}
	return s, nil
}

func toUint(v any, limit uint64, path, name string) (uint64, error) {
	var n uint64
	switch x := v.(type) {
	case int:
		if x < 0 {
			return 0, errors.Overflow(errors.PhaseLower, path, x, "unsigned")
		}
		n = uint64(x)
	case int8, int16, int32, int64:
		i := toInt64(x)
		if i < 0 {
			return 0, errors.Overflow(errors.PhaseLower, path, x, "unsigned")
		}
		n = uint64(i)
	case uint:
		n = uint64(x)
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	case float64:
		if x < 0 || x != math.Trunc(x) || x >= 1<<64 {
			return 0, errors.Overflow(errors.PhaseLower, path, x, "unsigned integer")
		}
		n = uint64(x)
	default:
		return 0, mismatch(path, "unsigned integer", v)
	}
	if n > limit {
		return 0, errors.Overflow(errors.PhaseLower, path, n, name)
	}
	return n, nil
}

func toInt(v any, lo, hi int64, path, name string) (int64, error) {
	var n int64
	switch x := v.(type) {
	case int, int8, int16, int32, int64:
		n = toInt64(x)
	case uint, uint8, uint16, uint32, uint64:
		u := toUint64(x)
		if u > math.MaxInt64 {
			return 0, errors.Overflow(errors.PhaseLower, path, x, name)
		}
		n = int64(u)
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, errors.Overflow(errors.PhaseLower, path, x, "integer")
		}
		n = int64(x)
	default:
		return 0, mismatch(path, "integer", v)
	}
	if n < lo || n > hi {
		return 0, errors.Overflow(errors.PhaseLower, path, n, name)
	}
	return n, nil
}

func toFloat(v any, path string) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int, int8, int16, int32, int64:
		return float64(toInt64(x)), nil
	case uint, uint8, uint16, uint32, uint64:
		return float64(toUint64(x)), nil
	}
	return 0, mismatch(path, "number", v)
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	}
	return 0
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	}
	return 0
}

func mismatch(path, want string, got any) error {
	return errors.New(errors.PhaseLower, errors.KindInvalidInput).
		Type(path).
		Value(got).
		Detail("expected %s, got %T", want, got).
		Build()
}

// FormatValue renders a dynamic value. Map entries are sorted by their
// rendered key so the output is stable.
func FormatValue(v any) string {
	var b strings.Builder
	formatValue(&b, v)
	return b.String()
}

func formatValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("none")
	case Some:
		b.WriteString("some(")
		formatValue(b, x.Value)
		b.WriteByte(')')
	case string:
		b.WriteString(strconv.Quote(x))
	case []any:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, item)
		}
		b.WriteByte(']')
	case map[any]any:
		entries := make([]string, 0, len(x))
		for k, val := range x {
			entries = append(entries, FormatValue(k)+": "+FormatValue(val))
		}
		sort.Strings(entries)
		b.WriteByte('{')
		b.WriteString(strings.Join(entries, ", "))
		b.WriteByte('}')
	default:
		fmt.Fprint(b, x)
	}
}
