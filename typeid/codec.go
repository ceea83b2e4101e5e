package typeid

import (
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/metadata"
	"github.com/wippyai/abiwire/wire"
	"go.bytecodealliance.org/wit"
)

// Some is the dynamic representation of a present option value. An absent
// option is nil.
type Some struct {
	Value any
}

// Codec builds a codec for values of t whose Go type is decided at run time.
//
// Scalars map to the matching sized Go type (uint8, int16, float32, ...),
// lists to []any and maps to map[any]any. Map keys must be scalars, strings or
// options of those. Write panics if a value does not have the representation
// of its type; FromValue converts loosely typed input first.
func Codec(t wit.Type) (wire.Codec[any], error) {
	switch t.(type) {
	case wit.U8:
		return erase[uint8](wire.U8), nil
	case wit.U16:
		return erase[uint16](wire.U16), nil
	case wit.U32:
		return erase[uint32](wire.U32), nil
	case wit.U64:
		return erase[uint64](wire.U64), nil
	case wit.S8:
		return erase[int8](wire.I8), nil
	case wit.S16:
		return erase[int16](wire.I16), nil
	case wit.S32:
		return erase[int32](wire.I32), nil
	case wit.S64:
		return erase[int64](wire.I64), nil
	case wit.F32:
		return erase[float32](wire.F32), nil
	case wit.F64:
		return erase[float64](wire.F64), nil
	case wit.Bool:
		return erase[bool](wire.Bool), nil
	case wit.String:
		return erase[string](wire.String), nil
	}

	td, ok := t.(*wit.TypeDef)
	if !ok {
		return nil, unsupported(t)
	}

	// Composite fingerprints may exceed metadata.MaxSize; check before the
	// wire constructors, which panic on overflow.
	if _, err := Fingerprint(t); err != nil {
		return nil, err
	}

	switch kind := td.Kind.(type) {
	case *wit.Option:
		inner, err := Codec(kind.Type)
		if err != nil {
			return nil, err
		}
		return &optionCodec{c: wire.Option(inner)}, nil
	case *wit.List:
		if k, v, ok := mapParams(kind); ok {
			if !keyable(k) {
				return nil, errors.New(errors.PhaseFingerprint, errors.KindUnsupported).
					Type(Format(t)).
					Detail("map key %s is not comparable", Format(k)).
					Build()
			}
			kc, err := Codec(k)
			if err != nil {
				return nil, err
			}
			vc, err := Codec(v)
			if err != nil {
				return nil, err
			}
			return erase[map[any]any](wire.Map(kc, vc)), nil
		}
		elem, err := Codec(kind.Type)
		if err != nil {
			return nil, err
		}
		return erase[[]any](wire.List(elem)), nil
	case wit.Type:
		return Codec(kind)
	default:
		return nil, unsupported(t)
	}
}

// keyable reports whether the dynamic representation of t is comparable.
func keyable(t wit.Type) bool {
	if _, ok := primitiveCode(t); ok {
		return true
	}
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return false
	}
	switch kind := td.Kind.(type) {
	case *wit.Option:
		return keyable(kind.Type)
	case *wit.List:
		return false
	case wit.Type:
		return keyable(kind)
	}
	return false
}

// erased adapts a statically typed codec to the dynamic representation.
type erased[T any] struct {
	c wire.Codec[T]
}

func erase[T any](c wire.Codec[T]) wire.Codec[any] {
	return erased[T]{c: c}
}

func (e erased[T]) Write(buf []byte, v any) []byte {
	return e.c.Write(buf, v.(T))
}

func (e erased[T]) Read(r *wire.Reader) (any, error) {
	v, err := e.c.Read(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[T]) Fingerprint() metadata.Fingerprint { return e.c.Fingerprint() }

func (e erased[T]) Default() any { return e.c.Default() }

// optionCodec maps the *any representation of wire.OptionCodec onto Some.
type optionCodec struct {
	c *wire.OptionCodec[any]
}

func (o *optionCodec) Write(buf []byte, v any) []byte {
	if v == nil {
		return o.c.Write(buf, nil)
	}
	s := v.(Some)
	return o.c.Write(buf, &s.Value)
}

func (o *optionCodec) Read(r *wire.Reader) (any, error) {
	p, err := o.c.Read(r)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return Some{Value: *p}, nil
}

func (o *optionCodec) Fingerprint() metadata.Fingerprint { return o.c.Fingerprint() }

func (o *optionCodec) Default() any { return nil }
