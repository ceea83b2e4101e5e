package typeid

import (
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/metadata"
	"go.bytecodealliance.org/wit"
)

// Fingerprint computes the type fingerprint of t.
//
// Records, variants, results, resources and the other WIT kinds without a
// wire encoding are rejected with an unsupported error.
func Fingerprint(t wit.Type) (metadata.Fingerprint, error) {
	if c, ok := primitiveCode(t); ok {
		return metadata.FromCode(c), nil
	}

	td, ok := t.(*wit.TypeDef)
	if !ok {
		return metadata.Fingerprint{}, unsupported(t)
	}

	switch kind := td.Kind.(type) {
	case *wit.Option:
		inner, err := Fingerprint(kind.Type)
		if err != nil {
			return metadata.Fingerprint{}, err
		}
		return metadata.Generic(metadata.TypeOption, inner)
	case *wit.List:
		if k, v, ok := mapParams(kind); ok {
			kf, err := Fingerprint(k)
			if err != nil {
				return metadata.Fingerprint{}, err
			}
			vf, err := Fingerprint(v)
			if err != nil {
				return metadata.Fingerprint{}, err
			}
			return metadata.Generic(metadata.TypeHashMap, kf, vf)
		}
		elem, err := Fingerprint(kind.Type)
		if err != nil {
			return metadata.Fingerprint{}, err
		}
		return metadata.Generic(metadata.TypeVec, elem)
	case wit.Type:
		return Fingerprint(kind)
	default:
		return metadata.Fingerprint{}, unsupported(t)
	}
}

// Checksum is shorthand for the checksum of t's fingerprint.
func Checksum(t wit.Type) (uint16, error) {
	fp, err := Fingerprint(t)
	if err != nil {
		return 0, err
	}
	return fp.Checksum(), nil
}

func primitiveCode(t wit.Type) (metadata.Code, bool) {
	switch t.(type) {
	case wit.U8:
		return metadata.TypeU8, true
	case wit.U16:
		return metadata.TypeU16, true
	case wit.U32:
		return metadata.TypeU32, true
	case wit.U64:
		return metadata.TypeU64, true
	case wit.S8:
		return metadata.TypeI8, true
	case wit.S16:
		return metadata.TypeI16, true
	case wit.S32:
		return metadata.TypeI32, true
	case wit.S64:
		return metadata.TypeI64, true
	case wit.F32:
		return metadata.TypeF32, true
	case wit.F64:
		return metadata.TypeF64, true
	case wit.Bool:
		return metadata.TypeBool, true
	case wit.String:
		return metadata.TypeString, true
	}
	return 0, false
}

func unsupported(t wit.Type) error {
	detail := "no wire encoding"
	if td, ok := t.(*wit.TypeDef); ok {
		return errors.New(errors.PhaseFingerprint, errors.KindUnsupported).
			Detail("%s for %T", detail, td.Kind).
			Build()
	}
	return errors.New(errors.PhaseFingerprint, errors.KindUnsupported).
		Detail("%s for %T", detail, t).
		Build()
}
