package manifest

import (
	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/metadata"
	"github.com/wippyai/abiwire/typeid"
	"go.uber.org/zap"
)

// Verify recomputes the checksum of every entry and returns a
// *errors.ChecksumMismatchError listing each one that differs.
//
// When reg holds a static codec registered under an entry's name, the codec's
// fingerprint is authoritative and must also equal the fingerprint of the
// entry's type expression.
func (m *Manifest) Verify(reg *typeid.Registry) error {
	if reg == nil {
		reg = typeid.NewRegistry()
	}

	var mismatches []errors.Mismatch
	for _, e := range m.Types {
		compiled, err := reg.Lookup(e.Type)
		if err != nil {
			return errors.New(errors.PhaseVerify, errors.KindInvalidInput).
				Type(e.Name).
				Cause(err).
				Detail("cannot compile type %q", e.Type).
				Build()
		}

		actual := compiled.Fingerprint
		if named, ok := reg.Named(e.Name); ok && named != actual {
			actual = named
		} else if actual.Checksum() == e.Checksum {
			Logger().Debug("type verified",
				zap.String("name", e.Name),
				zap.String("type", compiled.Expr),
				zap.Uint16("checksum", e.Checksum))
			continue
		}

		Logger().Warn("checksum mismatch",
			zap.String("manifest", m.Source()),
			zap.String("name", e.Name),
			zap.String("type", actual.Describe()),
			zap.Uint16("expected", e.Checksum),
			zap.Uint16("actual", actual.Checksum()))
		mismatches = append(mismatches, errors.Mismatch{
			Name:     e.Name,
			Type:     actual.Describe(),
			Expected: e.Checksum,
			Actual:   actual.Checksum(),
		})
	}

	if len(mismatches) > 0 {
		return &errors.ChecksumMismatchError{Source: m.Source(), Mismatches: mismatches}
	}
	return nil
}

// FromRegistry builds a manifest from the static codecs registered in reg.
func FromRegistry(name, version string, reg *typeid.Registry) *Manifest {
	m := &Manifest{Name: name, Version: version}
	for _, n := range reg.Names() {
		fp, _ := reg.Named(n)
		m.Types = append(m.Types, entryFor(n, fp))
	}
	return m
}

func entryFor(name string, fp metadata.Fingerprint) Entry {
	return Entry{Name: name, Type: fp.Describe(), Checksum: fp.Checksum()}
}
