// Package manifest reads and checks type manifests.
//
// A manifest records, for each type a library exchanges, the type expression
// and the checksum the generated glue was built against:
//
//	name: profile-service
//	version: 1.4.0
//	types:
//	  - name: user-ids
//	    type: list<u64>
//	    checksum: 36504
//
// Verify recomputes every checksum and reports all disagreements at once, so
// a stale binding is rejected before any call crosses the boundary.
package manifest

import (
	"os"

	"github.com/wippyai/abiwire/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the manifest.yaml structure.
type Manifest struct {
	Name    string  `yaml:"name"`
	Version string  `yaml:"version"`
	Types   []Entry `yaml:"types"`

	path string // file the manifest was loaded from, if any
}

// Entry describes one exchanged type.
type Entry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Checksum uint16 `yaml:"checksum"`
}

// Load reads, parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindNotFound, err, "read manifest "+path)
	}
	m, err := Parse(data)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Path = path
		}
		return nil, err
	}
	m.path = path
	return m, nil
}

// Parse parses and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal renders the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Path returns the file the manifest was loaded from, or "".
func (m *Manifest) Path() string {
	return m.path
}

// Source identifies the manifest in error messages.
func (m *Manifest) Source() string {
	if m.path != "" {
		return m.path
	}
	if m.Version != "" {
		return m.Name + "@" + m.Version
	}
	return m.Name
}

// Lookup returns the entry named name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Types {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
