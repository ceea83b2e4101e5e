package manifest

import (
	"fmt"

	"github.com/wippyai/abiwire/typeid"
)

// ValidationError reports a malformed manifest field.
type ValidationError struct {
	Path    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid manifest: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid manifest %s: %s: %s", e.Path, e.Field, e.Message)
}

// Validate checks required fields, name uniqueness and that every type
// expression parses.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return m.invalid("name", "name is required")
	}
	if m.Version == "" {
		return m.invalid("version", "version is required")
	}
	if len(m.Types) == 0 {
		return m.invalid("types", "at least one type is required")
	}

	seen := make(map[string]bool, len(m.Types))
	for i, e := range m.Types {
		field := fmt.Sprintf("types[%d]", i)
		if e.Name == "" {
			return m.invalid(field+".name", "name is required")
		}
		if seen[e.Name] {
			return m.invalid(field+".name", fmt.Sprintf("duplicate type name %q", e.Name))
		}
		seen[e.Name] = true

		if e.Type == "" {
			return m.invalid(field+".type", "type is required")
		}
		if _, err := typeid.Parse(e.Type); err != nil {
			return m.invalid(field+".type", err.Error())
		}
	}
	return nil
}

func (m *Manifest) invalid(field, msg string) error {
	return &ValidationError{Path: m.path, Field: field, Message: msg}
}
