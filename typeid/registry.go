package typeid

import (
	"sort"
	"sync"

	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/metadata"
	"github.com/wippyai/abiwire/wire"
	"go.bytecodealliance.org/wit"
)

// Entry is a compiled type expression.
type Entry struct {
	Expr        string // canonical form, e.g. "map<string, list<u8>>"
	Type        wit.Type
	Fingerprint metadata.Fingerprint
	Codec       wire.Codec[any]
}

// Checksum returns the checksum of the entry's fingerprint.
func (e *Entry) Checksum() uint16 {
	return e.Fingerprint.Checksum()
}

// Registry caches compiled type expressions and records named static codecs.
type Registry struct {
	cache sync.Map // canonical expr -> *Entry

	mu    sync.RWMutex
	named map[string]metadata.Fingerprint
}

func NewRegistry() *Registry {
	return &Registry{named: make(map[string]metadata.Fingerprint)}
}

// Lookup parses and compiles expr. Expressions that differ only in spelling
// ("i32" and "s32", extra spaces) share one entry.
func (r *Registry) Lookup(expr string) (*Entry, error) {
	t, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return r.Resolve(t)
}

// Resolve compiles a type descriptor, reusing a cached entry when one exists.
func (r *Registry) Resolve(t wit.Type) (*Entry, error) {
	key := Format(t)
	if cached, ok := r.cache.Load(key); ok {
		return cached.(*Entry), nil
	}

	fp, err := Fingerprint(t)
	if err != nil {
		return nil, err
	}
	codec, err := Codec(t)
	if err != nil {
		return nil, err
	}

	entry := &Entry{Expr: key, Type: t, Fingerprint: fp, Codec: codec}
	actual, _ := r.cache.LoadOrStore(key, entry)
	return actual.(*Entry), nil
}

// Register records the fingerprint of a statically typed codec under name.
// Registering the same name twice is allowed only with an identical
// fingerprint.
func (r *Registry) Register(name string, codec wire.Typed) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseVerify, "type name cannot be empty")
	}
	fp := codec.Fingerprint()

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.named[name]; ok && prev != fp {
		return errors.New(errors.PhaseVerify, errors.KindChecksumMismatch).
			Type(name).
			Detail("already registered as %s, got %s", prev.Describe(), fp.Describe()).
			Build()
	}
	r.named[name] = fp
	return nil
}

// Named returns the fingerprint registered under name.
func (r *Registry) Named(name string) (metadata.Fingerprint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fp, ok := r.named[name]
	return fp, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
