package datatype

import (
	"fmt"
	"slices"
)

// Registry is an immutable lookup table from datatype identifier to entry.
// Entries are reachable by ID and by Name.
type Registry struct {
	entries        []Datatype
	byKey          map[string]int
	derivativeDirs map[string]string
}

// NewRegistry builds a registry from entries and the curated derivative
// directory names. Duplicate IDs or names are rejected.
func NewRegistry(entries []Datatype, derivativeDirs map[string]string) (*Registry, error) {
	r := &Registry{
		entries:        make([]Datatype, 0, len(entries)),
		byKey:          make(map[string]int, 2*len(entries)),
		derivativeDirs: make(map[string]string, len(derivativeDirs)),
	}

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("datatype %q has no id", e.Name)
		}

		e.Registered = true
		e.Files = slices.Clone(e.Files)
		idx := len(r.entries)

		for _, key := range []string{e.ID, e.Name} {
			if key == "" {
				continue
			}

			if _, dup := r.byKey[key]; dup {
				return nil, fmt.Errorf("duplicate datatype key %q", key)
			}

			r.byKey[key] = idx
		}

		r.entries = append(r.entries, e)
	}

	for id, dir := range derivativeDirs {
		r.derivativeDirs[id] = dir
	}

	return r, nil
}

var defaultRegistry = mustRegistry(builtinDatatypes, builtinDerivativeDirs)

func mustRegistry(entries []Datatype, dirs map[string]string) *Registry {
	r, err := NewRegistry(entries, dirs)
	if err != nil {
		panic(err)
	}

	return r
}

// Default returns the registry of the builtin datatypes.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the entry for id. Unknown identifiers yield an unregistered
// derivatives entry that installs every source file verbatim.
func (r *Registry) Lookup(id string) Datatype {
	if idx, ok := r.byKey[id]; ok {
		e := r.entries[idx]
		e.Files = slices.Clone(e.Files)

		return e
	}

	return Datatype{ID: id, Modality: ModalityDerivatives}
}

// ModalityOf returns the modality of id; unknown identifiers are derivatives.
func (r *Registry) ModalityOf(id string) Modality {
	return r.Lookup(id).Modality
}

// DerivativeDirName returns the curated derivatives directory for id, or
// "<inputID>.<id>", or id alone when inputID is empty.
func (r *Registry) DerivativeDirName(id, inputID string) string {
	if dir, ok := r.derivativeDirs[id]; ok {
		return dir
	}

	if inputID == "" {
		return id
	}

	return inputID + "." + id
}
