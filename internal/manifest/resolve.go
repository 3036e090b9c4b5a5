package manifest

import (
	"fmt"
	"slices"

	"bl2bids/internal/common"
	"bl2bids/internal/diagnostic"
)

// Resolved is an input record with its file keys bound to concrete paths.
// It is computed once by Resolve and not mutated afterwards.
type Resolved struct {
	// Index is the 0-based position of the record in the manifest.
	Index  int
	Record InputRecord
	// MultiInput is true when any of the record's keys maps to a list.
	MultiInput bool
	// Paths maps each resolvable key to the path chosen for this record.
	Paths map[string]string
}

// Label identifies the record in diagnostics, e.g. "#2 dwi".
func (r Resolved) Label() string {
	id := r.Record.ID
	if id == "" {
		id = r.Record.Datatype
	}

	return fmt.Sprintf("#%d %s", r.Index+1, id)
}

// Path returns the path bound to key.
func (r Resolved) Path(key string) (string, bool) {
	p, ok := r.Paths[key]
	return p, ok
}

// OrderedPaths returns the bound paths in the order of the record's keys.
func (r Resolved) OrderedPaths() []string {
	out := make([]string, 0, len(r.Paths))
	for _, key := range r.Record.Keys {
		if p, ok := r.Paths[key]; ok {
			out = append(out, p)
		}
	}

	return out
}

// Resolve binds every record's keys to paths. Multi-valued keys are consumed
// one entry per referencing record, in manifest order; each (key, index) pair
// is handed out exactly once. Keys that are unknown or exhausted are left
// unbound and reported as warnings.
func Resolve(m *Manifest) ([]Resolved, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	consumed := make(map[string]int)
	out := make([]Resolved, 0, len(m.Inputs))

	for i, rec := range m.Inputs {
		rec.Meta = CloneMeta(rec.Meta)
		rec.Keys = slices.Clone(rec.Keys)

		res := Resolved{Index: i, Record: rec, Paths: make(map[string]string, len(rec.Keys))}

		for _, key := range rec.Keys {
			src, ok := m.Sources[key]
			if !ok {
				diags.AddWarning("unknown_key", fmt.Sprintf("file key %q is not in the manifest", key), res.Label(), "")
				continue
			}

			if !src.IsList {
				if p, ok := common.At(src.Paths, 0); ok {
					res.Paths[key] = p
				}

				continue
			}

			res.MultiInput = true

			n := consumed[key]
			consumed[key] = n + 1

			p, ok := common.At(src.Paths, n)
			if !ok {
				diags.AddWarning("key_exhausted",
					fmt.Sprintf("file key %q has %d entries, entry %d requested", key, len(src.Paths), n+1),
					res.Label(), "")

				continue
			}

			res.Paths[key] = p
		}

		out = append(out, res)
	}

	return out, diags
}
