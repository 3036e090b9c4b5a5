package manifest

import (
	"fmt"
	"path/filepath"
)

// InputRecord is one "_inputs" entry.
type InputRecord struct {
	ID       string         `json:"id" yaml:"id"`
	TaskID   string         `json:"task_id" yaml:"task_id"`
	Subdir   string         `json:"subdir" yaml:"subdir"`
	Datatype string         `json:"datatype" yaml:"datatype"`
	Meta     map[string]any `json:"meta" yaml:"meta"`
	Keys     []string       `json:"keys" yaml:"keys"`
}

// InputDir returns the staging directory of the input, "../<task_id>/<subdir>",
// or "" when the record does not name one.
func (r InputRecord) InputDir() string {
	if r.TaskID == "" {
		return ""
	}

	return filepath.Join("..", r.TaskID, r.Subdir)
}

// Source is the value of a file key: one path or a list of paths.
type Source struct {
	Paths []string
	// IsList is true when the manifest spelled the value as a list, even a
	// list of one.
	IsList bool
}

// Manifest is the parsed manifest.
type Manifest struct {
	Inputs  []InputRecord
	Sources map[string]Source
}

// MetaString returns meta[key] rendered as a string. Scalars are formatted
// with fmt; maps and lists are treated as absent.
func MetaString(meta map[string]any, key string) (string, bool) {
	v, ok := meta[key]
	if !ok || v == nil {
		return "", false
	}

	switch x := v.(type) {
	case string:
		return x, true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(x), true
	}
}

// CloneMeta returns a shallow copy of meta.
func CloneMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}

	return out
}
