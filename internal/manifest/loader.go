package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// InputsKey is the manifest key holding the input records.
const InputsKey = "_inputs"

// ErrNoInputs is returned when the manifest has no "_inputs" list.
var ErrNoInputs = errors.New("no _inputs in manifest, can't generate bids structure without it")

// LoadFile loads and parses a manifest. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. A byte order mark selects UTF-8 or
// UTF-16 and is dropped; without one the file is read as UTF-8.
func LoadFile(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON manifest. Numbers in metadata are kept as
// json.Number so sidecars reproduce them verbatim.
func ParseJSON(data []byte) (*Manifest, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}

	raw, ok := top[InputsKey]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, ErrNoInputs
	}

	m := &Manifest{Sources: make(map[string]Source, len(top))}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(&m.Inputs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", InputsKey, err)
	}

	for key, value := range top {
		if key == InputsKey {
			continue
		}

		var src Source
		if err := json.Unmarshal(value, &src); err != nil {
			log.WithFields(log.Fields{
				"key": key,
			}).Debug("Ignoring non-path manifest entry")

			continue
		}

		m.Sources[key] = src
	}

	return m, nil
}

// ParseYAML parses a YAML manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNoInputs
	}

	root := doc.Content[0]
	m := &Manifest{Sources: make(map[string]Source, len(root.Content)/2)}
	found := false

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]

		if key == InputsKey {
			if value.Tag == "!!null" {
				continue
			}

			if err := value.Decode(&m.Inputs); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", InputsKey, err)
			}

			found = true

			continue
		}

		var src Source
		if err := value.Decode(&src); err != nil {
			log.WithFields(log.Fields{
				"key": key,
			}).Debug("Ignoring non-path manifest entry")

			continue
		}

		m.Sources[key] = src
	}

	if !found {
		return nil, ErrNoInputs
	}

	return m, nil
}
