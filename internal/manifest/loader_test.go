package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonManifest = `{
  "_inputs": [
    {
      "id": "t1w",
      "task_id": "5f1b9122",
      "subdir": "5f1b912c",
      "datatype": "58c33bcee13a50849b25879a",
      "meta": {"subject": "01", "run": 1, "EchoTime": 0.00492},
      "keys": ["t1"]
    },
    {
      "id": "dwi",
      "datatype": "58c33c5fe13a50849b25879b",
      "meta": {"subject": "01"},
      "keys": ["dwi", "bvecs"]
    }
  ],
  "t1": "../5f1b9122/5f1b912c/t1.nii.gz",
  "dwi": ["../a/dwi.nii.gz", "../b/dwi.nii.gz"],
  "bvecs": ["../a/dwi.bvecs"],
  "threshold": 3,
  "options": {"x": 1}
}`

const yamlManifest = `
_inputs:
  - id: t1w
    task_id: "5f1b9122"
    subdir: "5f1b912c"
    datatype: 58c33bcee13a50849b25879a
    meta:
      subject: "01"
      run: 1
      EchoTime: 0.00492
    keys: [t1]
  - id: dwi
    datatype: 58c33c5fe13a50849b25879b
    meta:
      subject: "01"
    keys: [dwi, bvecs]
t1: ../5f1b9122/5f1b912c/t1.nii.gz
dwi:
  - ../a/dwi.nii.gz
  - ../b/dwi.nii.gz
bvecs: [../a/dwi.bvecs]
options:
  x: 1
`

func assertParsedManifest(t *testing.T, m *Manifest) {
	t.Helper()

	require.Len(t, m.Inputs, 2)

	t1 := m.Inputs[0]
	assert.Equal(t, "t1w", t1.ID)
	assert.Equal(t, "58c33bcee13a50849b25879a", t1.Datatype)
	assert.Equal(t, []string{"t1"}, t1.Keys)
	assert.Equal(t, filepath.Join("..", "5f1b9122", "5f1b912c"), t1.InputDir())

	subject, ok := MetaString(t1.Meta, "subject")
	assert.True(t, ok)
	assert.Equal(t, "01", subject)

	run, ok := MetaString(t1.Meta, "run")
	assert.True(t, ok)
	assert.Equal(t, "1", run)

	assert.Equal(t, Source{Paths: []string{"../5f1b9122/5f1b912c/t1.nii.gz"}}, m.Sources["t1"])
	assert.Equal(t, Source{Paths: []string{"../a/dwi.nii.gz", "../b/dwi.nii.gz"}, IsList: true}, m.Sources["dwi"])
	assert.Equal(t, Source{Paths: []string{"../a/dwi.bvecs"}, IsList: true}, m.Sources["bvecs"])
	assert.NotContains(t, m.Sources, "options")
	assert.NotContains(t, m.Sources, InputsKey)
}

func TestParseJSON(t *testing.T) {
	m, err := ParseJSON([]byte(jsonManifest))
	require.NoError(t, err)

	assertParsedManifest(t, m)
	assert.Equal(t, json.Number("0.00492"), m.Inputs[0].Meta["EchoTime"])
	assert.Empty(t, m.Inputs[1].InputDir())
}

func TestParseYAML(t *testing.T) {
	m, err := ParseYAML([]byte(yamlManifest))
	require.NoError(t, err)

	assertParsedManifest(t, m)
}

func TestParse_NoInputs(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) (*Manifest, error)
		data  string
	}{
		{"json missing", ParseJSON, `{"t1": "t1.nii.gz"}`},
		{"json null", ParseJSON, `{"_inputs": null}`},
		{"yaml missing", ParseYAML, "t1: t1.nii.gz\n"},
		{"yaml null", ParseYAML, "_inputs:\n"},
		{"yaml empty", ParseYAML, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parse([]byte(tt.data))
			require.ErrorIs(t, err, ErrNoInputs)
		})
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"_inputs": [`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoInputs)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonManifest), 0o644))

	yamlPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlManifest), 0o644))

	fromJSON, err := LoadFile(jsonPath)
	require.NoError(t, err)

	fromYAML, err := LoadFile(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Sources, fromYAML.Sources)
	assert.Len(t, fromJSON.Sources, 3)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_ByteOrderMark(t *testing.T) {
	dir := t.TempDir()

	utf8Path := filepath.Join(dir, "utf8.json")
	require.NoError(t, os.WriteFile(utf8Path, append([]byte{0xEF, 0xBB, 0xBF}, jsonManifest...), 0o644))

	utf16 := []byte{0xFF, 0xFE}
	for _, r := range jsonManifest {
		require.Less(t, r, rune(0x80), "fixture must be ASCII")
		utf16 = append(utf16, byte(r), 0)
	}

	utf16Path := filepath.Join(dir, "utf16.json")
	require.NoError(t, os.WriteFile(utf16Path, utf16, 0o644))

	plain, err := ParseJSON([]byte(jsonManifest))
	require.NoError(t, err)

	for _, path := range []string{utf8Path, utf16Path} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			m, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, plain, m)
		})
	}
}

func TestMetaString(t *testing.T) {
	meta := map[string]any{
		"s":      "x",
		"n":      json.Number("3"),
		"f":      2.5,
		"i":      7,
		"nested": map[string]any{"a": 1},
		"list":   []any{1},
		"nil":    nil,
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"s", "x", true},
		{"n", "3", true},
		{"f", "2.5", true},
		{"i", "7", true},
		{"nested", "", false},
		{"list", "", false},
		{"nil", "", false},
		{"absent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := MetaString(meta, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
