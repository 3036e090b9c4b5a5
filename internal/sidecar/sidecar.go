package sidecar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"bl2bids/internal/entity"
	"bl2bids/internal/manifest"
	"bl2bids/internal/nifti"
	"bl2bids/internal/phase"
)

// Sidecar keys with special handling.
const (
	KeyDatatype               = "datatype"
	KeyRun                    = "run"
	KeySubject                = "subject"
	KeyPhaseEncodingDirection = "PhaseEncodingDirection"
	KeyRepetitionTime         = "RepetitionTime"
	KeyIntendedFor            = "IntendedFor"
)

const filePerm = 0o644

// Document is a decoded sidecar.
type Document map[string]any

// FromMeta returns the sidecar for a record's metadata: a copy without the
// "datatype" and "run" keys, with the subject cleaned to its path form.
func FromMeta(meta map[string]any) Document {
	doc := Document(manifest.CloneMeta(meta))

	delete(doc, KeyDatatype)
	delete(doc, KeyRun)

	if subject, ok := manifest.MetaString(doc, KeySubject); ok {
		doc[KeySubject] = entity.Clean(subject)
	}

	return doc
}

// PhaseEncoding returns the PhaseEncodingDirection string, if any.
func (d Document) PhaseEncoding() (string, bool) {
	pe, ok := d[KeyPhaseEncodingDirection].(string)
	return pe, ok && pe != ""
}

// CorrectPhaseEncoding rewrites PhaseEncodingDirection into voxel-axis form
// for an image with the given axis codes. On error the document is left
// unchanged.
func (d Document) CorrectPhaseEncoding(codes nifti.AxisCodes) error {
	pe, ok := d.PhaseEncoding()
	if !ok {
		return nil
	}

	corrected, err := phase.Correct(pe, codes)
	if err != nil {
		return err
	}

	if corrected != pe {
		log.WithFields(log.Fields{
			"declared":    pe,
			"orientation": codes.String(),
			"corrected":   corrected,
		}).Debug("correcting PhaseEncodingDirection")
	}

	d[KeyPhaseEncodingDirection] = corrected

	return nil
}

// RepetitionTime returns the numeric RepetitionTime, if any.
func (d Document) RepetitionTime() (float64, bool) {
	switch v := d[KeyRepetitionTime].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// SetIntendedFor replaces IntendedFor with paths, never null.
func (d Document) SetIntendedFor(paths []string) {
	list := make([]string, len(paths))
	copy(list, paths)
	d[KeyIntendedFor] = list
}

// Read decodes the JSON object at path, keeping numbers as json.Number so
// they are written back unchanged.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar %s: %w", path, err)
	}

	if doc == nil {
		doc = Document{}
	}

	return doc, nil
}

// Marshal renders doc with sorted keys, two-space indentation and a trailing
// newline.
func Marshal(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// Write writes doc to path, replacing any existing file.
func Write(path string, doc any) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode sidecar %s: %w", path, err)
	}

	// A hard link left by an earlier install must not be written through.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace sidecar %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write sidecar %s: %w", path, err)
	}

	log.WithFields(log.Fields{"path": path}).Debug("wrote sidecar")

	return nil
}
