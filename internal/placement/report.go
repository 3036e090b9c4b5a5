package placement

import (
	"bl2bids/internal/datatype"
	"bl2bids/internal/diagnostic"
	"bl2bids/internal/layout"
	"bl2bids/internal/manifest"
)

// Diagnostic codes reported by Run, in addition to those of manifest.Resolve
// and layout.Builder.
const (
	CodeMissingSubject         = "missing_subject"
	CodeSourceMissing          = "source_missing"
	CodePhaseEncoding          = "phase_encoding"
	CodeRepetitionTimeMismatch = "repetition_time_mismatch"
	CodeMkdir                  = "mkdir_failed"
	CodeInstall                = "install_failed"
	CodeSidecar                = "sidecar_failed"
)

// Placement records what was produced for one input record.
type Placement struct {
	Record      string
	Datatype    string
	Destination layout.Destination
	// Files lists the destination paths that exist after installing.
	Files []string
	// Sidecar is the metadata sidecar written for the record, if any.
	Sidecar string
}

// FieldmapContext is what the cross-reference pass needs to patch the
// sidecars of one fieldmap record.
type FieldmapContext struct {
	Record      manifest.Resolved
	Datatype    datatype.Datatype
	Destination layout.Destination
	// Sidecars lists the patched sidecars, filled in by the second pass.
	Sidecars []string
}

// Report summarizes a Run.
type Report struct {
	Placements []Placement
	// IntendedFor lists the DWI and BOLD images, relative to their subject
	// directory, in placement order.
	IntendedFor []string
	Fieldmaps   []FieldmapContext
	// DatasetDescription is the path of dataset_description.json.
	DatasetDescription string
	Diagnostics        diagnostic.Diagnostics
}
