package datatype

import "strings"

// Platform identifiers of the datatypes the default registry knows.
const (
	IDAnatT1w          = "58c33bcee13a50849b25879a"
	IDAnatT2w          = "594c0325fa1d2e5a1f0beda5"
	IDDWI              = "58c33c5fe13a50849b25879b"
	IDFuncBold         = "59b685a08e5d38b0b331ddc5"
	IDFuncRegressors   = "5c4f6a8af9109beac4b3dae0"
	IDFieldmap         = "5c390505f9109beac42b00df"
	IDMEGCTF           = "6000714baacf9e22a6a691c8"
	IDMEGFIF           = "6000737faacf9ee51fa691cb"
	IDEEGEEGLAB        = "60007410aacf9e4edda691d4"
	IDEEGEDF           = "600074f6aacf9e7acda691d7"
	IDEEGBrainVision   = "6000753eaacf9e6591a691d9"
	IDEEGBDF           = "60007567aacf9e1615a691dd"
	IDFreesurferOutput = "58cb22c8e13a50849b25882e"
)

// TaskPolicy decides the task entity when the metadata carries none.
type TaskPolicy int

const (
	// TaskNone leaves the task entity out.
	TaskNone TaskPolicy = iota
	// TaskRest defaults to "task-rest".
	TaskRest
	// TaskIndexed defaults to "task-id<N>", N being the 1-based record index.
	TaskIndexed
)

// FileRule describes one file a datatype installs.
type FileRule struct {
	// Match lists source filename suffixes accepted for this file. The first
	// entry is also the canonical filename inside a staged input directory.
	Match []string
	// Suffix is appended to the destination stem after "_", e.g. "dwi.bval".
	Suffix string
	// Shared files use the short name and are reused across runs of a session.
	Shared bool
	// JSON files of fieldmaps are written by the cross-reference pass.
	JSON bool
}

// Matches reports whether the source path satisfies the rule.
func (r FileRule) Matches(src string) bool {
	for _, m := range r.Match {
		if strings.HasSuffix(src, m) {
			return true
		}
	}

	return false
}

// Canonical returns the filename the rule expects inside an input directory.
func (r FileRule) Canonical() string {
	if len(r.Match) == 0 {
		return ""
	}

	return r.Match[0]
}

// Datatype is one registry entry.
type Datatype struct {
	// ID is the opaque platform identifier.
	ID string
	// Name is a readable alias accepted in place of ID, e.g. "anat-T1w".
	Name     string
	Modality Modality
	// Suffix is the BIDS suffix of the sidecar, e.g. "T1w". Empty means no
	// sidecar is generated from metadata.
	Suffix string
	Files  []FileRule
	// Geometry marks datatypes whose sidecar PhaseEncodingDirection is
	// corrected against the image orientation.
	Geometry bool
	// IntendedFor marks datatypes whose image is listed in fieldmap sidecars.
	IntendedFor bool
	Task        TaskPolicy
	// Desc is a fixed desc entity value.
	Desc string
	// Registered is false for identifiers unknown to the registry.
	Registered bool
}

// IsDerivative reports whether the datatype is placed under derivatives.
func (d Datatype) IsDerivative() bool {
	return d.Modality == ModalityDerivatives
}

// ImageName returns the file name suffix registered into IntendedFor.
func (d Datatype) ImageName() string {
	return d.Suffix + ".nii.gz"
}

// Label returns Name when set, ID otherwise.
func (d Datatype) Label() string {
	if d.Name != "" {
		return d.Name
	}

	return d.ID
}
