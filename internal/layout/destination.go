package layout

import (
	"path/filepath"

	"bl2bids/internal/entity"
)

// Destination is where one input record is placed.
type Destination struct {
	// Dir is the directory files are installed into, e.g. "bids/sub-01/anat".
	Dir string
	// SubjectDir is "<root>/sub-<subject>", or "" for derivatives.
	SubjectDir string
	// Full names run-specific files.
	Full entity.Name
	// Short names files shared by every run of the session.
	Short entity.Name
}

// File returns the path of a file with the given suffix, e.g. "T1w.nii.gz".
// Shared files use the short name. Without any entity the suffix alone is
// the file name.
func (d Destination) File(suffix string, shared bool) string {
	name := d.Full
	if shared {
		name = d.Short
	}

	if name.IsEmpty() {
		return filepath.Join(d.Dir, suffix)
	}

	return filepath.Join(d.Dir, name.String()+"_"+suffix)
}

// RelativeToSubject returns path relative to the subject directory, using
// forward slashes as BIDS requires. Paths outside it are returned unchanged.
func (d Destination) RelativeToSubject(path string) string {
	if d.SubjectDir == "" {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(d.SubjectDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
