package common

import "strings"

// UnknownStr is the name printed for enum values outside their known range.
const UnknownStr = "unknown"

// niftiExts lists image extensions, longest first.
var niftiExts = []string{".nii.gz", ".nii"}

// IsNifti reports whether path names a NIfTI image, compressed or not.
func IsNifti(path string) bool {
	for _, ext := range niftiExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
