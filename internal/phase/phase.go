// Package phase converts phase-encoding directions declared in scanner
// coordinates (x, y, z) into the voxel-axis convention (i, j, k) BIDS requires.
package phase

import (
	"errors"
	"fmt"
	"strings"

	"bl2bids/internal/nifti"
)

var (
	// ErrMalformedDirection is returned for directions outside {x,y,z,i,j,k}
	// with an optional trailing "-".
	ErrMalformedDirection = errors.New("malformed phase encoding direction")
	// ErrBadAxisCode is returned when an axis code is not one of LRAPSI.
	ErrBadAxisCode = errors.New("bad axis code")
)

// negative is the anatomical pole that flips polarity for each scanner axis.
var negative = map[byte]byte{'x': 'L', 'y': 'P', 'z': 'I'}

var scannerAxis = map[byte]int{'x': 0, 'y': 1, 'z': 2}

// voxelLabel maps an axis code to the voxel axis label.
func voxelLabel(code byte) (byte, bool) {
	switch code {
	case 'L', 'R':
		return 'i', true
	case 'A', 'P':
		return 'j', true
	case 'S', 'I':
		return 'k', true
	default:
		return 0, false
	}
}

// IsVoxelAxis reports whether declared already uses the i/j/k convention.
func IsVoxelAxis(declared string) bool {
	return declared != "" && strings.IndexByte("ijk", declared[0]) >= 0
}

// Correct returns declared in i/j/k form for an image with the given axis
// codes. Directions already in i/j/k form are returned unchanged.
//
// The code of the voxel axis at the scanner axis' index selects the label;
// polarity is inverted when that code is the negative pole of the declared
// axis (L for x, P for y, I for z), since i/j/k increase toward R/A/S.
func Correct(declared string, codes nifti.AxisCodes) (string, error) {
	if declared == "" || len(declared) > 2 || (len(declared) == 2 && declared[1] != '-') {
		return "", fmt.Errorf("%w: %q", ErrMalformedDirection, declared)
	}

	if IsVoxelAxis(declared) {
		return declared, nil
	}

	axis := declared[0]

	idx, ok := scannerAxis[axis]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedDirection, declared)
	}

	code := codes[idx]

	label, ok := voxelLabel(code)
	if !ok {
		return "", fmt.Errorf("%w: %q in %q", ErrBadAxisCode, code, codes.String())
	}

	inverted := len(declared) == 2
	if code == negative[axis] {
		inverted = !inverted
	}

	out := string(label)
	if inverted {
		out += "-"
	}

	return out, nil
}
