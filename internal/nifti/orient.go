package nifti

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AxisCodes holds, per voxel axis, the anatomical direction the axis
// increases toward: one of L, R, A, P, S, I. RAS is the canonical order.
type AxisCodes [3]byte

// String returns the codes as a 3 letter string, e.g. "RAS".
func (c AxisCodes) String() string {
	return string(c[:])
}

// ParseAxisCodes parses a 3 letter string such as "LPS".
func ParseAxisCodes(s string) (AxisCodes, error) {
	var c AxisCodes
	if len(s) != len(c) {
		return c, errors.New("axis codes must have 3 letters")
	}

	copy(c[:], s)

	return c, nil
}

// labels[world axis] = {negative, positive}.
var labels = [3][2]byte{{'L', 'R'}, {'P', 'A'}, {'I', 'S'}}

// ErrDegenerateAffine is returned when the affine has no usable rotation.
var ErrDegenerateAffine = errors.New("degenerate affine")

// AxisCodes returns the anatomical axis codes of the affine.
//
// The rotation part is normalized by the voxel sizes and replaced by its
// closest orthogonal matrix (U·Vᵀ from the SVD); then each voxel axis is
// assigned, in order, to the world axis with the largest absolute component
// not yet taken. This mirrors nibabel's io_orientation / aff2axcodes.
func (a Affine) AxisCodes() (AxisCodes, error) {
	rs := mat.NewDense(3, 3, nil)

	for j := 0; j < 3; j++ {
		norm := math.Sqrt(a[0][j]*a[0][j] + a[1][j]*a[1][j] + a[2][j]*a[2][j])
		if norm == 0 {
			norm = 1
		}

		for i := 0; i < 3; i++ {
			rs.Set(i, j, a[i][j]/norm)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(rs, mat.SVDFull); !ok {
		return AxisCodes{}, ErrDegenerateAffine
	}

	values := svd.Values(nil)
	tol := values[0] * 3 * 2.220446049250313e-16

	for _, v := range values {
		if v <= tol {
			return AxisCodes{}, ErrDegenerateAffine
		}
	}

	var u, v, r mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	r.Mul(&u, v.T())

	var codes AxisCodes

	for in := 0; in < 3; in++ {
		out, best := -1, 0.0

		for i := 0; i < 3; i++ {
			if x := math.Abs(r.At(i, in)); x > best {
				out, best = i, x
			}
		}

		if out < 0 {
			return AxisCodes{}, ErrDegenerateAffine
		}

		if r.At(out, in) < 0 {
			codes[in] = labels[out][0]
		} else {
			codes[in] = labels[out][1]
		}

		for j := 0; j < 3; j++ {
			r.Set(out, j, 0)
		}
	}

	return codes, nil
}
