package nifti

import "math"

// Affine is the upper 3x4 part of a voxel (i,j,k) to world (x,y,z) transform.
type Affine [3][4]float64

// Affine returns the best available transform of the header: the sform when
// its code is set, the qform when its code is set, and otherwise the base
// transform built from the voxel sizes alone.
func (h Header) Affine() Affine {
	switch {
	case h.SFormCode > 0:
		return h.sform()
	case h.QFormCode > 0:
		return h.qform()
	default:
		return h.baseAffine()
	}
}

func (h Header) sform() Affine {
	var a Affine
	for i, row := range [3][4]float32{h.SRowX, h.SRowY, h.SRowZ} {
		for j, v := range row {
			a[i][j] = float64(v)
		}
	}

	return a
}

// zooms returns the voxel sizes, substituting 1 for non-positive entries.
func (h Header) zooms() (dx, dy, dz float64) {
	sizes := [3]float64{}
	for i := range sizes {
		sizes[i] = float64(h.PixDim[i+1])
		if sizes[i] <= 0 {
			sizes[i] = 1
		}
	}

	return sizes[0], sizes[1], sizes[2]
}

// qform builds the transform from the quaternion parameters.
// Refer to quatern_to_mat44 in
// https://github.com/afni/afni/blob/master/src/nifti/niftilib/nifti1_io.c
func (h Header) qform() Affine {
	b, c, d := float64(h.QuaternB), float64(h.QuaternC), float64(h.QuaternD)

	a := 1 - (b*b + c*c + d*d)
	if a < 1e-7 {
		// Special case: a 180 degree rotation, renormalize (b, c, d).
		a = 1 / math.Sqrt(b*b+c*c+d*d)
		b, c, d = a*b, a*c, a*d
		a = 0
	} else {
		a = math.Sqrt(a)
	}

	xd, yd, zd := h.zooms()
	if h.PixDim[0] < 0 {
		zd = -zd
	}

	return Affine{
		{(a*a + b*b - c*c - d*d) * xd, 2 * (b*c - a*d) * yd, 2 * (b*d + a*c) * zd, float64(h.QOffsetX)},
		{2 * (b*c + a*d) * xd, (a*a + c*c - b*b - d*d) * yd, 2 * (c*d - a*b) * zd, float64(h.QOffsetY)},
		{2 * (b*d - a*c) * xd, 2 * (c*d + a*b) * yd, (a*a + d*d - c*c - b*b) * zd, float64(h.QOffsetZ)},
	}
}

// baseAffine is the Analyze-style transform used when neither form is set.
// The first axis is flipped, giving an LAS orientation.
func (h Header) baseAffine() Affine {
	xd, yd, zd := h.zooms()

	nx, ny, nz := float64(h.Dim[1]), float64(h.Dim[2]), float64(h.Dim[3])

	return Affine{
		{-xd, 0, 0, xd * (nx - 1) / 2},
		{0, yd, 0, -yd * (ny - 1) / 2},
		{0, 0, zd, -zd * (nz - 1) / 2},
	}
}
