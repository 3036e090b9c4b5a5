package nifti

import (
	log "github.com/sirupsen/logrus"
)

// Inspector reads orientation and timing information from image files.
type Inspector struct{}

// AxisCodes returns the anatomical axis codes of the image at path.
func (Inspector) AxisCodes(path string) (AxisCodes, error) {
	h, err := ReadHeaderFile(path)
	if err != nil {
		return AxisCodes{}, err
	}

	codes, err := h.Affine().AxisCodes()
	if err != nil {
		return AxisCodes{}, err
	}

	log.WithFields(log.Fields{
		"path":        path,
		"orientation": codes.String(),
	}).Debug("Read image orientation")

	return codes, nil
}

// NIFTI_UNITS_* time codes, stored in bits 3-5 of xyzt_units.
const (
	unitsMsec = 16
	unitsUsec = 24
	timeMask  = 0x38
)

// RepetitionTime returns pixdim[4] of the image at path, the spacing of the
// time axis, converted to seconds. Headers without time units are taken to
// be in seconds.
func (Inspector) RepetitionTime(path string) (float64, error) {
	h, err := ReadHeaderFile(path)
	if err != nil {
		return 0, err
	}

	tr := float64(h.PixDim[4])

	switch int(h.XYZTUnits) & timeMask {
	case unitsMsec:
		tr /= 1e3
	case unitsUsec:
		tr /= 1e6
	}

	return tr, nil
}
