package nifti

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"bl2bids/utils"
)

// Header defines the structure of the Nifti1 header.
//
// Type translation from nifti1 C header to golang:
//
// C     Go
// -------------
// int   int32
// float float32
// short int16
// char  int8
type Header struct {
	SizeOfHdr          int32    // Must be 348
	UnusedDataType     [10]int8 // Unused
	UnusedDbName       [18]int8 // Unused
	UnusedExtents      int32    // Unused
	UnusedSessionError int16    // Unused
	UnusedRegular      int8     // Unused
	DimInfo            int8     // MRI slice ordering

	Dim           [8]int16   // Data array dimensions
	IntentP1      float32    // 1st intent parameter
	IntentP2      float32    // 2nd intent parameter
	IntentP3      float32    // 3rd intent parameter
	IntentCode    int16      // NIFTI_INTENT_* code
	DataType      int16      // Defines data type
	BitPix        int16      // Number bits/voxel
	SliceStart    int16      // First slice index
	PixDim        [8]float32 // Grid spacing
	VoxOffset     float32    // Offset into .nii file
	SclSlope      float32    // Data scaling: slope
	SclInter      float32    // Data scaling: offset
	SliceEnd      int16      // Last slice index
	SliceCode     int8       // Slice timing order
	XYZTUnits     int8       // Units of pixdim[1..4]
	CalMax        float32    // Max display intensity
	CalMin        float32    // Min display intensity
	SliceDuration float32    // Time for 1 slice
	TOffset       float32    // Time axis shift
	UnusedGlmax   int32      // Unused
	UnusedGlmin   int32      // Unused

	Descrip [80]int8 // Any text you like
	AuxFile [24]int8 // Auxiliary filename

	QFormCode int16 // NIFTI_XFORM_* code
	SFormCode int16 // NIFTI_XFORM_* code

	QuaternB float32 // Quaternion b params
	QuaternC float32 // Quaternion c params
	QuaternD float32 // Quaternion d params
	QOffsetX float32 // Quaternion x shift
	QOffsetY float32 // Quaternion y shift
	QOffsetZ float32 // Quaternion z shift

	SRowX [4]float32 // 1st row affine transform
	SRowY [4]float32 // 2nd row affine transform
	SRowZ [4]float32 // 3rd row affine transform

	IntentName [16]int8 // 'name' or meaning of data

	Magic [4]int8 // Must be "ni1\0" or "n+1\0"
}

const headerSize = 348

var (
	magicSingle = [4]int8{'n', '+', '1', 0}
	magicPair   = [4]int8{'n', 'i', '1', 0}
	gzipMagic   = []byte{0x1f, 0x8b}
)

// ErrInvalidHeader is returned for data that is not a NIfTI-1 header.
var ErrInvalidHeader = errors.New("invalid nifti1 header")

// ReadHeader reads a header from r and returns it with the byte order of the
// file. The byte order is inferred from Dim[0], which must be in [1, 7].
// Refer to this link for the C implementation
// https://github.com/afni/afni/blob/master/src/nifti/niftilib/nifti1_io.c#L3948-L4042
func ReadHeader(r io.Reader) (Header, binary.ByteOrder, error) {
	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, nil, fmt.Errorf("%w: reading %d bytes: %v", ErrInvalidHeader, headerSize, err)
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		var h Header
		if err := binary.Read(bytes.NewReader(raw), order, &h); err != nil {
			return Header{}, nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}

		if !utils.IsInRange(1, h.Dim[0], 7) {
			continue
		}

		if err := validateHeader(h); err != nil {
			return Header{}, nil, err
		}

		log.WithFields(log.Fields{
			"byteOrder": order,
		}).Debug("Found byte order")

		return h, order, nil
	}

	return Header{}, nil, fmt.Errorf("%w: cannot infer byte order, dim[0] not in range [1, 7]", ErrInvalidHeader)
}

// Check https://github.com/afni/afni/blob/master/src/nifti/niftilib/nifti1_io.c#L4045-L4104
func validateHeader(h Header) error {
	switch {
	case h.SizeOfHdr != headerSize:
		return fmt.Errorf("%w: header size %d", ErrInvalidHeader, h.SizeOfHdr)
	case h.Magic != magicSingle && h.Magic != magicPair:
		return fmt.Errorf("%w: bad file magic", ErrInvalidHeader)
	}

	return nil
}

// ReadHeaderFile reads the header of a .nii or .nii.gz file. Compression is
// detected from the content, not the extension.
func ReadHeaderFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)

	var r io.Reader = br
	if magic, _ := br.Peek(len(gzipMagic)); bytes.Equal(magic, gzipMagic) {
		log.WithFields(log.Fields{
			"decompression": "gzip",
			"path":          path,
		}).Debug("Decompressing ...")

		g, err := gzip.NewReader(br)
		if err != nil {
			return Header{}, fmt.Errorf("inflating %s: %w", path, err)
		}
		defer g.Close()

		r = g
	}

	h, _, err := ReadHeader(r)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", path, err)
	}

	return h, nil
}
