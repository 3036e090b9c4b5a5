package nifti

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// NewHeader returns a little-endian single-file header for a 3D volume with
// the given dimensions and unit voxel sizes. No transform code is set.
func NewHeader(nx, ny, nz int16) Header {
	return Header{
		SizeOfHdr: headerSize,
		Dim:       [8]int16{3, nx, ny, nz, 1, 1, 1, 1},
		DataType:  2, // DT_UNSIGNED_CHAR
		BitPix:    8,
		PixDim:    [8]float32{1, 1, 1, 1, 1, 1, 1, 1},
		VoxOffset: 352,
		Magic:     magicSingle,
	}
}

// WriteHeaderFile writes h followed by the 4 byte extension flag to path.
// Paths ending in ".gz" are gzip compressed. No voxel data is written.
func WriteHeaderFile(path string, h Header, order binary.ByteOrder) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, order, h); err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	buf.Write([]byte{0, 0, 0, 0})

	data := buf.Bytes()

	if strings.HasSuffix(path, ".gz") {
		var zbuf bytes.Buffer

		zw := gzip.NewWriter(&zbuf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("compressing header: %w", err)
		}

		if err := zw.Close(); err != nil {
			return fmt.Errorf("compressing header: %w", err)
		}

		data = zbuf.Bytes()
	}

	return os.WriteFile(path, data, 0o644)
}
