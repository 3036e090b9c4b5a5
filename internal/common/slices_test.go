package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAt(t *testing.T) {
	s := []string{"a", "b"}

	v, ok := At(s, 1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = At(s, 2)
	assert.False(t, ok)

	_, ok = At(s, -1)
	assert.False(t, ok)
}

func TestNiftiPaths(t *testing.T) {
	tests := []struct {
		path    string
		isNifti bool
	}{
		{"dwi.nii.gz", true},
		{"a/b/t1.nii", true},
		{"dwi.bvecs", false},
		{"phasediff.json", false},
		{"t1.nii.gz.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.isNifti, IsNifti(tt.path))
		})
	}
}
