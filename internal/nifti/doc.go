// Package nifti reads NIfTI-1 headers and derives the anatomical axis codes
// of an image from its affine.
//
// Based on the official definition of the nifti1 header,
// https://nifti.nimh.nih.gov/pub/dist/src/niftilib/nifti1.h
//
// Only the 348 byte header is read; gzip compressed files are inflated on
// the fly and never fully decompressed.
package nifti
