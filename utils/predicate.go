package utils

import "math"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](min T, value T, max T) bool {
	return min <= value && value <= max
}

// NearlyEqual reports whether a and b differ by no more than tol.
func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
