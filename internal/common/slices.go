package common

// At returns the i-th element of the slice and true, or the zero value and false if out of range.
func At[S ~[]E, E any](s S, i int) (E, bool) {
	if i < 0 || i >= len(s) {
		var zero E
		return zero, false
	}

	return s[i], true
}
