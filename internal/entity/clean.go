package entity

import "strings"

// Clean strips every character that is not an ASCII letter or digit.
// Non-ASCII letters are dropped, so "José" becomes "Jos".
func Clean(value string) string {
	if value == "" {
		return ""
	}

	var b strings.Builder

	b.Grow(len(value))

	for _, r := range value {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// ParseRun cleans value and returns its canonical integer form ("01" -> "1").
// It reports false when the cleaned value is not all digits. Values of any
// length are accepted.
func ParseRun(value string) (string, bool) {
	cleaned := Clean(value)
	if cleaned == "" || strings.IndexFunc(cleaned, func(r rune) bool { return !isDigit(r) }) >= 0 {
		return "", false
	}

	if trimmed := strings.TrimLeft(cleaned, "0"); trimmed != "" {
		return trimmed, true
	}

	return "0", true
}
