package board

import (
	"strings"
	"unicode/utf8"
)

// Field limits shared by the service and its callers.
const (
	MaxTitle    = 80
	MaxContent  = 2000
	MaxPassword = 20
	MinPassword = 4
)

// NormalizeText trims surrounding whitespace.
func NormalizeText(value string) string {
	return strings.TrimSpace(value)
}

// ValidateText trims value and reports whether the result is non-empty and at
// most maxLength characters (runes, not bytes). Returns the trimmed text.
func ValidateText(value string, maxLength int) (string, bool) {
	text := NormalizeText(value)
	if text == "" {
		return "", false
	}
	if utf8.RuneCountInString(text) > maxLength {
		return "", false
	}
	return text, true
}
