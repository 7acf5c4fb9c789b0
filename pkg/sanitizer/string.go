package sanitizer

import (
	"strings"
	"unicode"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower removes leading and trailing whitespace and converts to lowercase.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MaxLength truncates a string to at most maxLen characters.
// Counting is done in runes so multi-byte characters are never split.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}

// NormalizeWhitespace replaces every run of whitespace with a single space and trims.
func NormalizeWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}

// RemoveControlChars removes control characters from a string,
// keeping only printable characters and common whitespace.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
