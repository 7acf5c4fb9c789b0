package sanitizer

// Field length caps applied during sanitisation.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// SanitizeEmail trims, lowercases and caps an e-mail address at 254 characters.
// It does not validate the format.
func SanitizeEmail(email string) string {
	return MaxLength(TrimToLower(email), MaxEmailLength)
}

// SanitizeName trims a person's name, caps it at 100 characters and escapes it.
// Unicode letters pass through unchanged.
func SanitizeName(name string) string {
	return EscapeHTML(MaxLength(Trim(name), MaxNameLength))
}

// SanitizeText prepares free-form user text for storage: it trims, drops
// control characters other than line breaks and tabs, caps the value at
// maxLen characters and escapes it.
func SanitizeText(s string, maxLen int) string {
	s = RemoveControlChars(Trim(s))
	return EscapeHTML(MaxLength(s, maxLen))
}
