package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// Whitespace normalization
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Characters that can split an e-mail header
	headerBreakRegex = regexp.MustCompile(`[\r\n\t]`)

	// A blank line (possibly containing spaces) separating two paragraphs
	paragraphBreakRegex = regexp.MustCompile(`\n\s*\n`)
)
