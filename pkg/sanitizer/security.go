package sanitizer

import "strings"

// maxSubjectLength caps outbound e-mail subjects.
const maxSubjectLength = 200

// htmlReplacer escapes the fixed set & < > " ' / in a single pass.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML replaces & < > " ' and / with HTML entities.
// Any other character, including non-ASCII letters, is left untouched.
// The function is not idempotent: already escaped input is escaped again.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// SanitizeEmailSubject makes a string safe for use as an e-mail subject.
// Carriage returns, line feeds and tabs are removed so the value cannot
// inject additional headers, whitespace runs collapse to one space and the
// result is capped at 200 characters.
func SanitizeEmailSubject(s string) string {
	s = headerBreakRegex.ReplaceAllString(s, " ")
	s = NormalizeWhitespace(s)
	return MaxLength(s, maxSubjectLength)
}

// TextToHTMLParagraphs converts plain text into HTML paragraphs.
// The text is escaped first, blank lines separate <p> blocks and single
// line breaks inside a block become <br>. Empty input yields "<p></p>".
func TextToHTMLParagraphs(s string) string {
	escaped := EscapeHTML(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\r", "\n")

	blocks := paragraphBreakRegex.Split(escaped, -1)

	var b strings.Builder
	b.Grow(len(escaped) + len(blocks)*7)
	for _, block := range blocks {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(block, "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
