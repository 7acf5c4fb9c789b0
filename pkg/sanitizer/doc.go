// Package sanitizer provides the helpers used to clean untrusted form input
// before it is stored, sent to a CRM or rendered into an email.
//
// The functions fall into three groups:
//
//   - Strings: trimming, rune-safe truncation, whitespace and control
//     character normalisation.
//
//   - Format: field-specific normalisation for e-mail addresses, names and
//     free text, each with a fixed length cap.
//
//   - Security: HTML escaping, header-injection safe e-mail subjects and
//     plain-text to HTML paragraph conversion.
//
// Escaping is not idempotent: EscapeHTML("&amp;") yields "&amp;amp;". Every
// value must be escaped exactly once, at the boundary where it leaves the
// application.
//
// # Usage
//
//	import "github.com/northlight/website/pkg/sanitizer"
//
//	name := sanitizer.SanitizeName("  <b>José</b> García ")
//	// name == "&lt;b&gt;José&lt;&#x2F;b&gt; García"
//
//	subject := sanitizer.SanitizeEmailSubject("Hello\r\nBcc: x@evil.com")
//	// subject == "Hello Bcc: x@evil.com"
//
// # Error handling
//
// None of the helpers returns an error. They always produce a safe result,
// falling back to an empty string or an empty paragraph.
//
// All functions are pure and safe for concurrent use.
package sanitizer
