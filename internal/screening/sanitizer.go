package screening

import (
	"regexp"
	"strings"
)

// MaxMessageLength is the hard cap applied to inbound messages.
// Longer input is truncated silently.
const MaxMessageLength = 2000

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Sanitize normalizes raw user input before any further processing:
// markup-tag-like substrings are removed, whitespace runs collapse to a
// single space, and the result is trimmed and truncated to
// MaxMessageLength characters.
//
// Sanitize is pure and idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	s := tagPattern.ReplaceAllString(raw, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > MaxMessageLength {
		s = strings.TrimSpace(s[:MaxMessageLength])
	}
	return s
}
