// Package slug derives URL-safe slugs from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make converts a display name into a slug: lowercase, punctuation
// stripped, runs of whitespace collapsed into single dashes.
// "CCTV & Security Cameras" -> "cctv-security-cameras".
func Make(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteRune(' ')
		}
		// anything else (punctuation, symbols) is dropped
	}

	return strings.Join(strings.Fields(b.String()), "-")
}
