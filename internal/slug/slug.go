// Package slug derives canonical directory names for scenarios.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug converts a string into a canonical scenario directory name.
// It NFD-normalizes, strips combining marks, lowercases, maps whitespace
// to dashes, keeps letters, digits, dashes and underscores, and collapses
// runs of dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r) || r == '-':
			dash = b.Len() > 0
			continue
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsCanonical reports whether name is already its own slug.
func IsCanonical(name string) bool {
	return name != "" && Slug(name) == name
}
