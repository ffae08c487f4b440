// Package strings holds the text helpers shared by extractors and the audit service
package strings

import (
	std "strings"
	"unicode"
)

// IfEmpty returns def when in has no elements. Reports use it so empty sections
// encode as [] rather than null
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Collapse trims s and folds every run of whitespace (NBSP included) into one space.
// Spreadsheet cells and PDF text runs carry padding that must not leak into names
func Collapse(s string) string {
	var b std.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
