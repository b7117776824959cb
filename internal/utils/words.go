package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// NormalizeWord trims, NFC-normalizes and lower-cases a dictionary word so stored values and
// lookup input compare equal.
// Example: "  Bonjou " -> "bonjou", "ÉCOLE" -> "école"
func NormalizeWord(word string) string {
	return lowerCaser.String(norm.NFC.String(strings.TrimSpace(word)))
}

// EscapeLike escapes the LIKE wildcards in s using a backslash, to be paired with
// "ESCAPE '\'" in the statement.
// Example: "50%_off" -> "50\%\_off"
func EscapeLike(s string) string {
	if !strings.ContainsAny(s, `%_\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeText trims surrounding whitespace and collapses inner runs of whitespace.
// Example: "\n   Good\n  morning  " -> "Good morning"
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
