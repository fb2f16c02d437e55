package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Name returns the key two player names are compared by: surrounding
// whitespace trimmed, NFC composed and lower-cased.
func Name(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return cases.Lower(language.Und).String(name)
}

// Text trims free-form text fields.
func Text(s string) string {
	return strings.TrimSpace(s)
}
