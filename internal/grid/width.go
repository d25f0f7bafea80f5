package grid

import (
	"unicode"

	"golang.org/x/text/width"
)

// RuneWidth reports how many cells r occupies: 0 for combining marks and
// non-printable runes, 2 for East Asian wide/fullwidth runes, 1 otherwise.
func RuneWidth(r rune) int {
	if r == 0 || !unicode.IsPrint(r) {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
