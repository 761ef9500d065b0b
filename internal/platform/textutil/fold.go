package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinFold decomposes a rune and drops its combining marks, mapping
// accented Latin letters to their base form (é -> e, ñ -> n).
var latinFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// accentedLatin reports whether the rune sits in the Latin-1 Supplement or
// Latin Extended blocks where diacritics occur.
func accentedLatin(r rune) bool {
	return r >= 0x00C0 && r <= 0x024F
}

// FoldLatin replaces accented Latin letters with their unaccented base
// letters and leaves every other rune untouched. Non-Latin scripts pass
// through unchanged; Devanagari matras in particular must survive.
func FoldLatin(value string) string {
	needsFold := false
	for _, r := range value {
		if accentedLatin(r) {
			needsFold = true
			break
		}
	}
	if !needsFold {
		return value
	}

	var builder strings.Builder
	builder.Grow(len(value))
	for _, r := range value {
		if accentedLatin(r) {
			if folded, _, err := transform.String(latinFold, string(r)); err == nil {
				builder.WriteString(folded)
				continue
			}
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
