// Package devanagari converts Latin-script names into a best-effort
// Devanagari rendering. The conversion is a pure function of its input and
// an immutable dictionary set: whole-word lookup first, then a greedy
// longest-match scan over syllable clusters, then a per-letter fallback.
package devanagari

import (
	"strings"

	"github.com/seva-intake/api/internal/domain"
	"github.com/seva-intake/api/internal/platform/textutil"
)

const (
	maxProbe = 4
	minProbe = 2
)

// Transliterator converts Latin-script text using a fixed dictionary set.
// Safe for concurrent use; it holds no mutable state.
type Transliterator struct {
	dict Dictionaries
}

// New constructs a Transliterator over the supplied dictionaries. Nil maps
// are tolerated; matching tiers with no data simply never match.
func New(dict Dictionaries) *Transliterator {
	return &Transliterator{dict: dict}
}

// Default returns a Transliterator over the dictionaries shipped with the
// package.
func Default() *Transliterator {
	return New(DefaultDictionaries())
}

// Transliterate renders input in Devanagari. It is total: any string,
// including empty, numeric, or mixed-script input, yields a defined result
// and never an error. Empty or whitespace-only input yields "". When the
// dictionaries produce nothing at all the original input comes back
// verbatim, so user text is never silently erased.
func (t *Transliterator) Transliterate(input string) string {
	normalized := t.normalize(input)
	if normalized == "" {
		return ""
	}

	if value, ok := t.dict.Words[normalized]; ok {
		return value
	}

	runes := []rune(normalized)
	var out strings.Builder
	for cursor := 0; cursor < len(runes); {
		advance, piece := t.matchAt(runes, cursor)
		out.WriteString(piece)
		cursor += advance
	}

	if out.Len() == 0 {
		return input
	}
	return out.String()
}

// matchAt resolves the longest syllable match at cursor, probing window
// lengths 4, 3, 2 in that order, then the single-letter fallback. Runes
// outside a-z copy through unchanged. Always advances by at least one rune.
func (t *Transliterator) matchAt(runes []rune, cursor int) (int, string) {
	remaining := len(runes) - cursor
	probe := maxProbe
	if remaining < probe {
		probe = remaining
	}
	for ; probe >= minProbe; probe-- {
		key := string(runes[cursor : cursor+probe])
		if value, ok := t.dict.Syllables[key]; ok {
			return probe, value
		}
	}

	r := runes[cursor]
	if value, ok := t.dict.Fallback[r]; ok {
		return 1, value
	}
	return 1, string(r)
}

// normalize trims, lowercases, and folds Latin diacritics so "Surésh" and
// "suresh" hit the same dictionary keys.
func (t *Transliterator) normalize(input string) string {
	return textutil.FoldLatin(strings.ToLower(strings.TrimSpace(input)))
}

// DeriveNames transliterates each field of a name independently. Empty
// fields map to empty fields; no cross-field context is applied.
func (t *Transliterator) DeriveNames(name domain.NameTriple) domain.DevanagariNames {
	return domain.DevanagariNames{
		First:   t.Transliterate(name.First),
		Middle:  t.Transliterate(name.Middle),
		Surname: t.Transliterate(name.Surname),
	}
}
