// Package hyphen defines the hyphenation dictionary interface the line
// builder consumes (spec.md §6 "Consumed hyphenation interface") and a
// default implementation. No hyphenation library appears anywhere in the
// retrieved example pack (neither the teacher nor other_examples/), so
// PatternDictionary is a small hand-written heuristic rather than an
// adaptation of a found library — see SPEC_FULL.md "DOMAIN STACK" and
// DESIGN.md's note on spec.md §9 open question (c), which calls out the
// hardcoded-dictionary behavior as something implementations should
// expose as configuration. Hyphenator is that configuration surface.
package hyphen

import "unicode"

// Hyphenator returns candidate discretionary-hyphen break offsets (byte
// indices into word) for a single word.
type Hyphenator interface {
	Hyphenate(word string) []int
}

// PatternDictionary is a minimal vowel/consonant-boundary heuristic: it
// offers a break after any vowel that is followed by at least one
// consonant and at least two more letters, mirroring (without claiming to
// replicate) the syllable-boundary shape of the English patterns used by
// the original Rust implementation's embedded hyphenation dictionary.
// It never breaks inside the first two or last two runes of a word, and
// never returns adjacent byte offsets.
type PatternDictionary struct {
	// MinStem is the minimum number of runes required on each side of a
	// break. The original dictionary effectively enforces a similar floor
	// to avoid single-letter dangling hyphens.
	MinStem int
}

// NewPatternDictionary returns the default dictionary (MinStem 2).
func NewPatternDictionary() *PatternDictionary {
	return &PatternDictionary{MinStem: 2}
}

// Hyphenate implements Hyphenator.
func (d *PatternDictionary) Hyphenate(word string) []int {
	runes := []rune(word)
	if len(runes) < 2*d.MinStem+1 {
		return nil
	}

	byteOffsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteOffsets[i] = off
		off += len(string(r))
	}
	byteOffsets[len(runes)] = off

	var breaks []int
	for i := d.MinStem; i <= len(runes)-d.MinStem-1; i++ {
		if isVowel(runes[i]) && !isVowel(runes[i+1]) {
			breaks = append(breaks, byteOffsets[i+1])
		}
	}
	return breaks
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	default:
		return false
	}
}
