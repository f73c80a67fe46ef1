package pinyin

import (
	"errors"
	"strings"
)

var (
	ErrUnknownSyllable       = errors.New("unknown syllable")
	ErrAmbiguousSegmentation = errors.New("ambiguous segmentation")
	ErrRoundTripMismatch     = errors.New("round-trip mismatch")
)

// Numbered is a validated pronunciation: one or more alternate readings,
// each an ordered sequence of digit-toned syllables such as "dian3".
type Numbered struct {
	Variants [][]string
}

func (n Numbered) Empty() bool { return len(n.Variants) == 0 }

// Primary returns the first alternate reading.
func (n Numbered) Primary() []string {
	if len(n.Variants) == 0 {
		return nil
	}
	return n.Variants[0]
}

func (n Numbered) String() string {
	v := make([]string, len(n.Variants))
	for i := range n.Variants {
		v[i] = strings.Join(n.Variants[i], " ")
	}
	return strings.Join(v, "/")
}

// Bases strips the trailing tone digit from every syllable of a reading.
func Bases(syllables []string) []string {
	r := make([]string, len(syllables))
	for i, s := range syllables {
		r[i] = Base(s)
	}
	return r
}

func Base(syllable string) string {
	if len(syllable) > 0 && syllable[len(syllable)-1] >= '1' && syllable[len(syllable)-1] <= '5' {
		return syllable[:len(syllable)-1]
	}
	return syllable
}

// ParseNumbered splits an already-numbered pronunciation string
// ("e4 xin1/e3 xin1") back into its variants. Empty segments are dropped.
func ParseNumbered(s string) Numbered {
	var n Numbered
	for _, part := range strings.Split(s, "/") {
		var v []string
		for _, tok := range strings.Fields(strings.TrimSpace(part)) {
			v = append(v, tok)
		}
		if len(v) != 0 {
			n.Variants = append(n.Variants, v)
		}
	}
	return n
}

// HanziRunes extracts the CJK characters of a word, dropping sense
// suffixes and any other non-Hanzi marker.
func HanziRunes(word string) []rune {
	var r []rune
	for _, c := range word {
		if c >= 0x4e00 && c <= 0x9fff {
			r = append(r, c)
		}
	}
	return r
}

// Hints carries the per-character and per-word pronunciation knowledge a
// dictionary can lend the segmenter. Both maps hold digit-toned syllables.
// A zero Hints disables dictionary-assisted disambiguation.
type Hints struct {
	Hanzi map[rune][]string
	Words map[string][][]string
}

func (h Hints) hanziBases(c rune) map[string]bool {
	m := make(map[string]bool, len(h.Hanzi[c]))
	for _, s := range h.Hanzi[c] {
		m[Base(s)] = true
	}
	return m
}

func (h Hints) hanziHas(c rune, numbered string) bool {
	for _, s := range h.Hanzi[c] {
		if s == numbered {
			return true
		}
	}
	return false
}
