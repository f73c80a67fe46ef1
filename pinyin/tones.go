package pinyin

import (
	"strings"
	"unicode/utf8"
)

// toneMarks maps a tone-marked vowel (or syllabic nasal) to its bare
// letter and tone digit. Tone 5 marks the rare ê, which carries no
// contour of its own.
var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
	'ń': {'n', 2}, 'ň': {'n', 3}, 'ǹ': {'n', 4},
	'ḿ': {'m', 2},
	'ê': {'e', 5}, 'Ê': {'e', 5},
}

// separators are stripped from pronunciations before segmentation; the
// variant separator '/' is handled before tokenization and never reaches
// this set.
var separators = map[rune]bool{
	'-': true, '\'': true, '’': true, '·': true, '•': true,
}

// parseToken lowercases one chunk and resolves tone-marked letters,
// returning the bare letters and a per-byte tone slice (0 when unmarked)
// so tone lookups line up with byte offsets into the returned string.
// v is normalized to ü as in dictionary sources.
func parseToken(token string) (string, []int) {
	var base strings.Builder
	tones := make([]int, 0, len(token))
	for _, c := range token {
		tone := 0
		if m, ok := toneMarks[c]; ok {
			c, tone = m.base, m.tone
		}
		if c == 'v' || c == 'V' {
			c = 'ü'
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		base.WriteRune(c)
		tones = append(tones, tone)
		for i := 1; i < utf8.RuneLen(c); i++ {
			tones = append(tones, 0)
		}
	}
	return base.String(), tones
}

// spanTone derives the tone digit of a syllable spanning base[start:end]:
// exactly one marked tone, or 5 when none. ok is false when two different
// marks collide inside the span.
func spanTone(tones []int, start, end int) (int, bool) {
	tone := 0
	for _, t := range tones[start:end] {
		if t == 0 {
			continue
		}
		if tone != 0 && tone != t {
			return 0, false
		}
		tone = t
	}
	if tone == 0 {
		tone = 5
	}
	return tone, true
}
