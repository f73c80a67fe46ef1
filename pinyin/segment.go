package pinyin

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Segmenter converts raw tone-marked pronunciations into Numbered
// readings, one syllable per Hanzi of the associated word. The hints
// table is the only dictionary knowledge it consumes.
type Segmenter struct {
	hints Hints
}

func NewSegmenter(hints Hints) *Segmenter { return &Segmenter{hints: hints} }

// Number segments and numbers raw for word. Alternate readings separated
// by '/' are processed independently and preserved in order. A word
// without Hanzi (or an empty word) is segmented without alignment
// constraints.
func (s *Segmenter) Number(word, raw string) (Numbered, error) {
	raw = strings.ToLower(norm.NFC.String(raw))
	hanzi := HanziRunes(word)

	var out Numbered
	for _, variant := range strings.Split(raw, "/") {
		variant = strings.TrimSpace(variant)
		if variant == "" {
			continue
		}

		var (
			syllables []string
			err       error
		)
		if len(hanzi) == 0 {
			syllables, err = s.segmentFree(variant)
		} else {
			syllables, err = s.segmentAligned(variant, hanzi)
		}
		if err != nil {
			return Numbered{}, err
		}
		out.Variants = append(out.Variants, syllables)
	}

	if out.Empty() {
		return Numbered{}, fmt.Errorf("%w: empty pronunciation %q", ErrUnknownSyllable, raw)
	}
	return out, nil
}

// tokenize splits a single variant into chunks, dropping hyphens,
// apostrophes and whitespace. Chunk boundaries survive as segmentation
// hints: a syllable never spans two chunks.
func tokenize(variant string) []string {
	var tokens []string
	var buf []rune
	flush := func() {
		if len(buf) != 0 {
			tokens = append(tokens, string(buf))
			buf = buf[:0]
		}
	}
	for _, c := range variant {
		if c == ' ' || c == '\t' || separators[c] {
			flush()
			continue
		}
		buf = append(buf, c)
	}
	flush()
	return tokens
}

// segmentFree numbers a variant without Hanzi alignment: each chunk is
// greedily split into valid syllables, longest first.
func (s *Segmenter) segmentFree(variant string) ([]string, error) {
	tokens := tokenize(variant)
	var syllables []string
	var stripped, rebuilt strings.Builder

	for _, token := range tokens {
		base, tones := parseToken(token)
		stripped.WriteString(base)

		spans, ok := splitFree(base, make(map[int][][2]int))
		if !ok {
			return nil, fmt.Errorf("%w: cannot segment %q", ErrUnknownSyllable, base)
		}
		for _, sp := range spans {
			tone, ok := spanTone(tones, sp[0], sp[1])
			if !ok {
				return nil, fmt.Errorf(
					"%w: multiple tone marks in %q", ErrUnknownSyllable, base[sp[0]:sp[1]],
				)
			}
			syl := base[sp[0]:sp[1]]
			rebuilt.WriteString(syl)
			syllables = append(syllables, fmt.Sprintf("%s%d", syl, tone))
		}
	}

	if stripped.String() != rebuilt.String() {
		return nil, fmt.Errorf(
			"%w: %q != %q", ErrRoundTripMismatch, stripped.String(), rebuilt.String(),
		)
	}
	return syllables, nil
}

// splitFree finds one complete split of base into valid syllables,
// preferring the longest syllable at every position.
func splitFree(base string, memo map[int][][2]int) ([][2]int, bool) {
	if base == "" {
		return nil, true
	}
	var rec func(i int) ([][2]int, bool)
	rec = func(i int) ([][2]int, bool) {
		if i == len(base) {
			return [][2]int{}, true
		}
		if m, ok := memo[i]; ok {
			return m, m != nil
		}
		for _, syl := range ordered {
			if !strings.HasPrefix(base[i:], syl) {
				continue
			}
			if rest, ok := rec(i + len(syl)); ok {
				r := append([][2]int{{i, i + len(syl)}}, rest...)
				memo[i] = r
				return r, true
			}
		}
		memo[i] = nil
		return nil, false
	}
	return rec(0)
}

type alignKey struct{ token, char int }

type tokenSol struct {
	syllables []string
	next      int
}

// segmentAligned numbers a variant so that its syllable count equals the
// Hanzi count, using dictionary hints to discard readings the word cannot
// have. More than one surviving segmentation is an error, never a guess.
func (s *Segmenter) segmentAligned(variant string, hanzi []rune) ([]string, error) {
	tokens := tokenize(variant)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty pronunciation", ErrUnknownSyllable)
	}

	constrained := s.hints.Hanzi != nil
	allowed := make(map[rune]map[string]bool, len(hanzi))
	if constrained {
		for _, c := range hanzi {
			if _, ok := allowed[c]; ok {
				continue
			}
			if len(s.hints.Hanzi[c]) == 0 {
				return nil, fmt.Errorf(
					"%w: no dictionary reading for %q", ErrUnknownSyllable, string(c),
				)
			}
			allowed[c] = s.hints.hanziBases(c)
		}
	}

	bases := make([]string, len(tokens))
	tones := make([][]int, len(tokens))
	var stripped strings.Builder
	for i, token := range tokens {
		bases[i], tones[i] = parseToken(token)
		stripped.WriteString(bases[i])
	}

	charOK := func(c rune, base string) bool {
		if !constrained {
			return Valid(base)
		}
		return allowed[c][base]
	}
	erhuaOK := func(base string) bool {
		if base == "" {
			return false
		}
		if !constrained {
			return Valid(base)
		}
		return s.hints.hanziHas('儿', "r5")
	}

	// segmentToken enumerates at most two ways to split one chunk into
	// syllables starting at charIdx, so ambiguity is detectable without
	// exhausting the search space.
	segmentToken := func(base string, tone []int, startChar int) []tokenSol {
		memo := make(map[alignKey][]tokenSol)
		var rec func(i, charIdx int) []tokenSol
		rec = func(i, charIdx int) []tokenSol {
			key := alignKey{i, charIdx}
			if m, ok := memo[key]; ok {
				return m
			}
			if i == len(base) {
				return []tokenSol{{nil, charIdx}}
			}
			if charIdx >= len(hanzi) {
				return nil
			}

			c := hanzi[charIdx]
			var sols []tokenSol
			add := func(syl []string, next int) bool {
				sols = append(sols, tokenSol{syl, next})
				return len(sols) > 1
			}

			for _, syl := range ordered {
				if !strings.HasPrefix(base[i:], syl) {
					continue
				}
				end := i + len(syl)
				tn, ok := spanTone(tone, i, end)
				if !ok {
					continue
				}
				numbered := fmt.Sprintf("%s%d", syl, tn)

				if len(syl) > 1 && syl[len(syl)-1] == 'r' &&
					charIdx+1 < len(hanzi) && hanzi[charIdx+1] == '儿' {
					noR := syl[:len(syl)-1]
					if charOK(c, noR) && erhuaOK(noR) {
						split := false
						for _, rest := range rec(end, charIdx+2) {
							split = true
							if add(append([]string{fmt.Sprintf("%s%d", noR, tn), "r5"}, rest.syllables...), rest.next) {
								memo[key] = sols
								return sols
							}
						}
						if split {
							memo[key] = sols
							return sols
						}
						for _, rest := range rec(end, charIdx+2) {
							if add(append([]string{numbered}, rest.syllables...), rest.next) {
								memo[key] = sols
								return sols
							}
						}
						if len(sols) != 0 {
							memo[key] = sols
							return sols
						}
					}
				}

				if interjections[syl] {
					for _, rest := range rec(end, charIdx+1) {
						if add(append([]string{numbered}, rest.syllables...), rest.next) {
							memo[key] = sols
							return sols
						}
					}
					continue
				}

				if len(hanzi) == 1 && constrained && !allowed[c][syl] {
					// single characters the dictionary reads differently
					// still segment; resolution decides what to make of it
					for _, rest := range rec(end, charIdx+1) {
						if add(append([]string{numbered}, rest.syllables...), rest.next) {
							memo[key] = sols
							return sols
						}
					}
					continue
				}

				if charOK(c, syl) {
					for _, rest := range rec(end, charIdx+1) {
						if add(append([]string{numbered}, rest.syllables...), rest.next) {
							memo[key] = sols
							return sols
						}
					}
				}
			}

			memo[key] = sols
			return sols
		}
		return rec(0, startChar)
	}

	memo := make(map[alignKey][][]string)
	var rec func(tokenIdx, charIdx int) [][]string
	rec = func(tokenIdx, charIdx int) [][]string {
		key := alignKey{tokenIdx, charIdx}
		if m, ok := memo[key]; ok {
			return m
		}
		if tokenIdx == len(tokens) {
			if charIdx == len(hanzi) {
				return [][]string{{}}
			}
			return nil
		}
		if bases[tokenIdx] == "" {
			return nil
		}

		var sols [][]string
		for _, ts := range segmentToken(bases[tokenIdx], tones[tokenIdx], charIdx) {
			for _, rest := range rec(tokenIdx+1, ts.next) {
				sols = append(sols, append(append([]string{}, ts.syllables...), rest...))
				if len(sols) > 1 {
					memo[key] = sols
					return sols
				}
			}
		}
		memo[key] = sols
		return sols
	}

	sols := rec(0, 0)
	if len(sols) == 0 {
		return nil, fmt.Errorf(
			"%w: cannot align %q to %q", ErrUnknownSyllable, variant, string(hanzi),
		)
	}
	if len(sols) > 1 {
		sols = s.filterByWord(string(hanzi), sols)
	}
	if len(sols) > 1 {
		list := make([]string, len(sols))
		for i := range sols {
			list[i] = strings.Join(sols[i], " ")
		}
		return nil, fmt.Errorf(
			"%w: %q admits %s", ErrAmbiguousSegmentation, variant, strings.Join(list, "; "),
		)
	}

	rebuilt := strings.Join(Bases(sols[0]), "")
	if rebuilt != stripped.String() {
		return nil, fmt.Errorf(
			"%w: %q != %q", ErrRoundTripMismatch, stripped.String(), rebuilt,
		)
	}
	return sols[0], nil
}

// filterByWord keeps segmentations whose toneless reading matches a known
// dictionary reading of word. When exactly one survives, the ambiguity is
// considered resolved.
func (s *Segmenter) filterByWord(word string, sols [][]string) [][]string {
	readings := s.hints.Words[word]
	if len(readings) == 0 {
		return sols
	}

	known := make(map[string]bool, len(readings))
	for _, r := range readings {
		known[strings.Join(Bases(r), " ")] = true
	}

	var kept [][]string
	for _, sol := range sols {
		if known[strings.Join(Bases(sol), " ")] {
			kept = append(kept, sol)
		}
	}
	if len(kept) == 0 {
		return sols
	}
	return kept
}
