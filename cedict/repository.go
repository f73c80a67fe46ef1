package cedict

import (
	"strings"

	"github.com/frizinak/gohsk/pinyin"
)

// Repository is an indexed, read-only view over parsed entries.
type Repository struct {
	entries []Entry
	byWord  map[string][]int
}

// New deduplicates entries on (word, reading, definition), keeping first
// occurrences in file order, and indexes them by word form.
func New(entries []Entry) *Repository {
	r := &Repository{
		entries: make([]Entry, 0, len(entries)),
		byWord:  make(map[string][]int, len(entries)),
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := e.Word + "\x00" + e.PinyinNumbered() + "\x00" + e.Definition
		if seen[key] {
			continue
		}
		seen[key] = true
		r.byWord[e.Word] = append(r.byWord[e.Word], len(r.entries))
		r.entries = append(r.entries, e)
	}
	return r
}

func (r *Repository) Len() int         { return len(r.entries) }
func (r *Repository) Entries() []Entry { return r.entries }

// ForWord returns the entries for an exact word form, in file order.
func (r *Repository) ForWord(word string) []Entry {
	idx := r.byWord[word]
	entries := make([]Entry, len(idx))
	for i, n := range idx {
		entries[i] = r.entries[n]
	}
	return entries
}

// Candidate is one distinct reading of a word: all entries sharing the
// reading collapsed into a single gloss and traditional-form view.
type Candidate struct {
	Pinyin      []string
	Traditional []string
	Definition  string
}

func (c Candidate) PinyinNumbered() string    { return strings.Join(c.Pinyin, " ") }
func (c Candidate) TraditionalJoined() string { return strings.Join(c.Traditional, "/") }

// Candidates groups a word's entries by reading, in file order. Glosses of
// a group are joined with " | " and deduplicated on the exact string only;
// traditional forms likewise.
func (r *Repository) Candidates(word string) []Candidate {
	entries := r.ForWord(word)
	if len(entries) == 0 {
		return nil
	}

	var out []Candidate
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		key := e.PinyinNumbered()
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, Candidate{
				Pinyin:      e.Pinyin,
				Traditional: []string{e.Traditional},
				Definition:  e.Definition,
			})
			continue
		}

		c := out[i]
		if e.Definition != "" && !containsPart(c.Definition, e.Definition) {
			if c.Definition == "" {
				c.Definition = e.Definition
			} else {
				c.Definition += " | " + e.Definition
			}
		}
		if !contains(c.Traditional, e.Traditional) {
			c.Traditional = append(c.Traditional, e.Traditional)
		}
		out[i] = c
	}
	return out
}

func contains(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

func containsPart(joined, s string) bool {
	for _, v := range strings.Split(joined, " | ") {
		if v == s {
			return true
		}
	}
	return false
}

// Hints derives the per-character and per-word pronunciation tables the
// segmenter consumes. Single-character entries contribute all their
// readings; multi-character entries only lend a character a syllable whose
// toneless base the character does not already have, which keeps common
// tone-sandhi spellings from exploding the search space. 一 and 不 change
// tone by context and get every tone regardless.
func (r *Repository) Hints() pinyin.Hints {
	h := pinyin.Hints{
		Hanzi: make(map[rune][]string),
		Words: make(map[string][][]string, len(r.byWord)),
	}

	type pending struct {
		word   []rune
		tokens []string
	}
	var multi []pending

	for _, e := range r.entries {
		runes := []rune(e.Word)
		if len(runes) == 1 && len(e.Pinyin) == 1 {
			c := runes[0]
			if !contains(h.Hanzi[c], e.Pinyin[0]) {
				h.Hanzi[c] = append(h.Hanzi[c], e.Pinyin[0])
			}
		} else if len(runes) == len(e.Pinyin) {
			multi = append(multi, pending{runes, e.Pinyin})
		}
	}

	for _, p := range multi {
		for i, c := range p.word {
			syl := p.tokens[i]
			existing := h.Hanzi[c]
			if len(existing) == 0 {
				h.Hanzi[c] = append(existing, syl)
				continue
			}
			base := pinyin.Base(syl)
			known := false
			for _, s := range existing {
				if pinyin.Base(s) == base {
					known = true
					break
				}
			}
			if !known {
				h.Hanzi[c] = append(existing, syl)
			}
		}
	}

	for c, base := range map[rune]string{'一': "yi", '不': "bu"} {
		for tone := '1'; tone <= '5'; tone++ {
			syl := base + string(tone)
			if !contains(h.Hanzi[c], syl) {
				h.Hanzi[c] = append(h.Hanzi[c], syl)
			}
		}
	}

	for word, idx := range r.byWord {
		seen := make(map[string]bool, len(idx))
		for _, n := range idx {
			e := r.entries[n]
			key := e.PinyinNumbered()
			if seen[key] {
				continue
			}
			seen[key] = true
			h.Words[word] = append(h.Words[word], e.Pinyin)
		}
	}

	return h
}
