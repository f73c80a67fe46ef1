package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frizinak/gohsk/cedict"
	"github.com/frizinak/gohsk/pinyin"
)

var (
	// ErrUnresolvedMatch means no candidate fit: the word is absent from
	// both dictionaries or no reading comes close. Lenient runs keep the
	// row with empty enrichment.
	ErrUnresolvedMatch = errors.New("unresolved match")
	// ErrAmbiguousMatch means several readings fit tone-insensitively and
	// no override picks one (or the override picks a reading that is not
	// a candidate). Fatal under the strict policy; lenient runs keep the
	// row unenriched and report it.
	ErrAmbiguousMatch = errors.New("ambiguous match")
)

// Tier records which rule produced a resolution.
type Tier int

const (
	TierExact Tier = iota
	TierLooseUnique
	TierDisambiguated
	TierPatched
	TierUnresolved
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierLooseUnique:
		return "loose-unique"
	case TierDisambiguated:
		return "disambiguated"
	case TierPatched:
		return "patched"
	}
	return "unresolved"
}

// Result is a selected dictionary reading plus provenance. Candidates
// holds the full tone-insensitive candidate list when an override had to
// choose between them.
type Result struct {
	Candidate  cedict.Candidate
	Tier       Tier
	Candidates []cedict.Candidate
}

// Matcher resolves (word, numbered pronunciation) pairs against an
// immutable pair of dictionaries and an override table. Safe for
// concurrent use.
type Matcher struct {
	main  *cedict.Repository
	patch *cedict.Repository
	rules cedict.Rules
}

func NewMatcher(main, patch *cedict.Repository, rules cedict.Rules) *Matcher {
	return &Matcher{main: main, patch: patch, rules: rules}
}

// Resolve walks the tiers in order: exact reading match (source variant
// order decides between several), unique tone-insensitive match,
// override-disambiguated multi match, then the same ladder against the
// patch dictionary. The patch is consulted only when the main dictionary
// offered nothing at all; an ambiguity or a broken override is final.
func (m *Matcher) Resolve(word, numbered string) (Result, error) {
	variants := pinyin.ParseNumbered(numbered).Variants
	if len(variants) == 0 {
		return Result{Tier: TierUnresolved}, fmt.Errorf(
			"%w: %s: empty pronunciation", ErrUnresolvedMatch, word,
		)
	}

	lookup := string(pinyin.HanziRunes(word))
	if lookup == "" {
		lookup = word
	}

	res, err := m.resolve(m.main.Candidates(lookup), word, numbered, variants)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrUnresolvedMatch) {
		return res, err
	}

	res, perr := m.resolve(m.patch.Candidates(lookup), word, numbered, variants)
	if perr == nil {
		res.Tier = TierPatched
		return res, nil
	}
	if !errors.Is(perr, ErrUnresolvedMatch) {
		return res, perr
	}
	return Result{Tier: TierUnresolved}, err
}

func (m *Matcher) resolve(
	groups []cedict.Candidate,
	word, numbered string,
	variants [][]string,
) (Result, error) {
	if len(groups) == 0 {
		return Result{Tier: TierUnresolved}, fmt.Errorf(
			"%w: %s: no dictionary entry", ErrUnresolvedMatch, word,
		)
	}

	exact := make(map[string]int, len(groups))
	for i, g := range groups {
		if _, ok := exact[g.PinyinNumbered()]; !ok {
			exact[g.PinyinNumbered()] = i
		}
	}
	for _, v := range variants {
		if i, ok := exact[strings.Join(v, " ")]; ok {
			return Result{Candidate: groups[i], Tier: TierExact}, nil
		}
	}

	bases := make(map[string]bool, len(variants))
	for _, v := range variants {
		bases[strings.Join(pinyin.Bases(v), " ")] = true
	}
	var loose []cedict.Candidate
	for _, g := range groups {
		if bases[strings.Join(pinyin.Bases(g.Pinyin), " ")] {
			loose = append(loose, g)
		}
	}

	switch len(loose) {
	case 0:
		return Result{Tier: TierUnresolved}, fmt.Errorf(
			"%w: %s: no reading close to %q", ErrUnresolvedMatch, word, numbered,
		)
	case 1:
		return Result{Candidate: loose[0], Tier: TierLooseUnique, Candidates: loose}, nil
	}

	selected, ok := m.rules[cedict.RuleKey{Word: word, Source: numbered}]
	if !ok {
		list := make([]string, len(loose))
		for i, g := range loose {
			list[i] = g.PinyinNumbered()
		}
		return Result{Tier: TierUnresolved, Candidates: loose}, fmt.Errorf(
			"%w: %s %q: candidates %s", ErrAmbiguousMatch, word, numbered, strings.Join(list, ", "),
		)
	}

	for _, g := range loose {
		if g.PinyinNumbered() == selected {
			return Result{Candidate: g, Tier: TierDisambiguated, Candidates: loose}, nil
		}
	}
	return Result{Tier: TierUnresolved, Candidates: loose}, fmt.Errorf(
		"%w: %s %q: selected reading %q not among candidates",
		ErrAmbiguousMatch, word, numbered, selected,
	)
}
