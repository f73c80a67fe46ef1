package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/frizinak/gohsk/match"
	"github.com/frizinak/gohsk/pinyin"
	"github.com/frizinak/gohsk/syllabus"
)

// Enriched is one output row: the syllabus row, its numbered
// pronunciation and the dictionary fields the matcher selected. Note
// carries the reason when a lenient run kept an unresolved row.
type Enriched struct {
	syllabus.Row
	Numbered     string
	CedictPinyin string
	Traditional  string
	Definition   string
	Tier         match.Tier
	Candidates   []string
	Note         string
}

// Counters tallies resolutions per tier.
type Counters struct {
	Total         int
	Exact         int
	LooseUnique   int
	Disambiguated int
	Patched       int
	Unresolved    int
}

func (c *Counters) add(t match.Tier) {
	c.Total++
	switch t {
	case match.TierExact:
		c.Exact++
	case match.TierLooseUnique:
		c.LooseUnique++
	case match.TierDisambiguated:
		c.Disambiguated++
	case match.TierPatched:
		c.Patched++
	case match.TierUnresolved:
		c.Unresolved++
	}
}

// RowError is the strict-policy failure: the lowest-input-index row that
// failed, so a parallel run reports exactly what a sequential one would.
type RowError struct {
	Row       syllabus.Row
	Processed int
	Err       error
}

func (e *RowError) Error() string {
	return fmt.Sprintf(
		"row index %d (%s): %v (%d rows processed)",
		e.Row.Index, e.Row.Word, e.Err, e.Processed,
	)
}

func (e *RowError) Unwrap() error { return e.Err }

type Config struct {
	// AllowUnresolved keeps rows without a usable dictionary match,
	// absent and ambiguous alike, instead of failing the run. The note
	// column records what an override would have to settle.
	AllowUnresolved bool
	// Workers bounds the enrichment fan-out. <= 0 means GOMAXPROCS.
	Workers int
	Log     zerolog.Logger
}

// Run enriches rows against immutable tables, in parallel, emitting
// results in input order. Nothing is written anywhere: callers persist
// the returned slice only after a nil error.
func Run(
	ctx context.Context,
	rows []syllabus.Row,
	seg *pinyin.Segmenter,
	m *match.Matcher,
	cfg Config,
) ([]Enriched, Counters, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Enriched, len(rows))
	errs := make([]error, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			out[i], errs[i] = enrich(rows[i], seg, m, cfg)
			return nil
		})
	}
	g.Wait()

	var counters Counters
	for i := range rows {
		if errs[i] != nil {
			// only rows a sequential run would have finished first
			processed := 0
			for j := 0; j < i; j++ {
				if errs[j] == nil {
					processed++
				}
			}
			cfg.Log.Error().
				Int("index", rows[i].Index).
				Str("word", rows[i].Word).
				Err(errs[i]).
				Msg("enrichment failed")
			return nil, Counters{}, &RowError{Row: rows[i], Processed: processed, Err: errs[i]}
		}
		counters.add(out[i].Tier)
	}

	return out, counters, nil
}

func enrich(row syllabus.Row, seg *pinyin.Segmenter, m *match.Matcher, cfg Config) (Enriched, error) {
	e := Enriched{Row: row, Tier: match.TierUnresolved}

	numbered, err := seg.Number(row.Word, row.Pinyin)
	if err != nil {
		return e, err
	}
	e.Numbered = numbered.String()

	res, err := m.Resolve(row.Word, e.Numbered)
	if err != nil {
		if cfg.AllowUnresolved &&
			(errors.Is(err, match.ErrUnresolvedMatch) || errors.Is(err, match.ErrAmbiguousMatch)) {
			e.Note = err.Error()
			cfg.Log.Warn().
				Int("index", row.Index).
				Str("word", row.Word).
				Str("pinyin", e.Numbered).
				Msg("no usable dictionary match, keeping empty enrichment")
			return e, nil
		}
		return e, err
	}

	e.Tier = res.Tier
	e.CedictPinyin = res.Candidate.PinyinNumbered()
	e.Traditional = res.Candidate.TraditionalJoined()
	e.Definition = res.Candidate.Definition
	if res.Tier == match.TierDisambiguated {
		e.Candidates = make([]string, len(res.Candidates))
		for i, c := range res.Candidates {
			e.Candidates[i] = c.PinyinNumbered()
		}
	}
	return e, nil
}

// MissingIndexes lists the integer word indexes absent from the observed
// index range, ascending.
func MissingIndexes(rows []Enriched) []int {
	if len(rows) == 0 {
		return nil
	}

	observed := make(map[int]bool, len(rows))
	min, max := rows[0].Index, rows[0].Index
	for _, r := range rows {
		observed[r.Index] = true
		if r.Index < min {
			min = r.Index
		}
		if r.Index > max {
			max = r.Index
		}
	}

	var missing []int
	for i := min; i <= max; i++ {
		if !observed[i] {
			missing = append(missing, i)
		}
	}
	sort.Ints(missing)
	return missing
}
