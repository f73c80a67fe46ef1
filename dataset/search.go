package dataset

import (
	"sort"
	"strings"

	"github.com/frizinak/gohsk/pinyin"
	"github.com/frizinak/gohsk/pipeline"
)

const (
	inverseScore   = 1<<31 - 1
	levenshteinMax = 500
)

type result struct {
	row   pipeline.Enriched
	score int
}

type results []result

func (r results) Len() int { return len(r) }
func (r results) Less(i, j int) bool {
	if r[i].score == r[j].score {
		if r[i].row.Index == r[j].row.Index {
			return r[i].row.Word < r[j].row.Word
		}
		return r[i].row.Index < r[j].row.Index
	}
	return r[i].score > r[j].score
}
func (r results) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

func toRows(r results, max int) []pipeline.Enriched {
	if max <= 0 {
		max = 1000
	}
	if max > len(r) {
		max = len(r)
	}
	rows := make([]pipeline.Enriched, max)
	for i := range rows {
		rows[i] = r[i].row
	}
	return rows
}

// Search dispatches on script: mostly-Hanzi queries search headwords,
// anything else searches pinyin and glosses. The returned bool reports
// which path ran.
func (d *Dataset) Search(qry string, max int) ([]pipeline.Enriched, bool) {
	qry = strings.TrimSpace(qry)
	hanzi := len(pinyin.HanziRunes(qry))
	if hanzi > 0 && hanzi*2 >= len([]rune(qry)) {
		return d.SearchHanzi(qry, max), true
	}
	return d.SearchLatin(qry, max), false
}

// SearchHanzi matches rows whose word contains the query, closest
// headwords first.
func (d *Dataset) SearchHanzi(qry string, max int) []pipeline.Enriched {
	res := make(results, 0)
	q := []rune(qry)
	for _, r := range d.rows {
		if strings.Contains(r.Word, qry) {
			res = append(res, result{
				row:   r,
				score: inverseScore - Levenshtein([]rune(r.Word), q),
			})
		}
	}

	sort.Sort(res)
	return toRows(res, max)
}

// SearchLatin matches numbered pinyin, with or without tone digits and
// spaces, and falls through to gloss substring matches.
func (d *Dataset) SearchLatin(qry string, max int) []pipeline.Enriched {
	q := strings.ToLower(qry)
	qc := strings.ReplaceAll(q, " ", "")
	res := make(results, 0)

	for _, r := range d.rows {
		if s, ok := latinScore(r, q, qc); ok {
			res = append(res, result{row: r, score: s})
		}
	}

	sort.Sort(res)
	return toRows(res, max)
}

func latinScore(r pipeline.Enriched, q, qc string) (int, bool) {
	for _, variant := range pinyin.ParseNumbered(r.Numbered).Variants {
		numbered := strings.Join(variant, "")
		toneless := strings.Join(pinyin.Bases(variant), "")
		if strings.Contains(numbered, qc) || strings.Contains(toneless, qc) {
			return inverseScore - Levenshtein([]rune(toneless), []rune(qc)), true
		}
	}

	if q != "" {
		if ix := strings.Index(strings.ToLower(r.Definition), q); ix >= 0 {
			return inverseScore/2 - ix, true
		}
	}
	return 0, false
}

// SearchGlossFuzzy is the fallback for misspelled gloss queries: n-gram
// overlap prefilter, then edit distance on the surviving definitions.
func (d *Dataset) SearchGlossFuzzy(qry string, max int) []pipeline.Enriched {
	d.initGlossFuzz()
	if len(qry) > 1<<8-1 {
		qry = qry[:1<<8-1]
	}
	threshold := uint8(len(qry) / 3)
	if threshold == 0 {
		threshold = 1
	}

	tmp := make(results, 0, levenshteinMax)
	d.gfuzz.index.Search(strings.ToLower(qry), func(i int, score, low, high uint8) {
		if score >= threshold {
			tmp = append(tmp, result{row: d.rows[d.gfuzz.rows[i]], score: int(score)})
		}
	})

	if len(tmp) > levenshteinMax {
		sort.Sort(tmp)
		tmp = tmp[:levenshteinMax]
	}

	q := []rune(strings.ToLower(qry))
	res := make(results, 0, len(tmp))
	for _, t := range tmp {
		t.score = inverseScore - Levenshtein([]rune(strings.ToLower(t.row.Definition)), q)
		res = append(res, t)
	}

	sort.Sort(res)
	return toRows(res, max)
}
