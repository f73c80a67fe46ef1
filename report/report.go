package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/frizinak/gohsk/match"
	"github.com/frizinak/gohsk/pipeline"
)

// LevelCounts tallies rows per HSK level.
func LevelCounts(rows []pipeline.Enriched) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Level]++
	}
	return counts
}

// POSCounts tallies part-of-speech tokens, split on the 、 delimiter.
func POSCounts(rows []pipeline.Enriched) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		for _, tok := range strings.Split(r.POS, "、") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				counts[tok]++
			}
		}
	}
	return counts
}

// FormatRanges renders ascending indexes compactly: 3-5, 8, 10-12.
func FormatRanges(indexes []int) string {
	if len(indexes) == 0 {
		return ""
	}

	var parts []string
	start, prev := indexes[0], indexes[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
			return
		}
		parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
	}
	for _, i := range indexes[1:] {
		if i == prev+1 {
			prev = i
			continue
		}
		flush()
		start, prev = i, i
	}
	flush()
	return strings.Join(parts, ", ")
}

func levelSortKey(level string) int {
	n := 0
	for _, c := range level {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		return 1 << 30
	}
	return n
}

func table(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
}

func section(b *strings.Builder, title string, headers []string, rows [][]string) {
	b.WriteString("## " + title + "\n")
	table(b, headers, rows)
	b.WriteString("\n")
}

// tierRows selects the rows of one tier, sorted by index, word and
// pronunciation so reports diff cleanly between runs.
func tierRows(rows []pipeline.Enriched, tier match.Tier) []pipeline.Enriched {
	var out []pipeline.Enriched
	for _, r := range rows {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		if out[i].Word != out[j].Word {
			return out[i].Word < out[j].Word
		}
		return out[i].Numbered < out[j].Numbered
	})
	return out
}

// Build renders the run report: level and POS summaries, one section per
// non-exact resolution tier, and the index continuity check.
func Build(rows []pipeline.Enriched, missing []int) string {
	var b strings.Builder
	b.WriteString("# Extraction Report\n\n")

	levels := LevelCounts(rows)
	keys := make([]string, 0, len(levels))
	for k := range levels {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := levelSortKey(keys[i]), levelSortKey(keys[j])
		if ki != kj {
			return ki < kj
		}
		return keys[i] < keys[j]
	})
	levelRows := make([][]string, len(keys))
	for i, k := range keys {
		levelRows[i] = []string{k, strconv.Itoa(levels[k])}
	}
	section(&b, "Words per HSK level", []string{"level", "word_count"}, levelRows)

	pos := POSCounts(rows)
	keys = keys[:0]
	for k := range pos {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if pos[keys[i]] != pos[keys[j]] {
			return pos[keys[i]] > pos[keys[j]]
		}
		return keys[i] < keys[j]
	})
	posRows := make([][]string, len(keys))
	for i, k := range keys {
		posRows[i] = []string{k, strconv.Itoa(pos[k])}
	}
	section(&b, "Part-of-Speech Tokens Present", []string{"part_of_speech", "count"}, posRows)

	var body [][]string
	for _, r := range tierRows(rows, match.TierLooseUnique) {
		body = append(body, []string{strconv.Itoa(r.Index), r.Word, r.Numbered, r.CedictPinyin})
	}
	section(&b, "Tone-insensitive unique matches",
		[]string{"word_index", "word", "source_pinyin_numbered", "selected_cedict_pinyin"}, body)

	body = body[:0]
	for _, r := range tierRows(rows, match.TierDisambiguated) {
		body = append(body, []string{
			strconv.Itoa(r.Index), r.Word, r.Numbered,
			strings.Join(r.Candidates, ", "), r.CedictPinyin,
		})
	}
	section(&b, "Tone-insensitive match with multiple candidates",
		[]string{"word_index", "word", "source_pinyin_numbered", "candidate_cedict_pinyin", "selected_cedict_pinyin"},
		body)

	body = body[:0]
	for _, r := range tierRows(rows, match.TierPatched) {
		body = append(body, []string{strconv.Itoa(r.Index), r.Word, r.Numbered, r.CedictPinyin})
	}
	section(&b, "Patched with CC-CEDICT patch file",
		[]string{"word_index", "word", "source_pinyin_numbered", "selected_cedict_pinyin"}, body)

	body = body[:0]
	for _, r := range tierRows(rows, match.TierUnresolved) {
		body = append(body, []string{strconv.Itoa(r.Index), r.Word, r.Numbered, r.Note})
	}
	section(&b, "No match with CC-CEDICT",
		[]string{"word_index", "word", "source_pinyin_numbered", "notes"}, body)

	b.WriteString("## Missing word indexes\n")
	if len(missing) == 0 {
		b.WriteString("none\n")
	} else {
		b.WriteString(FormatRanges(missing) + "\n")
	}

	return b.String()
}
