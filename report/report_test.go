package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frizinak/gohsk/match"
	"github.com/frizinak/gohsk/pipeline"
	"github.com/frizinak/gohsk/syllabus"
)

func testRows() []pipeline.Enriched {
	return []pipeline.Enriched{
		{
			Row:          syllabus.Row{Index: 1, Level: "1", Word: "爱", Pinyin: "ài", POS: "动"},
			Numbered:     "ai4",
			CedictPinyin: "ai4",
			Traditional:  "愛",
			Definition:   "to love",
			Tier:         match.TierExact,
		},
		{
			Row:          syllabus.Row{Index: 2, Level: "1", Word: "你好", Pinyin: "nǐhǎo", POS: "代、动"},
			Numbered:     "ni2 hao3",
			CedictPinyin: "ni3 hao3",
			Traditional:  "你好",
			Definition:   "hello",
			Tier:         match.TierLooseUnique,
		},
		{
			Row:      syllabus.Row{Index: 5, Level: "7-9", Word: "巭", Pinyin: "bu", POS: "动"},
			Numbered: "bu5",
			Tier:     match.TierUnresolved,
			Note:     "unresolved match: 巭: no dictionary entry",
		},
	}
}

func TestTSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTSV(&buf, testRows(), true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(tsvHeader, "\t"), lines[0])
	assert.Equal(t, "1\t1\t爱\tài\t动\tai4\tai4\t愛\tto love", lines[1])

	rows, err := DecodeTSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "你好", rows[1].Word)
	assert.Equal(t, "ni3 hao3", rows[1].CedictPinyin)
	assert.Equal(t, 5, rows[2].Index)
}

func TestDecodeTSVErrors(t *testing.T) {
	_, err := DecodeTSV(strings.NewReader("1\t1\t爱\n"))
	require.Error(t, err)

	_, err = DecodeTSV(strings.NewReader("x\t1\t爱\tài\t动\tai4\tai4\t愛\tto love\n"))
	require.Error(t, err)
}

func TestFormatRanges(t *testing.T) {
	for _, tc := range []struct {
		in   []int
		want string
	}{
		{nil, ""},
		{[]int{7}, "7"},
		{[]int{3, 4, 5, 8, 10, 11, 12}, "3-5, 8, 10-12"},
		{[]int{1, 3}, "1, 3"},
	} {
		assert.Equal(t, tc.want, FormatRanges(tc.in))
	}
}

func TestBuild(t *testing.T) {
	out := Build(testRows(), []int{3, 4})

	assert.Contains(t, out, "# Extraction Report")
	assert.Contains(t, out, "| 1 | 2 |")
	assert.Contains(t, out, "| 7-9 | 1 |")
	assert.Contains(t, out, "| 动 | 3 |")
	assert.Contains(t, out, "| 2 | 你好 | ni2 hao3 | ni3 hao3 |")
	assert.Contains(t, out, "| 5 | 巭 | bu5 | unresolved match: 巭: no dictionary entry |")
	assert.Contains(t, out, "## Missing word indexes\n3-4\n")
}

func TestPOSCounts(t *testing.T) {
	counts := POSCounts(testRows())
	assert.Equal(t, map[string]int{"动": 3, "代": 1}, counts)
}
