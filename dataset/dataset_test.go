package dataset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frizinak/gohsk/pipeline"
	"github.com/frizinak/gohsk/syllabus"
)

func testSet() *Dataset {
	return New([]pipeline.Enriched{
		{
			Row:          syllabus.Row{Index: 1, Level: "1", Word: "爱", Pinyin: "ài"},
			Numbered:     "ai4",
			CedictPinyin: "ai4",
			Definition:   "to love; affection",
		},
		{
			Row:          syllabus.Row{Index: 2, Level: "1", Word: "爱好", Pinyin: "àihào"},
			Numbered:     "ai4 hao4",
			CedictPinyin: "ai4 hao4",
			Definition:   "hobby; interest",
		},
		{
			Row:          syllabus.Row{Index: 2, Level: "2", Word: "爱好", Pinyin: "àihào"},
			Numbered:     "ai4 hao4",
			CedictPinyin: "ai4 hao4",
			Definition:   "hobby; interest",
		},
		{
			Row:          syllabus.Row{Index: 3, Level: "1", Word: "电话", Pinyin: "diànhuà"},
			Numbered:     "dian4 hua4",
			CedictPinyin: "dian4 hua4",
			Definition:   "telephone; phone call",
		},
	})
}

func TestByWord(t *testing.T) {
	d := testSet()
	rows := d.ByWord("爱好")
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Level)
	assert.Equal(t, "2", rows[1].Level)
	assert.Empty(t, d.ByWord("不在"))
}

func TestSearchHanzi(t *testing.T) {
	d := testSet()

	rows, hanzi := d.Search("爱", 0)
	require.True(t, hanzi)
	require.Len(t, rows, 3)
	// exact headword outranks longer containing words
	assert.Equal(t, "爱", rows[0].Word)
}

func TestSearchPinyin(t *testing.T) {
	d := testSet()

	rows, hanzi := d.Search("dian4 hua4", 0)
	require.False(t, hanzi)
	require.Len(t, rows, 1)
	assert.Equal(t, "电话", rows[0].Word)

	rows, _ = d.Search("aihao", 0)
	require.Len(t, rows, 2)
	assert.Equal(t, "爱好", rows[0].Word)
}

func TestSearchGloss(t *testing.T) {
	d := testSet()

	rows, _ := d.Search("telephone", 0)
	require.Len(t, rows, 1)
	assert.Equal(t, "电话", rows[0].Word)
}

func TestSearchGlossFuzzy(t *testing.T) {
	d := testSet()

	rows := d.SearchGlossFuzzy("telefone", 1)
	require.Len(t, rows, 1)
	assert.Equal(t, "电话", rows[0].Word)
}

func TestSearchGlossFuzzyConcurrent(t *testing.T) {
	d := testSet()

	// first searches race on the lazy index build
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows := d.SearchGlossFuzzy("telefone", 1)
			if assert.Len(t, rows, 1) {
				assert.Equal(t, "电话", rows[0].Word)
			}
		}()
	}
	wg.Wait()
}

func TestLevenshtein(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"", "ab", 2},
	} {
		assert.Equal(t, tc.want, Levenshtein([]rune(tc.a), []rune(tc.b)), tc.a+"/"+tc.b)
	}
}
