package cedict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repo(t *testing.T, content string) *Repository {
	t.Helper()
	entries, err := Decode(strings.NewReader(content))
	require.NoError(t, err)
	return New(entries)
}

func TestRepositoryDedupe(t *testing.T) {
	r := repo(t, "你好 你好 [ni3 hao3] /hello/\n你好 你好 [ni3 hao3] /hello/\n")
	assert.Equal(t, 1, r.Len())
}

func TestCandidates(t *testing.T) {
	r := repo(t, `惡心 恶心 [e3 xin1] /nauseous/
噁心 恶心 [e3 xin1] /nauseous/
噁心 恶心 [e3 xin1] /to feel sick/
惡心 恶心 [e4 xin1] /bad habit/
`)

	c := r.Candidates("恶心")
	require.Len(t, c, 2)

	assert.Equal(t, "e3 xin1", c[0].PinyinNumbered())
	assert.Equal(t, "nauseous | to feel sick", c[0].Definition)
	assert.Equal(t, "惡心/噁心", c[0].TraditionalJoined())

	assert.Equal(t, "e4 xin1", c[1].PinyinNumbered())
	assert.Equal(t, "bad habit", c[1].Definition)

	assert.Nil(t, r.Candidates("不在"))
}

func TestHints(t *testing.T) {
	r := repo(t, `打 打 [da3] /to hit/
打 打 [da2] /dozen/
電 电 [dian4] /electric/
話 话 [hua4] /speech/
電話 电话 [dian4 hua4] /telephone/
好 好 [hao3] /good/
好 好 [hao4] /to like/
`)

	h := r.Hints()

	assert.ElementsMatch(t, []string{"da3", "da2"}, h.Hanzi['打'])
	// multi-char entries add no syllable whose base a character already has
	assert.Equal(t, []string{"dian4"}, h.Hanzi['电'])
	assert.ElementsMatch(t, []string{"hao3", "hao4"}, h.Hanzi['好'])

	assert.Len(t, h.Hanzi['一'], 5)
	assert.Contains(t, h.Hanzi['一'], "yi5")
	assert.Len(t, h.Hanzi['不'], 5)

	require.Len(t, h.Words["电话"], 1)
	assert.Equal(t, []string{"dian4", "hua4"}, h.Words["电话"][0])
}

func TestRules(t *testing.T) {
	r, err := DecodeRules(strings.NewReader(
		"word\tsource_pinyin_numbered\tselected_cedict_pinyin\n" +
			"# picked after review\n" +
			"恶心\te3 xin1/e4 xin1\te3 xin1\n",
	))
	require.NoError(t, err)
	assert.Equal(t, "e3 xin1", r[RuleKey{"恶心", "e3 xin1/e4 xin1"}])

	r, err = DecodeRules(strings.NewReader("恶心\te3 xin1/e4 xin1\te4 xin1\n\t\t\n"))
	require.NoError(t, err)
	require.Len(t, r, 1)
	assert.Equal(t, "e4 xin1", r[RuleKey{"恶心", "e3 xin1/e4 xin1"}])
}

func TestLoadRulesMissing(t *testing.T) {
	r, err := LoadRules("/nonexistent/rules.tsv")
	require.NoError(t, err)
	assert.Empty(t, r)
}
