package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frizinak/gohsk/cedict"
)

const mainDict = `你好 你好 [ni3 hao3] /hello/
惡心 恶心 [e3 xin1] /nauseous/
惡心 恶心 [e4 xin1] /disgusting/
點 点 [dian3] /dot/spot/
誰 谁 [shei2] /who/also pr. [shui2]/
`

const patchDict = `嗯 嗯 [ng4] /interjection of agreement/
`

func matcher(t testing.TB, rules cedict.Rules) *Matcher {
	t.Helper()
	main, err := cedict.Decode(strings.NewReader(mainDict))
	require.NoError(t, err)
	patch, err := cedict.Decode(strings.NewReader(patchDict))
	require.NoError(t, err)
	if rules == nil {
		rules = cedict.Rules{}
	}
	return NewMatcher(cedict.New(main), cedict.New(patch), rules)
}

func TestResolveExact(t *testing.T) {
	m := matcher(t, nil)

	res, err := m.Resolve("你好", "ni3 hao3")
	require.NoError(t, err)
	assert.Equal(t, TierExact, res.Tier)
	assert.Equal(t, "ni3 hao3", res.Candidate.PinyinNumbered())
	assert.Equal(t, "hello", res.Candidate.Definition)
}

func TestResolveExactVariantOrder(t *testing.T) {
	m := matcher(t, nil)

	// the first source variant with an exact hit wins
	res, err := m.Resolve("恶心", "e4 xin1/e3 xin1")
	require.NoError(t, err)
	assert.Equal(t, TierExact, res.Tier)
	assert.Equal(t, "e4 xin1", res.Candidate.PinyinNumbered())

	res, err = m.Resolve("谁", "shui2/shei2")
	require.NoError(t, err)
	assert.Equal(t, TierExact, res.Tier)
	assert.Equal(t, "shui2", res.Candidate.PinyinNumbered())
}

func TestResolveLooseUnique(t *testing.T) {
	m := matcher(t, nil)

	res, err := m.Resolve("你好", "ni2 hao3")
	require.NoError(t, err)
	assert.Equal(t, TierLooseUnique, res.Tier)
	assert.Equal(t, "ni3 hao3", res.Candidate.PinyinNumbered())
}

func TestResolveSenseSuffix(t *testing.T) {
	m := matcher(t, nil)

	res, err := m.Resolve("点1", "dian3")
	require.NoError(t, err)
	assert.Equal(t, TierExact, res.Tier)
	assert.Equal(t, "dot; spot", res.Candidate.Definition)
}

func TestResolveAmbiguous(t *testing.T) {
	m := matcher(t, nil)

	_, err := m.Resolve("恶心", "e5 xin1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestResolveDisambiguated(t *testing.T) {
	m := matcher(t, cedict.Rules{
		{Word: "恶心", Source: "e5 xin1"}: "e3 xin1",
	})

	res, err := m.Resolve("恶心", "e5 xin1")
	require.NoError(t, err)
	assert.Equal(t, TierDisambiguated, res.Tier)
	assert.Equal(t, "e3 xin1", res.Candidate.PinyinNumbered())
	assert.Len(t, res.Candidates, 2)
}

func TestResolveDisambiguatedBadRule(t *testing.T) {
	m := matcher(t, cedict.Rules{
		{Word: "恶心", Source: "e5 xin1"}: "e1 xin1",
	})

	_, err := m.Resolve("恶心", "e5 xin1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestResolvePatched(t *testing.T) {
	m := matcher(t, nil)

	res, err := m.Resolve("嗯", "ng4")
	require.NoError(t, err)
	assert.Equal(t, TierPatched, res.Tier)
	assert.Equal(t, "interjection of agreement", res.Candidate.Definition)

	// tone-insensitive fallback inside the patch still tags as patched
	res, err = m.Resolve("嗯", "ng2")
	require.NoError(t, err)
	assert.Equal(t, TierPatched, res.Tier)
}

func TestResolveUnresolved(t *testing.T) {
	m := matcher(t, nil)

	_, err := m.Resolve("不在", "bu4 zai4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedMatch)

	_, err = m.Resolve("你好", "wa1 wa1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedMatch)

	_, err = m.Resolve("你好", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedMatch)
}

func BenchmarkResolve(b *testing.B) {
	m := matcher(b, nil)
	for i := 0; i < b.N; i++ {
		if _, err := m.Resolve("你好", "ni3 hao3"); err != nil {
			b.Fatal(err)
		}
	}
}
