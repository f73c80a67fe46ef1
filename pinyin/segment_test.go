package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHints() Hints {
	return Hints{
		Hanzi: map[rune][]string{
			'打': {"da3", "da2"},
			'电': {"dian4"},
			'话': {"hua4"},
			'点': {"dian3"},
			'花': {"hua1"},
			'儿': {"er2", "r5"},
			'嗯': {"en1"},
			'占': {"zhan4", "zhan1"},
			'干': {"gan4", "gan1"},
			'的': {"de5", "di4"},
			'一': {"yi1", "yi2", "yi4", "yi5"},
		},
		Words: map[string][][]string{},
	}
}

func TestNumberAligned(t *testing.T) {
	s := NewSegmenter(testHints())

	for _, tc := range []struct {
		word string
		raw  string
		want string
	}{
		{"打电话", "dǎ diànhuà", "da3 dian4 hua4"},
		{"打电话", "dǎdiànhuà", "da3 dian4 hua4"},
		{"打电话", "dǎ-diàn-huà", "da3 dian4 hua4"},
		{"点1", "diǎn", "dian3"},
		{"点2", "diǎn", "dian3"},
		{"花儿", "huār", "hua1 r5"},
		{"一", "yī", "yi1"},
	} {
		n, err := s.Number(tc.word, tc.raw)
		require.NoError(t, err, tc.word)
		assert.Equal(t, tc.want, n.String(), tc.word)
	}
}

func TestNumberVariants(t *testing.T) {
	s := NewSegmenter(testHints())

	n, err := s.Number("的", "de/dí")
	require.NoError(t, err)
	require.Len(t, n.Variants, 2)
	assert.Equal(t, "de5/di2", n.String())
	assert.Equal(t, []string{"de5"}, n.Primary())
}

func TestNumberInterjection(t *testing.T) {
	s := NewSegmenter(testHints())

	// syllabic nasal, not a reading the dictionary knows for the character
	n, err := s.Number("嗯", "ǹg")
	require.NoError(t, err)
	assert.Equal(t, "ng4", n.String())
}

func TestNumberSingleCharFallback(t *testing.T) {
	h := testHints()
	h.Hanzi['的'] = []string{"de5"}
	s := NewSegmenter(h)

	// single characters keep readings the dictionary lacks
	n, err := s.Number("的", "dì")
	require.NoError(t, err)
	assert.Equal(t, "di4", n.String())
}

func TestNumberAmbiguous(t *testing.T) {
	h := testHints()
	h.Hanzi['占'] = []string{"zhan4", "zhang1"}
	h.Hanzi['干'] = []string{"gan4", "an1"}
	s := NewSegmenter(h)

	_, err := s.Number("占干", "zhàngàn")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousSegmentation)

	h.Words["占干"] = [][]string{{"zhan4", "gan4"}}
	s = NewSegmenter(h)
	n, err := s.Number("占干", "zhàngàn")
	require.NoError(t, err)
	assert.Equal(t, "zhan4 gan4", n.String())
}

func TestNumberErrors(t *testing.T) {
	s := NewSegmenter(testHints())

	for _, tc := range []struct {
		word string
		raw  string
		err  error
	}{
		{"", "xrzq", ErrUnknownSyllable},
		{"打电话", "dǎ diàn", ErrUnknownSyllable},
		{"魑电话", "chī diàn huà", ErrUnknownSyllable},
		{"打电话", "", ErrUnknownSyllable},
	} {
		_, err := s.Number(tc.word, tc.raw)
		require.Error(t, err, tc.raw)
		assert.ErrorIs(t, err, tc.err, tc.raw)
	}
}

func TestNumberFree(t *testing.T) {
	s := NewSegmenter(Hints{})

	n, err := s.Number("", "nǐhǎo")
	require.NoError(t, err)
	assert.Equal(t, "ni3 hao3", n.String())
}

func BenchmarkNumber(b *testing.B) {
	s := NewSegmenter(testHints())
	for i := 0; i < b.N; i++ {
		if _, err := s.Number("打电话", "dǎ diànhuà"); err != nil {
			b.Fatal(err)
		}
	}
}

func TestNumberUnconstrained(t *testing.T) {
	// no hint table at all: alignment still holds by syllable count
	s := NewSegmenter(Hints{})

	n, err := s.Number("打电话", "dǎ diànhuà")
	require.NoError(t, err)
	assert.Equal(t, "da3 dian4 hua4", n.String())
}
