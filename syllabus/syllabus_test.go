package syllabus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	rows, err := Decode(strings.NewReader(
		"word_index\tlevel\tword\tpinyin\tpart_of_speech\n" +
			"1\t1\t爱\tài\t动\n" +
			"# noise\n" +
			"2\t1（2）\t爱好\tàihào\t动、（名）\n" +
			"3\t7-9\t喂\twèi/wéi\t\n",
	))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Row{1, "1", "爱", "ài", "动"}, rows[0])
	assert.Equal(t, Row{2, "1", "爱好", "àihào", "动"}, rows[1])
	assert.Equal(t, Row{2, "2", "爱好", "àihào", "名"}, rows[2])
	assert.Equal(t, Row{3, "7-9", "喂", "wèi/wéi", ""}, rows[3])
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("1\t1\t爱\n"))
	require.Error(t, err)

	_, err = Decode(strings.NewReader("1\t1\t爱\tài\n" + "x\t1\t好\thǎo\n"))
	require.Error(t, err)
}

func TestParseLevels(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"1", []string{"1"}},
		{"7-9", []string{"7-9"}},
		{"1（2）", []string{"1", "2"}},
		{"3（4）（7-9）", []string{"3", "4", "7-9"}},
	} {
		assert.Equal(t, tc.want, ParseLevels(tc.in), tc.in)
	}
}

func TestSplitPOSGroups(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"动", []string{"动"}},
		{"动、（名）", []string{"动", "名"}},
		{"动、名、（形、副）", []string{"动、名", "形、副"}},
		{"（名）", []string{"", "名"}},
	} {
		assert.Equal(t, tc.want, SplitPOSGroups(tc.in), tc.in)
	}
}

func TestExpandMisaligned(t *testing.T) {
	// two levels but three POS groups: replicate the raw field
	rows := expand(9, "1（2）", "好", "hǎo", "动、（名）、（形）")
	require.Len(t, rows, 2)
	assert.Equal(t, "动、（名）、（形）", rows[0].POS)
	assert.Equal(t, rows[0].POS, rows[1].POS)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]Row{{1, "1", "爱", "ài", "动"}, {2, "7-9", "点1", "diǎn", ""}}))

	err := Validate([]Row{
		{0, "8", "abc", " ", ""},
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Problems, 4)
}
