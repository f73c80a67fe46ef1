package cedict

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// RuleKey identifies one ambiguous row: the word as it appears in the
// syllabus (sense suffix included) plus its full numbered pronunciation.
type RuleKey struct {
	Word   string
	Source string
}

// Rules maps ambiguous rows to the dictionary reading a reviewer picked.
type Rules map[RuleKey]string

// DecodeRules reads the override TSV. A header row naming the columns
// word, source_pinyin_numbered and selected_cedict_pinyin reorders them;
// without one the three columns are positional. Comments, blanks and
// incomplete rows are skipped.
func DecodeRules(r io.Reader) (Rules, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return Rules{}, nil
	}

	iWord, iSource, iSelected := 0, 1, 2
	header := cells(lines[0])
	if hi := indexOf(header, "word"); hi >= 0 {
		si, ci := indexOf(header, "source_pinyin_numbered"), indexOf(header, "selected_cedict_pinyin")
		if si >= 0 && ci >= 0 {
			iWord, iSource, iSelected = hi, si, ci
			lines = lines[1:]
		}
	}

	rules := make(Rules, len(lines))
	for _, line := range lines {
		c := cells(line)
		if len(c) <= iWord || len(c) <= iSource || len(c) <= iSelected {
			continue
		}
		word, source, selected := c[iWord], c[iSource], c[iSelected]
		if word == "" || source == "" || selected == "" {
			continue
		}
		rules[RuleKey{word, source}] = selected
	}
	return rules, nil
}

// LoadRules reads rules from file; a missing file yields an empty set.
func LoadRules(file string) (Rules, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return Rules{}, nil
		}
		return nil, err
	}

	rules, err := DecodeRules(f)
	f.Close()
	return rules, err
}

func cells(line string) []string {
	c := strings.Split(line, "\t")
	for i := range c {
		c[i] = strings.TrimSpace(c[i])
	}
	return c
}

func indexOf(l []string, s string) int {
	for i, v := range l {
		if v == s {
			return i
		}
	}
	return -1
}
