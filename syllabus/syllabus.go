package syllabus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Row is one syllabus entry after level expansion: a word can occur at
// several levels and then repeats with the same index.
type Row struct {
	Index  int
	Level  string
	Word   string
	Pinyin string
	POS    string
}

var validLevels = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7-9": true,
}

// wordRE allows a trailing sense suffix (点1, 点2) used when one spelling
// carries two list entries.
var wordRE = regexp.MustCompile(`^[一-鿿]+[12]?$`)

// Decode reads tab-separated syllabus rows: index, level field, word,
// pinyin, part of speech (optional). A header row starting with a
// non-numeric index is skipped, as are blanks and # comments. Level
// fields with extra levels fan out into one row per level.
func Decode(r io.Reader) ([]Row, error) {
	var rows []Row
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimRight(s.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if len(cells) < 4 {
			return nil, fmt.Errorf("syllabus: line %d: expected at least 4 columns, got %d", n, len(cells))
		}

		index, err := strconv.Atoi(cells[0])
		if err != nil {
			if n == 1 {
				continue
			}
			return nil, fmt.Errorf("syllabus: line %d: invalid index %q", n, cells[0])
		}

		pos := ""
		if len(cells) > 4 {
			pos = cells[4]
		}
		rows = append(rows, expand(index, cells[1], cells[2], cells[3], pos)...)
	}

	return rows, s.Err()
}

func DecodeFile(file string) ([]Row, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	rows, err := Decode(f)
	f.Close()
	return rows, err
}

var extraLevelRE = regexp.MustCompile(`（([^）]+)）`)

// ParseLevels expands a level field such as "1（2）" or "3（4）（7-9）" into
// its ordered level labels, base level first.
func ParseLevels(field string) []string {
	if !strings.Contains(field, "（") {
		return []string{strings.TrimSpace(field)}
	}

	base := strings.TrimSpace(strings.SplitN(field, "（", 2)[0])
	levels := make([]string, 0, 2)
	if base != "" {
		levels = append(levels, base)
	}
	for _, m := range extraLevelRE.FindAllStringSubmatch(field, -1) {
		if extra := strings.TrimSpace(m[1]); extra != "" {
			levels = append(levels, extra)
		}
	}
	if len(levels) == 0 {
		return []string{strings.TrimSpace(field)}
	}
	return levels
}

// SplitPOSGroups splits a part-of-speech field on 、 while keeping
// full-width parenthesized bundles whole: those bundles belong to the
// extra levels of the same entry, in appearance order.
func SplitPOSGroups(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return []string{""}
	}

	var groups []string
	var buf []rune
	depth := 0
	for _, c := range field {
		switch c {
		case '（':
			depth++
		case '）':
			if depth > 0 {
				depth--
			}
		}
		if c == '、' && depth == 0 {
			groups = append(groups, strings.TrimSpace(string(buf)))
			buf = buf[:0]
			continue
		}
		buf = append(buf, c)
	}
	if len(buf) != 0 {
		groups = append(groups, strings.TrimSpace(string(buf)))
	}

	var base []string
	var extras []string
	for _, g := range groups {
		if strings.HasPrefix(g, "（") && strings.HasSuffix(g, "）") {
			extras = append(extras, strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(g, "（"), "）")))
		} else if g != "" {
			base = append(base, g)
		}
	}

	out := []string{strings.Join(base, "、")}
	return append(out, extras...)
}

// expand emits one row per level. POS groups align positionally with the
// levels; on count mismatch the whole POS field repeats on every row.
func expand(index int, levelField, word, pinyin, pos string) []Row {
	levels := ParseLevels(levelField)
	if len(levels) == 1 {
		return []Row{{index, levels[0], word, pinyin, pos}}
	}

	groups := SplitPOSGroups(pos)
	if len(groups) != len(levels) {
		groups = make([]string, len(levels))
		for i := range groups {
			groups[i] = pos
		}
	}

	rows := make([]Row, len(levels))
	for i, level := range levels {
		rows[i] = Row{index, level, word, pinyin, groups[i]}
	}
	return rows
}

// ValidationError aggregates every broken row of one run.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	n := len(e.Problems)
	preview := e.Problems
	if n > 25 {
		preview = preview[:25]
	}
	msg := fmt.Sprintf("syllabus: %d invalid rows:\n- %s", n, strings.Join(preview, "\n- "))
	if n > 25 {
		msg += fmt.Sprintf("\n- ... and %d more", n-25)
	}
	return msg
}

// Validate checks every row against the schema: positive index, known HSK
// level, Hanzi word with optional sense suffix, non-empty pinyin.
func Validate(rows []Row) error {
	var problems []string
	for i, row := range rows {
		if row.Index <= 0 {
			problems = append(problems, fmt.Sprintf("row %d: invalid index %d", i+1, row.Index))
		}
		if !validLevels[row.Level] {
			problems = append(problems, fmt.Sprintf("row %d: invalid level %q", i+1, row.Level))
		}
		if !wordRE.MatchString(row.Word) {
			problems = append(problems, fmt.Sprintf("row %d: invalid word %q", i+1, row.Word))
		}
		if strings.TrimSpace(row.Pinyin) == "" {
			problems = append(problems, fmt.Sprintf("row %d: empty pinyin", i+1))
		}
	}

	if len(problems) != 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
