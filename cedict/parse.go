package cedict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	entryRE    = regexp.MustCompile(`^(\S+)\s+(\S+)\s+\[([^\]]+)\]\s*/(.*)/\s*$`)
	alsoPrRE   = regexp.MustCompile(`also pr\. \[([^\]]+)\]`)
	syllableRE = regexp.MustCompile(`^[a-zü]+[1-5]$`)
)

// Entry is one dictionary record keyed by a single word form. A CC-CEDICT
// line yields up to two entries (traditional and simplified) per pinyin
// reading, each remembering the traditional side of its line.
type Entry struct {
	Word        string
	Traditional string
	Pinyin      []string
	Definition  string
}

func (e Entry) PinyinNumbered() string { return strings.Join(e.Pinyin, " ") }

// MalformedLineError marks a non-comment line that does not follow the
// CC-CEDICT shape. Such lines abort the load instead of silently vanishing.
type MalformedLineError struct {
	Line int
	Text string
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf("cedict: malformed line %d: %q", e.Line, e.Text)
}

// NormalizeSyllable lowercases one pinyin token and rewrites the u: and v
// spellings of ü. ok is false when the result is not letters followed by a
// tone digit.
func NormalizeSyllable(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	token = strings.ReplaceAll(token, "u:", "ü")
	token = strings.ReplaceAll(token, "U:", "ü")
	token = strings.ReplaceAll(token, "v", "ü")
	token = strings.ReplaceAll(token, "V", "ü")
	token = strings.ToLower(token)
	if !syllableRE.MatchString(token) {
		return "", false
	}
	return token, true
}

func parseTokens(payload string) ([]string, bool) {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return nil, false
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t, ok := NormalizeSyllable(f)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, t)
	}
	return tokens, true
}

// alternates extracts "also pr. [...]" readings from the gloss payload.
func alternates(payload string) [][]string {
	var alts [][]string
	for _, m := range alsoPrRE.FindAllStringSubmatch(payload, -1) {
		if tokens, ok := parseTokens(m[1]); ok {
			alts = append(alts, tokens)
		}
	}
	return alts
}

// Decode parses CC-CEDICT (or patch) content. Comments and blank lines are
// skipped, structurally broken lines are fatal, and lines whose pinyin is
// not numbered syllables (CC-CEDICT uses "xx5" and friends for unreadable
// entries, but the occasional bare "xx" occurs) are dropped. Readings whose
// syllable count differs from the word's character count are dropped too,
// since they can never align.
func Decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := entryRE.FindStringSubmatch(line)
		if m == nil {
			return nil, MalformedLineError{Line: n, Text: line}
		}
		trad, simp, pinyinField, glossPayload := m[1], m[2], m[3], m[4]

		primary, ok := parseTokens(pinyinField)
		if !ok {
			continue
		}

		var glosses []string
		for _, g := range strings.Split(glossPayload, "/") {
			if g = strings.TrimSpace(g); g != "" {
				glosses = append(glosses, g)
			}
		}
		definition := strings.Join(glosses, "; ")

		readings := append([][]string{primary}, alternates(glossPayload)...)
		words := []string{trad}
		if simp != trad {
			words = append(words, simp)
		}
		for _, word := range words {
			for _, tokens := range readings {
				if len(tokens) != utf8.RuneCountInString(word) {
					continue
				}
				entries = append(entries, Entry{
					Word:        word,
					Traditional: trad,
					Pinyin:      tokens,
					Definition:  definition,
				})
			}
		}
	}

	return entries, s.Err()
}

func DecodeFile(file string) ([]Entry, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	entries, err := Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return entries, nil
}
