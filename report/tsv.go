package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/frizinak/gohsk/pipeline"
	"github.com/frizinak/gohsk/syllabus"
)

var tsvHeader = []string{
	"word_index",
	"level",
	"word",
	"pinyin",
	"part_of_speech",
	"pinyin_numbered",
	"pinyin_cc-cedict",
	"traditional_cc-cedict",
	"definition_cc-cedict",
}

// EncodeTSV writes enriched rows in the canonical 9-column order.
func EncodeTSV(w io.Writer, rows []pipeline.Enriched, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		bw.WriteString(strings.Join(tsvHeader, "\t"))
		bw.WriteByte('\n')
	}
	for _, r := range rows {
		cols := []string{
			strconv.Itoa(r.Index),
			r.Level,
			r.Word,
			r.Pinyin,
			r.POS,
			r.Numbered,
			r.CedictPinyin,
			r.Traditional,
			r.Definition,
		}
		bw.WriteString(strings.Join(cols, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteTSV writes the dataset through a temp file so a failing run never
// leaves a truncated artifact behind.
func WriteTSV(file string, rows []pipeline.Enriched, header bool) error {
	tmp := fmt.Sprintf("%s.%d.tmp", file, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := EncodeTSV(f, rows, header); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, file)
}

// DecodeTSV reads rows written by EncodeTSV; a header row is detected and
// skipped. The tier and note columns are not part of the artifact, so
// read-back rows carry neither.
func DecodeTSV(r io.Reader) ([]pipeline.Enriched, error) {
	var rows []pipeline.Enriched
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimRight(s.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if n == 1 && cols[0] == "word_index" {
			continue
		}
		if len(cols) != len(tsvHeader) {
			return nil, fmt.Errorf("tsv: line %d: expected %d columns, got %d", n, len(tsvHeader), len(cols))
		}

		index, err := strconv.Atoi(cols[0])
		if err != nil {
			return nil, fmt.Errorf("tsv: line %d: invalid index %q", n, cols[0])
		}
		rows = append(rows, pipeline.Enriched{
			Row: syllabus.Row{
				Index:  index,
				Level:  cols[1],
				Word:   cols[2],
				Pinyin: cols[3],
				POS:    cols[4],
			},
			Numbered:     cols[5],
			CedictPinyin: cols[6],
			Traditional:  cols[7],
			Definition:   cols[8],
		})
	}
	return rows, s.Err()
}

func DecodeTSVFile(file string) ([]pipeline.Enriched, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	rows, err := DecodeTSV(f)
	f.Close()
	return rows, err
}
