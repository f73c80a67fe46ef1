package dataset

import (
	"sync"

	"github.com/frizinak/gohsk/fuzzy"
	"github.com/frizinak/gohsk/pipeline"
)

type fuzz struct {
	once  sync.Once
	rows  []int
	index *fuzzy.Index
}

// Dataset is a read-only, searchable view over one enriched TSV.
type Dataset struct {
	rows   []pipeline.Enriched
	byWord map[string][]int

	gfuzz fuzz
}

func New(rows []pipeline.Enriched) *Dataset {
	d := &Dataset{
		rows:   rows,
		byWord: make(map[string][]int, len(rows)),
	}
	for i, r := range rows {
		d.byWord[r.Word] = append(d.byWord[r.Word], i)
	}
	return d
}

func (d *Dataset) Len() int                  { return len(d.rows) }
func (d *Dataset) Rows() []pipeline.Enriched { return d.rows }

// ByWord returns the rows of one exact word, multi-level entries
// included, in dataset order.
func (d *Dataset) ByWord(word string) []pipeline.Enriched {
	idx := d.byWord[word]
	rows := make([]pipeline.Enriched, len(idx))
	for i, n := range idx {
		rows[i] = d.rows[n]
	}
	return rows
}

func (d *Dataset) initGlossFuzz() {
	d.gfuzz.once.Do(func() {
		rows := make([]int, 0, len(d.rows))
		keys := make([]string, 0, len(d.rows))
		for i, r := range d.rows {
			if r.Definition == "" {
				continue
			}
			rows = append(rows, i)
			keys = append(keys, r.Definition)
		}
		d.gfuzz.rows = rows
		d.gfuzz.index = fuzzy.New(2, keys)
	})
}
