package fuzzy

import "strings"

// Index is an n-gram inverted index over a fixed list of strings.
// Build once, search concurrently.
type Index struct {
	n     int
	size  int
	grams map[string][]int32
}

func New(n int, items []string) *Index {
	if n < 2 {
		n = 2
	}
	ix := &Index{
		n:     n,
		size:  len(items),
		grams: make(map[string][]int32, len(items)),
	}

	for i, item := range items {
		for _, g := range ix.split(item) {
			ix.grams[g] = append(ix.grams[g], int32(i))
		}
	}
	return ix
}

const maxScore = 1<<8 - 1

// Visit receives every indexed item with its query overlap score and the
// score bounds of this search.
type Visit func(index int, score, low, high uint8)

// Search scores each item by the number of query n-grams it shares with
// the item, saturating at 255.
func (ix *Index) Search(q string, visit Visit) {
	scores := make([]uint8, ix.size)
	for _, g := range ix.split(q) {
		for _, i := range ix.grams[g] {
			if scores[i] != maxScore {
				scores[i]++
			}
		}
	}

	var low, high uint8 = maxScore, 0
	for _, s := range scores {
		if s < low {
			low = s
		}
		if s > high {
			high = s
		}
	}
	if ix.size == 0 {
		low = 0
	}

	for i, s := range scores {
		visit(i, s, low, high)
	}
}

func (ix *Index) split(s string) []string {
	var grams []string
	for _, field := range strings.Fields(strings.ToLower(s)) {
		r := []rune(field)
		if len(r) < 2 {
			continue
		}
		if len(r) <= ix.n {
			grams = append(grams, field)
			continue
		}
		for i := 0; i+ix.n <= len(r); i++ {
			grams = append(grams, string(r[i:i+ix.n]))
		}
	}
	return grams
}
