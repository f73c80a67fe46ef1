package common

import (
	"strings"

	"github.com/frizinak/gohsk/cedict"
	"github.com/frizinak/gohsk/dataset"
	"github.com/frizinak/gohsk/match"
	"github.com/frizinak/gohsk/pinyin"
	"github.com/frizinak/gohsk/report"
)

// LoadRepository reads a dictionary from either a precompiled .gob cache
// or a raw CC-CEDICT text file, picked by extension.
func LoadRepository(file string) (*cedict.Repository, error) {
	var entries []cedict.Entry
	var err error
	if strings.HasSuffix(file, ".gob") {
		entries, err = cedict.LoadGOB(file)
	} else {
		entries, err = cedict.DecodeFile(file)
	}
	if err != nil {
		return nil, err
	}
	return cedict.New(entries), nil
}

// LoadOptionalRepository treats an empty path as an empty dictionary.
func LoadOptionalRepository(file string) (*cedict.Repository, error) {
	if file == "" {
		return cedict.New(nil), nil
	}
	return LoadRepository(file)
}

// Tools wires the two engines a run needs from their three input files.
func Tools(mainFile, patchFile, rulesFile string) (*pinyin.Segmenter, *match.Matcher, error) {
	main, err := LoadRepository(mainFile)
	if err != nil {
		return nil, nil, err
	}
	patch, err := LoadOptionalRepository(patchFile)
	if err != nil {
		return nil, nil, err
	}

	rules := cedict.Rules{}
	if rulesFile != "" {
		rules, err = cedict.LoadRules(rulesFile)
		if err != nil {
			return nil, nil, err
		}
	}

	return pinyin.NewSegmenter(main.Hints()), match.NewMatcher(main, patch, rules), nil
}

// LoadDataset reads an enriched TSV into its searchable form.
func LoadDataset(file string) (*dataset.Dataset, error) {
	rows, err := report.DecodeTSVFile(file)
	if err != nil {
		return nil, err
	}
	return dataset.New(rows), nil
}
