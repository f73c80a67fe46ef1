package main

import (
	"flag"
	"os"

	"github.com/frizinak/gohsk/cedict"
)

func main() {
	var in, patch, out string
	flag.StringVar(&in, "in", "data/cedict_ts.u8", "CC-CEDICT source file")
	flag.StringVar(&patch, "patch", "", "optional patch file appended to the cache")
	flag.StringVar(&out, "o", "data/db.gob", "cache destination")
	flag.Parse()

	entries, err := cedict.DecodeFile(in)
	if err != nil {
		panic(err)
	}

	if patch != "" {
		p, err := cedict.DecodeFile(patch)
		if err != nil {
			panic(err)
		}
		entries = append(entries, p...)
	}

	os.Mkdir("data", 0700)
	if err := cedict.StoreGOB(out, entries); err != nil {
		panic(err)
	}
}
