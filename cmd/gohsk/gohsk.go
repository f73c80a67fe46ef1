package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/frizinak/gohsk/common"
	"github.com/frizinak/gohsk/pipeline"
	"github.com/frizinak/gohsk/report"
	"github.com/frizinak/gohsk/syllabus"
)

func exit(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	var (
		in              string
		dict            string
		patch           string
		rules           string
		out             string
		reportFile      string
		noHeader        bool
		allowUnresolved bool
		workers         int
		verbose         bool
	)
	flag.StringVar(&in, "in", "", "syllabus rows TSV (required)")
	flag.StringVar(&dict, "dict", "data/cedict_ts.u8", "CC-CEDICT file (.u8 or .gob cache)")
	flag.StringVar(&patch, "patch", "", "patch dictionary in CC-CEDICT format")
	flag.StringVar(&rules, "rules", "", "disambiguation overrides TSV")
	flag.StringVar(&out, "o", "hsk.tsv", "output TSV")
	flag.StringVar(&reportFile, "report", "report.md", "output markdown report, empty to skip")
	flag.BoolVar(&noHeader, "no-header", false, "omit the TSV header row")
	flag.BoolVar(&allowUnresolved, "allow-unresolved", false, "keep rows without a dictionary match")
	flag.IntVar(&workers, "workers", 0, "enrichment workers, 0 = number of cpus")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	if in == "" {
		exit(errors.New("please provide a syllabus file (-in)"))
	}

	rows, err := syllabus.DecodeFile(in)
	exit(err)
	exit(syllabus.Validate(rows))
	log.Info().Int("rows", len(rows)).Str("file", in).Msg("syllabus loaded")

	seg, matcher, err := common.Tools(dict, patch, rules)
	exit(err)

	start := time.Now()
	enriched, counters, err := pipeline.Run(
		context.Background(),
		rows,
		seg,
		matcher,
		pipeline.Config{
			AllowUnresolved: allowUnresolved,
			Workers:         workers,
			Log:             log,
		},
	)
	exit(err)

	log.Info().
		Int("total", counters.Total).
		Int("exact", counters.Exact).
		Int("loose_unique", counters.LooseUnique).
		Int("disambiguated", counters.Disambiguated).
		Int("patched", counters.Patched).
		Int("unresolved", counters.Unresolved).
		Dur("took", time.Since(start)).
		Msg("enrichment done")

	missing := pipeline.MissingIndexes(enriched)
	if len(missing) != 0 {
		log.Warn().Str("indexes", report.FormatRanges(missing)).Msg("missing word indexes")
	}

	exit(report.WriteTSV(out, enriched, !noHeader))
	log.Info().Str("file", out).Msg("dataset written")

	if reportFile != "" {
		exit(os.WriteFile(reportFile, []byte(report.Build(enriched, missing)), 0644))
		log.Info().Str("file", reportFile).Msg("report written")
	}
}
