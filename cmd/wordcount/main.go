// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/wyborski/compgraph"
	"github.com/wyborski/compgraph/internal/cmdconfig"
	"github.com/wyborski/compgraph/pipelines"
	"github.com/wyborski/compgraph/rowio"
)

const (
	textColumn  = "text"
	countColumn = "count"
)

func main() {
	cfg, err := cmdconfig.Load("WORDCOUNT", false)
	if err != nil {
		log.Fatal().Err(err).Msg("wordcount: loading configuration")
	}
	if err := cfg.Validate(false); err != nil {
		log.Fatal().Err(err).Msg("wordcount: invalid configuration")
	}

	graph := pipelines.WordCount(
		compgraph.FromFile(cfg.Input, rowio.ParseLine),
		textColumn, countColumn, cfg.SortBufferRows,
	)

	stream, err := graph.Run(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("wordcount: running graph")
	}
	defer stream.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("wordcount: opening output")
	}
	defer out.Close()

	for {
		row, ok, err := stream.Next()
		if err != nil {
			log.Fatal().Err(err).Msg("wordcount: reading result stream")
		}
		if !ok {
			break
		}
		if err := rowio.WriteLine(out, row); err != nil {
			log.Fatal().Err(err).Msg("wordcount: writing output")
		}
	}
}
