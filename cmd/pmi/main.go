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
	docColumn    = "doc_id"
	textColumn   = "text"
	resultColumn = "pmi"
)

func main() {
	cfg, err := cmdconfig.Load("PMI", false)
	if err != nil {
		log.Fatal().Err(err).Msg("pmi: loading configuration")
	}
	if err := cfg.Validate(false); err != nil {
		log.Fatal().Err(err).Msg("pmi: invalid configuration")
	}

	graph := pipelines.PMI(
		compgraph.FromFile(cfg.Input, rowio.ParseLine),
		docColumn, textColumn, resultColumn, cfg.SortBufferRows,
	)

	stream, err := graph.Run(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("pmi: running graph")
	}
	defer stream.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("pmi: opening output")
	}
	defer out.Close()

	for {
		row, ok, err := stream.Next()
		if err != nil {
			log.Fatal().Err(err).Msg("pmi: reading result stream")
		}
		if !ok {
			break
		}
		if err := rowio.WriteLine(out, row); err != nil {
			log.Fatal().Err(err).Msg("pmi: writing output")
		}
	}
}
