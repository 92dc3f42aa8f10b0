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

var columns = pipelines.YandexMapsSpeedColumns{
	EnterTime:  "enter_time",
	LeaveTime:  "leave_time",
	EdgeID:     "edge_id",
	StartCoord: "start",
	EndCoord:   "end",
	Weekday:    "weekday",
	Hour:       "hour",
	Speed:      "speed",
}

func main() {
	cfg, err := cmdconfig.Load("SPEED", true)
	if err != nil {
		log.Fatal().Err(err).Msg("speed: loading configuration")
	}
	if err := cfg.Validate(true); err != nil {
		log.Fatal().Err(err).Msg("speed: invalid configuration")
	}

	graph := pipelines.YandexMapsSpeed(
		compgraph.FromFile(cfg.Input, rowio.ParseLine),
		compgraph.FromFile(cfg.Input2, rowio.ParseLine),
		columns, cfg.SortBufferRows,
	)

	stream, err := graph.Run(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("speed: running graph")
	}
	defer stream.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("speed: opening output")
	}
	defer out.Close()

	for {
		row, ok, err := stream.Next()
		if err != nil {
			log.Fatal().Err(err).Msg("speed: reading result stream")
		}
		if !ok {
			break
		}
		if err := rowio.WriteLine(out, row); err != nil {
			log.Fatal().Err(err).Msg("speed: writing output")
		}
	}
}
