// Copyright © 2020 Yoshiki Shibata. All rights reserved.

// Package cmdconfig is the shared entry-point configuration layer for
// compgraph's cmd/ binaries: a .env file (godotenv) feeds environment
// variables, which viper layers under flags (pflag), the way
// kbukum-gokit's server.Config and leofalp-aigo's config loaders do for
// their own entry points.
package cmdconfig

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the paths and tuning knobs every compgraph cmd/ binary
// needs: where to read rows from, where to write them, and how large
// an external-sort run is allowed to grow before it spills.
type Config struct {
	Input          string
	Input2         string // second input path; only cmd/speed uses it
	Output         string
	SortBufferRows int
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SortBufferRows <= 0 {
		c.SortBufferRows = 100000
	}
}

// Validate checks that the required paths were supplied.
func (c *Config) Validate(needsSecondInput bool) error {
	if c.Input == "" {
		return fmt.Errorf("cmdconfig: --input is required")
	}
	if needsSecondInput && c.Input2 == "" {
		return fmt.Errorf("cmdconfig: --input2 is required")
	}
	if c.Output == "" {
		return fmt.Errorf("cmdconfig: --output is required")
	}
	return nil
}

// Load reads a .env file if present, then resolves Config from flags
// (highest precedence), environment variables prefixed envPrefix, and
// built-in defaults. needsSecondInput registers the --input2 flag for
// pipelines (cmd/speed) that read two sources.
func Load(envPrefix string, needsSecondInput bool) (*Config, error) {
	_ = godotenv.Load() // a missing .env file is not an error

	flags := pflag.NewFlagSet(envPrefix, pflag.ContinueOnError)
	flags.String("input", "", "input file path (newline-delimited JSON rows)")
	if needsSecondInput {
		flags.String("input2", "", "second input file path (newline-delimited JSON rows)")
	}
	flags.String("output", "", "output file path (newline-delimited JSON rows)")
	flags.Int("sort-buffer-rows", 0, "max rows buffered per external-sort run before spilling (0 = engine default)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	cfg := &Config{
		Input:          v.GetString("input"),
		Output:         v.GetString("output"),
		SortBufferRows: v.GetInt("sort-buffer-rows"),
	}
	if needsSecondInput {
		cfg.Input2 = v.GetString("input2")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
