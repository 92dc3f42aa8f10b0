// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is compgraph's package-level structured logger. External sort
// is its only user: it reports spill-directory creation, run spills, and
// temporary-directory cleanup through it. Callers may replace it
// wholesale (e.g. to attach request-scoped fields) with SetLogger.
var Logger zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: "15:04:05",
}).With().Timestamp().Logger()

// SetLogger replaces the package-level logger.
func SetLogger(l zerolog.Logger) { Logger = l }
