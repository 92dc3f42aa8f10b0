// Copyright © 2020 Yoshiki Shibata. All rights reserved.

// Package rowio is the line-delimited JSON veneer over compgraph.Row:
// one JSON object per line in, one JSON object per line out. The
// engine itself is format-agnostic (a From-file source just needs a
// string-to-Row parser); this is the concrete parser compgraph's cmd/
// entry points use.
package rowio

import (
	"encoding/json"
	"io"

	"github.com/wyborski/compgraph"
)

// ParseLine decodes one line of newline-delimited JSON into a Row.
func ParseLine(line string) (compgraph.Row, error) {
	var row compgraph.Row
	if err := json.Unmarshal([]byte(line), &row); err != nil {
		return nil, err
	}
	return row, nil
}

// WriteLine encodes row as JSON followed by a newline.
func WriteLine(w io.Writer, row compgraph.Row) error {
	enc := json.NewEncoder(w)
	return enc.Encode(row)
}
