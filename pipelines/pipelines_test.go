// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package pipelines

import (
	"testing"

	"github.com/wyborski/compgraph"
)

func runGraph(t *testing.T, g *compgraph.Graph, sources compgraph.NamedSources) []compgraph.Row {
	t.Helper()
	s, err := g.Run(sources)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer s.Close()

	var rows []compgraph.Row
	for {
		row, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

func TestWordCount(t *testing.T) {
	sources := compgraph.NamedSources{
		"in": func() (compgraph.Stream, error) {
			return compgraph.FromSlice([]compgraph.Row{
				{"text": "hello, hello world"},
				{"text": "world"},
			}), nil
		},
	}
	g := WordCount(compgraph.FromIter("in"), "text", "count", 0)

	rows := runGraph(t, g, sources)
	if len(rows) == 0 {
		t.Fatal("expected at least one word counted")
	}

	counts := make(map[string]int64)
	for _, row := range rows {
		counts[row["text"].(string)] = row["count"].(int64)
	}
	if counts["hello"] != 2 {
		t.Errorf(`count["hello"] = %d, want 2`, counts["hello"])
	}
	if counts["world"] != 2 {
		t.Errorf(`count["world"] = %d, want 2`, counts["world"])
	}

	// Output must be ascending by (count, word): the last row has the
	// highest count.
	last := rows[len(rows)-1]
	if last["count"] != int64(2) {
		t.Errorf("last row's count = %v, want the max (2)", last["count"])
	}
}
