// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"errors"
	"testing"

	"github.com/wyborski/compgraph/function"
)

func TestGraphRunEmptyOperation(t *testing.T) {
	g := &Graph{}
	_, err := g.Run(nil)
	if !errors.Is(err, ErrEmptyOperation) {
		t.Fatalf("Run() err = %v, want ErrEmptyOperation", err)
	}
}

func TestGraphFromIterUnboundSource(t *testing.T) {
	g := FromIter("missing")
	_, err := g.Run(NamedSources{})
	if !errors.Is(err, ErrUnboundSource) {
		t.Fatalf("Run() err = %v, want ErrUnboundSource", err)
	}
}

func TestGraphFromIterBound(t *testing.T) {
	g := FromIter("rows")
	sources := NamedSources{
		"rows": func() (Stream, error) { return FromSlice([]Row{{"a": 1}}), nil },
	}
	s, err := g.Run(sources)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 1 || rows[0]["a"] != 1 {
		t.Fatalf("got %v", rows)
	}
}

func TestGraphMapReduceChain(t *testing.T) {
	g := FromIter("rows").
		Map(RowFunctionMapper(function.RowFunction[Row, Row](func(r Row) Row {
			r["n"] = r["n"].(int) * 2
			return r
		}))).
		Reduce(SumReducer{Column: "n"}, KeyTuple{"k"})

	sources := NamedSources{
		"rows": func() (Stream, error) {
			return FromSlice([]Row{
				{"k": 1, "n": 1},
				{"k": 1, "n": 2},
			}), nil
		},
	}
	s, err := g.Run(sources)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 1 || rows[0]["n"] != int64(6) {
		t.Fatalf("got %v, want n=6 (2*1 + 2*2)", rows)
	}
}

func TestGraphSortThenReduceGroupsCorrectly(t *testing.T) {
	g := FromIter("rows").
		Sort(KeyTuple{"k"}).
		Reduce(CountReducer{Column: "n"}, KeyTuple{"k"})

	sources := NamedSources{
		"rows": func() (Stream, error) {
			// deliberately out of key order; Sort must fix this before Reduce groups it
			return FromSlice([]Row{
				{"k": 2, "v": "c"},
				{"k": 1, "v": "a"},
				{"k": 1, "v": "b"},
			}), nil
		},
	}
	s, err := g.Run(sources)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 2 {
		t.Fatalf("got %d groups, want 2", len(rows))
	}
	if rows[0]["k"] != 1 || rows[0]["n"] != int64(2) {
		t.Fatalf("group 0 = %v, want k=1, n=2", rows[0])
	}
	if rows[1]["k"] != 2 || rows[1]["n"] != int64(1) {
		t.Fatalf("group 1 = %v, want k=2, n=1", rows[1])
	}
}

func TestGraphJoin(t *testing.T) {
	left := FromIter("left").Sort(KeyTuple{"id"})
	right := FromIter("right").Sort(KeyTuple{"id"})
	g := left.Join(InnerJoiner{}, right, KeyTuple{"id"})

	sources := NamedSources{
		"left":  func() (Stream, error) { return FromSlice([]Row{{"id": 1, "a": 1}}), nil },
		"right": func() (Stream, error) { return FromSlice([]Row{{"id": 1, "b": 2}}), nil },
	}
	s, err := g.Run(sources)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 1 || rows[0]["a"] != 1 || rows[0]["b"] != 2 {
		t.Fatalf("got %v", rows)
	}
}
