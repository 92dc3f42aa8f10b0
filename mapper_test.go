// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"testing"

	"github.com/wyborski/compgraph/function"
)

func TestMapStreamOneToOne(t *testing.T) {
	src := FromSlice([]Row{{"n": 1}, {"n": 2}})
	mapper := MapperFunc(func(row Row, emit function.RowConsumer[Row]) error {
		row["n"] = row["n"].(int) * 10
		emit(row)
		return nil
	})
	s := newMapStream(src, mapper)
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 2 || rows[0]["n"] != 10 || rows[1]["n"] != 20 {
		t.Fatalf("got %v", rows)
	}
}

func TestMapStreamFlattening(t *testing.T) {
	src := FromSlice([]Row{{"n": 2}})
	mapper := MapperFunc(func(row Row, emit function.RowConsumer[Row]) error {
		n := row["n"].(int)
		for i := 0; i < n; i++ {
			emit(Row{"i": i})
		}
		return nil
	})
	s := newMapStream(src, mapper)
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestMapStreamFiltering(t *testing.T) {
	src := FromSlice([]Row{{"n": 1}, {"n": 2}, {"n": 3}})
	mapper := MapperFunc(func(row Row, emit function.RowConsumer[Row]) error {
		if row["n"].(int)%2 == 0 {
			emit(row)
		}
		return nil
	})
	s := newMapStream(src, mapper)
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 1 || rows[0]["n"] != 2 {
		t.Fatalf("got %v", rows)
	}
}

func TestMapStreamReceivesClone(t *testing.T) {
	original := Row{"a": []float64{1, 2}}
	src := FromSlice([]Row{original})
	mapper := MapperFunc(func(row Row, emit function.RowConsumer[Row]) error {
		row["a"].([]float64)[0] = 99
		emit(row)
		return nil
	})
	s := newMapStream(src, mapper)
	defer s.Close()

	drainAll(t, s)
	if original["a"].([]float64)[0] != 1 {
		t.Errorf("mapper mutation leaked into caller's original row: %v", original["a"])
	}
}

func TestRowFunctionMapper(t *testing.T) {
	f := function.RowFunction[Row, Row](func(r Row) Row {
		r["doubled"] = r["n"].(int) * 2
		return r
	})
	src := FromSlice([]Row{{"n": 3}})
	s := newMapStream(src, RowFunctionMapper(f))
	defer s.Close()

	rows := drainAll(t, s)
	if len(rows) != 1 || rows[0]["doubled"] != 6 {
		t.Fatalf("got %v", rows)
	}
}
