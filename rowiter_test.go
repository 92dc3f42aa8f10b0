// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "testing"

func drainAll(t *testing.T, it RowIter) []Row {
	t.Helper()
	rows, err := collectRows(it)
	if err != nil {
		t.Fatalf("collectRows: %v", err)
	}
	return rows
}

func TestEmptyIter(t *testing.T) {
	rows := drainAll(t, EmptyIter)
	if len(rows) != 0 {
		t.Errorf("EmptyIter yielded %d rows, want 0", len(rows))
	}
}

func TestFromSlice(t *testing.T) {
	want := []Row{{"a": 1}, {"a": 2}}
	s := FromSlice(want)
	defer s.Close()

	got := drainAll(t, s)
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i]["a"] != want[i]["a"] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFromSliceExhaustionIsStable(t *testing.T) {
	s := FromSlice(nil)
	defer s.Close()

	for i := 0; i < 3; i++ {
		_, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if ok {
			t.Fatalf("call %d: ok = true on empty stream", i)
		}
	}
}

func TestDrain(t *testing.T) {
	it := sliceRowIter([]Row{{"a": 1}, {"a": 2}})
	if err := drain(it); err != nil {
		t.Fatalf("drain: %v", err)
	}
	row, ok, err := it.Next()
	if err != nil || ok {
		t.Fatalf("Next after drain = (%v, %v, %v), want (nil, false, nil)", row, ok, err)
	}
}
