// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "testing"

func runJoin(t *testing.T, left, right []Row, keys KeyTuple, joiner Joiner) []Row {
	t.Helper()
	s := newJoinStream(FromSlice(left), FromSlice(right), keys, joiner)
	defer s.Close()
	return drainAll(t, s)
}

func TestMergeRowRenamesOnlyCollidingColumns(t *testing.T) {
	keys := keySetOf(KeyTuple{"id"})
	left := Row{"id": 1, "x": 10}
	right := Row{"id": 1, "x": 20, "y": 30}

	merged := mergeRow(keys, left, right, defaultSuffixLeft, defaultSuffixRight)

	if merged["id"] != 1 {
		t.Errorf(`merged["id"] = %v, want 1`, merged["id"])
	}
	if merged["x_1"] != 10 {
		t.Errorf(`merged["x_1"] = %v, want 10 (left's colliding value)`, merged["x_1"])
	}
	if merged["x_2"] != 20 {
		t.Errorf(`merged["x_2"] = %v, want 20 (right's colliding value)`, merged["x_2"])
	}
	if merged["y"] != 30 {
		t.Errorf(`merged["y"] = %v, want 30 (non-colliding, untouched)`, merged["y"])
	}
	if _, has := merged["x"]; has {
		t.Errorf(`merged still has unsuffixed "x": %v`, merged)
	}
}

func TestMergeRowNoCollisionNoRename(t *testing.T) {
	keys := keySetOf(KeyTuple{"id"})
	left := Row{"id": 1, "a": 1}
	right := Row{"id": 1, "b": 10}

	merged := mergeRow(keys, left, right, defaultSuffixLeft, defaultSuffixRight)
	if merged["a"] != 1 || merged["b"] != 10 {
		t.Errorf("got %v, want a=1, b=10 with no suffixes", merged)
	}
}

func TestInnerJoinerCrossProductAndUnmatchedDropped(t *testing.T) {
	left := []Row{
		{"id": 1, "a": 1},
		{"id": 1, "a": 2},
		{"id": 2, "a": 3}, // unmatched on the right, dropped by inner join
	}
	right := []Row{
		{"id": 1, "b": 10},
		{"id": 1, "b": 20},
	}
	out := runJoin(t, left, right, KeyTuple{"id"}, InnerJoiner{})
	if len(out) != 4 {
		t.Fatalf("got %d rows, want 4 (2x2 cross product)", len(out))
	}
	for _, row := range out {
		if row["id"] != 1 {
			t.Errorf("unmatched left group leaked into inner join output: %v", row)
		}
	}
}

func TestLeftJoinerPassesThroughUnmatchedLeft(t *testing.T) {
	left := []Row{
		{"id": 1, "a": 1},
		{"id": 2, "a": 2},
	}
	right := []Row{
		{"id": 1, "b": 10},
	}
	out := runJoin(t, left, right, KeyTuple{"id"}, LeftJoiner{})
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	foundUnmatched := false
	for _, row := range out {
		if row["id"] == 2 {
			foundUnmatched = true
			if row["a"] != 2 {
				t.Errorf("unmatched left row altered: %v", row)
			}
		}
	}
	if !foundUnmatched {
		t.Errorf("expected unmatched left group to pass through, got %v", out)
	}
}

func TestRightJoinerPassesThroughUnmatchedRight(t *testing.T) {
	left := []Row{
		{"id": 1, "a": 1},
	}
	right := []Row{
		{"id": 1, "b": 10},
		{"id": 2, "b": 20},
	}
	out := runJoin(t, left, right, KeyTuple{"id"}, RightJoiner{})
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	foundUnmatched := false
	for _, row := range out {
		if row["id"] == 2 {
			foundUnmatched = true
			if row["b"] != 20 {
				t.Errorf("unmatched right row altered: %v", row)
			}
		}
	}
	if !foundUnmatched {
		t.Errorf("expected unmatched right group to pass through, got %v", out)
	}
}

func TestOuterJoinerPassesThroughBothSides(t *testing.T) {
	left := []Row{
		{"id": 1, "a": 1},
		{"id": 2, "a": 2},
	}
	right := []Row{
		{"id": 1, "b": 10},
		{"id": 3, "b": 30},
	}
	out := runJoin(t, left, right, KeyTuple{"id"}, OuterJoiner{})
	if len(out) != 3 {
		t.Fatalf("got %d rows, want 3 (1 matched + 2 unmatched)", len(out))
	}
}

func TestJoinEmptySides(t *testing.T) {
	out := runJoin(t, nil, nil, KeyTuple{"id"}, InnerJoiner{})
	if len(out) != 0 {
		t.Fatalf("got %v, want empty", out)
	}
}
