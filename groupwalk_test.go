// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "testing"

func TestGroupWalkerBasicGrouping(t *testing.T) {
	src := sliceRowIter([]Row{
		{"k": 1, "v": "a"},
		{"k": 1, "v": "b"},
		{"k": 2, "v": "c"},
	})
	gw := newGroupWalker(src, KeyTuple{"k"})

	var groups [][]Row
	for {
		_, group, ok, err := gw.NextGroup()
		if err != nil {
			t.Fatalf("NextGroup: %v", err)
		}
		if !ok {
			break
		}
		rows := drainAll(t, group)
		groups = append(groups, rows)
	}

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 2 || len(groups[1]) != 1 {
		t.Fatalf("group sizes = %d, %d; want 2, 1", len(groups[0]), len(groups[1]))
	}
}

// A reducer/joiner is allowed to stop reading a group early (spec.md
// §4.4's "Edge policy"); NextGroup must still skip past whatever was
// left unread before yielding the next group.
func TestGroupWalkerEdgePolicyUnreadRowsAreSkipped(t *testing.T) {
	src := sliceRowIter([]Row{
		{"k": 1, "v": "a"},
		{"k": 1, "v": "b"},
		{"k": 1, "v": "c"},
		{"k": 2, "v": "d"},
	})
	gw := newGroupWalker(src, KeyTuple{"k"})

	key, group, ok, err := gw.NextGroup()
	if err != nil || !ok {
		t.Fatalf("first NextGroup: ok=%v err=%v", ok, err)
	}
	if key[0] != 1 {
		t.Fatalf("first key = %v, want 1", key)
	}
	// Read only the first row of the group, abandoning the rest.
	row, ok, err := group.Next()
	if err != nil || !ok || row["v"] != "a" {
		t.Fatalf("first row = %v, ok=%v err=%v", row, ok, err)
	}

	key, group, ok, err = gw.NextGroup()
	if err != nil || !ok {
		t.Fatalf("second NextGroup: ok=%v err=%v", ok, err)
	}
	if key[0] != 2 {
		t.Fatalf("second key = %v, want 2", key)
	}
	rows := drainAll(t, group)
	if len(rows) != 1 || rows[0]["v"] != "d" {
		t.Fatalf("second group = %v", rows)
	}

	_, _, ok, err = gw.NextGroup()
	if err != nil || ok {
		t.Fatalf("third NextGroup: ok=%v err=%v, want false", ok, err)
	}
}

func TestGroupWalkerEmptySource(t *testing.T) {
	gw := newGroupWalker(EmptyIter, KeyTuple{"k"})
	_, _, ok, err := gw.NextGroup()
	if err != nil || ok {
		t.Fatalf("NextGroup on empty source: ok=%v err=%v, want false", ok, err)
	}
}
