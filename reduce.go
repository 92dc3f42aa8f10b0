// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "sort"

// Reducer processes one group of rows — all rows sharing a key value
// under a Reduce operation's key tuple — and emits zero or more result
// rows. Reduce calls Reduce once per group, in key order; within a
// group, rows arrive in the order the upstream stream produced them.
//
// A Reducer may return before reading every row of group (spec.md
// §4.4's "Edge policy"); reduceStream advances past the remainder on
// the caller's behalf.
type Reducer interface {
	Reduce(keys KeyTuple, group RowIter, emit func(Row)) error
}

// ReducerFunc adapts a plain function to Reducer.
type ReducerFunc func(keys KeyTuple, group RowIter, emit func(Row)) error

func (f ReducerFunc) Reduce(keys KeyTuple, group RowIter, emit func(Row)) error {
	return f(keys, group, emit)
}

// reduceStream groups src by keys (assumed already sorted on keys) and
// feeds each group to reducer, in the teacher's mapStream style:
// buffer one group's output, replay it, then pull the next group.
type reduceStream struct {
	src     Stream
	gw      *groupWalker
	keys    KeyTuple
	reducer Reducer

	pending []Row
	i       int
	done    bool
}

func newReduceStream(src Stream, keys KeyTuple, reducer Reducer) Stream {
	return &reduceStream{src: src, gw: newGroupWalker(src, keys), keys: keys, reducer: reducer}
}

func (r *reduceStream) Next() (Row, bool, error) {
	for {
		if r.i < len(r.pending) {
			row := r.pending[r.i]
			r.i++
			return row, true, nil
		}
		if r.done {
			return nil, false, nil
		}

		_, group, ok, err := r.gw.NextGroup()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			r.done = true
			continue
		}

		r.pending = r.pending[:0]
		r.i = 0
		emit := func(row Row) { r.pending = append(r.pending, row) }
		if err := r.reducer.Reduce(r.keys, group, emit); err != nil {
			return nil, false, err
		}
	}
}

func (r *reduceStream) Close() error { return r.src.Close() }

// FirstReducer yields only the first row of each group.
type FirstReducer struct{}

func (FirstReducer) Reduce(_ KeyTuple, group RowIter, emit func(Row)) error {
	row, ok, err := group.Next()
	if err != nil {
		return err
	}
	if ok {
		emit(row)
	}
	return nil
}

// CountReducer counts the rows of each group, writing the count to
// Column alongside the group's key columns.
type CountReducer struct {
	Column string
}

func (c CountReducer) Reduce(keys KeyTuple, group RowIter, emit func(Row)) error {
	var first Row
	var count int64
	for {
		row, ok, err := group.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if first == nil {
			first = row
		}
		count++
	}
	if first == nil {
		return nil
	}
	result := Row{c.Column: count}
	for _, k := range keys {
		result[k] = first[k]
	}
	emit(result)
	return nil
}

// SumReducer sums Column across each group, writing the total alongside
// the group's key columns. The sum stays an int64 if every contributing
// value is integral, and is promoted to float64 otherwise — mirroring
// the source language's dynamically typed `+=`.
type SumReducer struct {
	Column string
}

func (s SumReducer) Reduce(keys KeyTuple, group RowIter, emit func(Row)) error {
	var first Row
	var intSum int64
	var floatSum float64
	isFloat := false

	for {
		row, ok, err := group.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if first == nil {
			first = row
		}
		switch v := row[s.Column].(type) {
		case int:
			if isFloat {
				floatSum += float64(v)
			} else {
				intSum += int64(v)
			}
		case int64:
			if isFloat {
				floatSum += float64(v)
			} else {
				intSum += v
			}
		case float64:
			if !isFloat {
				floatSum = float64(intSum)
				isFloat = true
			}
			floatSum += v
		}
	}
	if first == nil {
		return nil
	}

	result := Row{}
	for _, k := range keys {
		result[k] = first[k]
	}
	if isFloat {
		result[s.Column] = floatSum
	} else {
		result[s.Column] = intSum
	}
	emit(result)
	return nil
}

// TermFrequencyReducer computes, for each distinct value of WordsColumn
// within a group, the fraction of the group's rows carrying that value.
type TermFrequencyReducer struct {
	WordsColumn  string
	ResultColumn string // defaults to "tf" when empty
}

func (t TermFrequencyReducer) Reduce(keys KeyTuple, group RowIter, emit func(Row)) error {
	resultColumn := t.ResultColumn
	if resultColumn == "" {
		resultColumn = "tf"
	}

	counts := make(map[any]int64)
	var order []any
	var first Row
	var total int64

	for {
		row, ok, err := group.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if first == nil {
			first = row
		}
		total++
		word := row[t.WordsColumn]
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}
	if first == nil {
		return nil
	}

	for _, word := range order {
		result := Row{}
		for _, k := range keys {
			result[k] = first[k]
		}
		result[t.WordsColumn] = word
		result[resultColumn] = float64(counts[word]) / float64(total)
		emit(result)
	}
	return nil
}

// TopNReducer yields the N rows of each group with the largest values
// of Column, in descending order, ties broken by first-seen order.
type TopNReducer struct {
	Column string
	N      int
}

func (t TopNReducer) Reduce(_ KeyTuple, group RowIter, emit func(Row)) error {
	rows, err := collectRows(group)
	if err != nil {
		return err
	}

	var greaterBy Less[Row] = func(a, b Row) bool {
		return compareValue(a[t.Column], b[t.Column]) > 0
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return greaterBy(rows[i], rows[j])
	})

	n := t.N
	if n > len(rows) {
		n = len(rows)
	}
	for _, row := range rows[:n] {
		emit(row)
	}
	return nil
}
