// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// RowIter is a pull-based, single-pass, finite source of rows. Next
// returns the next row, or ok=false once the sequence is exhausted (err
// is nil in that case); a non-nil err is fatal and terminates the
// sequence. Callers must stop calling Next after it returns ok=false or
// a non-nil err.
//
// RowIter is the shape handed to Reducer and Joiner for the rows of one
// group: it owns no resources of its own and needs no Close.
type RowIter interface {
	Next() (Row, bool, error)
}

// Stream is a RowIter that owns resources (spill files, open file
// handles) which must be released once the caller is done with it,
// whether by exhaustion or by early abandonment. It is the type Graph's
// Run returns.
//
// Stream generalizes the teacher's channel-handshake genericStream to a
// synchronous pull, since spec.md's concurrency model (§5) is explicitly
// single-threaded: there is no parallel consumer to hand rows to, so the
// nextReq/nextData rendezvous collapses to a plain method call.
type Stream interface {
	RowIter
	Close() error
}

// RowIterFunc adapts a plain function to RowIter.
type RowIterFunc func() (Row, bool, error)

func (f RowIterFunc) Next() (Row, bool, error) { return f() }

type emptyIter struct{}

func (emptyIter) Next() (Row, bool, error) { return nil, false, nil }

// EmptyIter is a RowIter that yields no rows.
var EmptyIter RowIter = emptyIter{}

type errIter struct{ err error }

func (e errIter) Next() (Row, bool, error) { return nil, false, e.err }

// singletonIter yields exactly one row.
type singletonIter struct {
	row  Row
	done bool
}

func singleton(row Row) RowIter { return &singletonIter{row: row} }

func (s *singletonIter) Next() (Row, bool, error) {
	if s.done {
		return nil, false, nil
	}
	s.done = true
	return s.row, true, nil
}

// sliceIter yields the rows of a slice, in order.
type sliceIter struct {
	rows []Row
	i    int
}

func sliceRowIter(rows []Row) RowIter { return &sliceIter{rows: rows} }

func (s *sliceIter) Next() (Row, bool, error) {
	if s.i >= len(s.rows) {
		return nil, false, nil
	}
	row := s.rows[s.i]
	s.i++
	return row, true, nil
}

// nopCloser adapts a RowIter to a Stream that releases no resources.
type nopCloser struct{ RowIter }

func (nopCloser) Close() error { return nil }

// StreamOf wraps a RowIter that owns no resources into a Stream.
func StreamOf(it RowIter) Stream { return nopCloser{it} }

// FromSlice returns a Stream over an in-memory slice of rows; useful for
// tests and for NamedSources producers backed by already-materialized
// data.
func FromSlice(rows []Row) Stream { return nopCloser{sliceRowIter(rows)} }

// drain pulls every remaining row from it, discarding them. Used by
// operators that must advance past rows a downstream consumer chose not
// to read (spec.md §4.4 "Edge policy").
func drain(it RowIter) error {
	for {
		_, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// collectRows pulls every row from it into a slice, in order.
func collectRows(it RowIter) ([]Row, error) {
	var rows []Row
	for {
		row, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}
