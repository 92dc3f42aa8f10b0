// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "github.com/wyborski/compgraph/function"

// Mapper transforms one input row into zero or more output rows. A
// Mapper may mutate the row it is given in place: mapStream hands it a
// defensive clone (spec.md §4.3).
type Mapper interface {
	Map(row Row, emit function.RowConsumer[Row]) error
}

// MapperFunc adapts a plain function to Mapper.
type MapperFunc func(row Row, emit function.RowConsumer[Row]) error

func (f MapperFunc) Map(row Row, emit function.RowConsumer[Row]) error { return f(row, emit) }

// RowFunctionMapper adapts a one-row-in, one-row-out function.Function to
// a Mapper that emits exactly that row.
func RowFunctionMapper(f function.RowFunction[Row, Row]) Mapper {
	return MapperFunc(func(row Row, emit function.RowConsumer[Row]) error {
		emit(f(row))
		return nil
	})
}

// mapStream applies mapper to every row of src, flattening each input
// row into whatever the mapper chooses to emit (zero, one, or several
// rows), and closes src on Close without forcing the caller to exhaust
// it first.
type mapStream struct {
	src    Stream
	mapper Mapper

	pending []Row
	i       int
	done    bool
}

func newMapStream(src Stream, mapper Mapper) Stream {
	return &mapStream{src: src, mapper: mapper}
}

func (m *mapStream) Next() (Row, bool, error) {
	for {
		if m.i < len(m.pending) {
			row := m.pending[m.i]
			m.i++
			return row, true, nil
		}
		if m.done {
			return nil, false, nil
		}

		row, ok, err := m.src.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			m.done = true
			continue
		}

		m.pending = m.pending[:0]
		m.i = 0
		emit := func(r Row) { m.pending = append(m.pending, r) }
		if err := m.mapper.Map(row.Clone(), emit); err != nil {
			return nil, false, err
		}
	}
}

func (m *mapStream) Close() error { return m.src.Close() }
