// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// groupWalker partitions a RowIter assumed sorted by keys into runs of
// consecutive equal-key rows, the way Python's itertools.groupby does
// for the teacher's original reduce.py/join.py — it groups by key
// equality of adjacent rows, not by a global sort it performs itself.
// Reduce and Join both walk one or two groupWalkers in lock-step.
//
// A reducer or joiner is allowed to stop reading a group's RowIter
// before it is exhausted (spec.md §4.4, "Edge policy"); NextGroup
// accounts for this by draining whatever the caller left unread before
// it advances to the next key, using a single row of lookahead to
// detect the key boundary.
type groupWalker struct {
	src  RowIter
	keys KeyTuple

	peeked    Optional[Row]
	peekedKey []any
	done      bool
	err       error

	lastKey []any
}

func newGroupWalker(src RowIter, keys KeyTuple) *groupWalker {
	return &groupWalker{src: src, keys: keys}
}

// fill ensures a lookahead row is buffered, unless src is exhausted or
// has already failed.
func (w *groupWalker) fill() error {
	if w.peeked.IsPresent() || w.done || w.err != nil {
		return w.err
	}
	row, ok, err := w.src.Next()
	if err != nil {
		w.err = err
		return err
	}
	if !ok {
		w.done = true
		return nil
	}
	w.peeked = OptionalOf(row)
	w.peekedKey = KeyValues(row, w.keys)
	return nil
}

// drainToNextKey consumes rows still sharing curKey that the previous
// group's RowIter left unread.
func (w *groupWalker) drainToNextKey(curKey []any) error {
	for {
		if err := w.fill(); err != nil {
			return err
		}
		if w.done {
			return nil
		}
		if CompareKeys(w.peekedKey, curKey) != 0 {
			return nil
		}
		w.peeked = OptionalEmpty[Row]()
	}
}

// NextGroup returns the key and a RowIter over the next run of
// equal-key rows. ok is false once src is exhausted.
func (w *groupWalker) NextGroup() (key []any, group RowIter, ok bool, err error) {
	if w.lastKey != nil {
		if err := w.drainToNextKey(w.lastKey); err != nil {
			return nil, nil, false, err
		}
	}
	if err := w.fill(); err != nil {
		return nil, nil, false, err
	}
	if w.done {
		return nil, nil, false, nil
	}

	key = w.peekedKey
	w.lastKey = key

	group = RowIterFunc(func() (Row, bool, error) {
		if err := w.fill(); err != nil {
			return nil, false, err
		}
		if w.done {
			return nil, false, nil
		}
		if CompareKeys(w.peekedKey, key) != 0 {
			return nil, false, nil
		}
		row := w.peeked.Get()
		w.peeked = OptionalEmpty[Row]()
		return row, true, nil
	})
	return key, group, true, nil
}
