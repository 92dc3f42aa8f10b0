// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// Joiner merges one key-matched pair of groups from a sorted-merge
// Join. left and right are both streaming group iterators; the built-in
// joiners read right fully into memory with collectRows and stream left.
// joinStream decides per call whether either side is the empty group
// (no match on that side for this key).
type Joiner interface {
	Join(keys KeyTuple, left, right RowIter, emit func(Row)) error
}

const (
	defaultSuffixLeft  = "_1"
	defaultSuffixRight = "_2"
)

func suffixesOrDefault(left, right string) (string, string) {
	if left == "" {
		left = defaultSuffixLeft
	}
	if right == "" {
		right = defaultSuffixRight
	}
	return left, right
}

func keySetOf(keys KeyTuple) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// mergeRow implements the join merging rule (spec.md §4.6): start from
// a copy of the right row; rename any non-key column appearing in both
// rows on both sides using the suffixes; then overlay the (possibly
// renamed) left row's columns onto the copy.
func mergeRow(keys map[string]bool, left, right Row, suffixLeft, suffixRight string) Row {
	merged := right.Clone()
	leftCopy := left.Clone()

	for col := range leftCopy {
		if keys[col] {
			continue
		}
		if _, collides := merged[col]; !collides {
			continue
		}
		leftCopy[col+suffixLeft] = leftCopy[col]
		delete(leftCopy, col)
		merged[col+suffixRight] = merged[col]
		delete(merged, col)
	}

	for k, v := range leftCopy {
		merged[k] = v
	}
	return merged
}

// passThrough re-emits every row of it unchanged.
func passThrough(it RowIter, emit func(Row)) error {
	for {
		row, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		emit(row)
	}
}

func crossJoin(keys map[string]bool, left RowIter, rightRows []Row, suffixLeft, suffixRight string, emit func(Row)) (empty bool, err error) {
	empty = true
	for {
		a, ok, err := left.Next()
		if err != nil {
			return empty, err
		}
		if !ok {
			return empty, nil
		}
		empty = false
		for _, b := range rightRows {
			emit(mergeRow(keys, a, b, suffixLeft, suffixRight))
		}
	}
}

// InnerJoiner yields the cartesian product of a matched group pair; an
// unmatched group on either side contributes nothing.
type InnerJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j InnerJoiner) Join(keys KeyTuple, left, right RowIter, emit func(Row)) error {
	rightRows, err := collectRows(right)
	if err != nil {
		return err
	}
	if len(rightRows) == 0 {
		return nil
	}
	suffixLeft, suffixRight := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	_, err = crossJoin(keySetOf(keys), left, rightRows, suffixLeft, suffixRight, emit)
	return err
}

// OuterJoiner yields the cartesian product when both sides are
// present; an unmatched left group passes through unchanged, and so
// does an unmatched right group (no suffix renaming applies to either
// pass-through case — see SPEC_FULL.md §F.2).
type OuterJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j OuterJoiner) Join(keys KeyTuple, left, right RowIter, emit func(Row)) error {
	rightRows, err := collectRows(right)
	if err != nil {
		return err
	}
	if len(rightRows) == 0 {
		return passThrough(left, emit)
	}
	suffixLeft, suffixRight := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	leftEmpty, err := crossJoin(keySetOf(keys), left, rightRows, suffixLeft, suffixRight, emit)
	if err != nil {
		return err
	}
	if leftEmpty {
		for _, b := range rightRows {
			emit(b)
		}
	}
	return nil
}

// LeftJoiner yields the cartesian product when both sides are present;
// an unmatched left group passes through unchanged; an unmatched right
// group contributes nothing.
type LeftJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j LeftJoiner) Join(keys KeyTuple, left, right RowIter, emit func(Row)) error {
	rightRows, err := collectRows(right)
	if err != nil {
		return err
	}
	if len(rightRows) == 0 {
		return passThrough(left, emit)
	}
	suffixLeft, suffixRight := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	_, err = crossJoin(keySetOf(keys), left, rightRows, suffixLeft, suffixRight, emit)
	return err
}

// RightJoiner yields the cartesian product when both sides are
// present; an unmatched right group passes through unchanged; an
// unmatched left group contributes nothing.
type RightJoiner struct {
	SuffixLeft, SuffixRight string
}

func (j RightJoiner) Join(keys KeyTuple, left, right RowIter, emit func(Row)) error {
	rightRows, err := collectRows(right)
	if err != nil {
		return err
	}
	suffixLeft, suffixRight := suffixesOrDefault(j.SuffixLeft, j.SuffixRight)
	leftEmpty, err := crossJoin(keySetOf(keys), left, rightRows, suffixLeft, suffixRight, emit)
	if err != nil {
		return err
	}
	if leftEmpty {
		for _, b := range rightRows {
			emit(b)
		}
	}
	return nil
}

// joinStream co-walks two key-sorted streams' groupWalkers, delegating
// each key-matched (or one-sided) pair of groups to a Joiner, mirroring
// the teacher's buffer-then-replay mapStream style at the output.
type joinStream struct {
	leftSrc, rightSrc Stream
	leftGW, rightGW   *groupWalker
	keys              KeyTuple
	joiner            Joiner

	started               bool
	leftKey, rightKey     []any
	leftGroup, rightGroup RowIter
	leftOK, rightOK       bool

	pending []Row
	i       int
	done    bool
}

func newJoinStream(left, right Stream, keys KeyTuple, joiner Joiner) Stream {
	return &joinStream{
		leftSrc: left, rightSrc: right,
		leftGW: newGroupWalker(left, keys), rightGW: newGroupWalker(right, keys),
		keys: keys, joiner: joiner,
	}
}

func (j *joinStream) emit(row Row) { j.pending = append(j.pending, row) }

func (j *joinStream) ensureStarted() error {
	if j.started {
		return nil
	}
	j.started = true

	var err error
	j.leftKey, j.leftGroup, j.leftOK, err = j.leftGW.NextGroup()
	if err != nil {
		return err
	}
	j.rightKey, j.rightGroup, j.rightOK, err = j.rightGW.NextGroup()
	return err
}

// advance delegates the current group pair (or one-sided group) to the
// joiner and moves the relevant side(s) to their next group. It reports
// more=false once both sides are exhausted.
func (j *joinStream) advance() (more bool, err error) {
	switch {
	case j.leftOK && j.rightOK:
		switch c := CompareKeys(j.leftKey, j.rightKey); {
		case c == 0:
			if err := j.joiner.Join(j.keys, j.leftGroup, j.rightGroup, j.emit); err != nil {
				return false, err
			}
			if j.leftKey, j.leftGroup, j.leftOK, err = j.leftGW.NextGroup(); err != nil {
				return false, err
			}
			if j.rightKey, j.rightGroup, j.rightOK, err = j.rightGW.NextGroup(); err != nil {
				return false, err
			}
		case c < 0:
			if err := j.joiner.Join(j.keys, j.leftGroup, EmptyIter, j.emit); err != nil {
				return false, err
			}
			if j.leftKey, j.leftGroup, j.leftOK, err = j.leftGW.NextGroup(); err != nil {
				return false, err
			}
		default:
			if err := j.joiner.Join(j.keys, EmptyIter, j.rightGroup, j.emit); err != nil {
				return false, err
			}
			if j.rightKey, j.rightGroup, j.rightOK, err = j.rightGW.NextGroup(); err != nil {
				return false, err
			}
		}
		return true, nil
	case j.leftOK:
		if err := j.joiner.Join(j.keys, j.leftGroup, EmptyIter, j.emit); err != nil {
			return false, err
		}
		j.leftKey, j.leftGroup, j.leftOK, err = j.leftGW.NextGroup()
		return true, err
	case j.rightOK:
		if err := j.joiner.Join(j.keys, EmptyIter, j.rightGroup, j.emit); err != nil {
			return false, err
		}
		j.rightKey, j.rightGroup, j.rightOK, err = j.rightGW.NextGroup()
		return true, err
	default:
		return false, nil
	}
}

func (j *joinStream) Next() (Row, bool, error) {
	if err := j.ensureStarted(); err != nil {
		return nil, false, err
	}
	for {
		if j.i < len(j.pending) {
			row := j.pending[j.i]
			j.i++
			return row, true, nil
		}
		if j.done {
			return nil, false, nil
		}

		j.pending = j.pending[:0]
		j.i = 0
		more, err := j.advance()
		if err != nil {
			return nil, false, err
		}
		if !more {
			j.done = true
		}
	}
}

func (j *joinStream) Close() error {
	errLeft := j.leftSrc.Close()
	errRight := j.rightSrc.Close()
	if errLeft != nil {
		return errLeft
	}
	return errRight
}
