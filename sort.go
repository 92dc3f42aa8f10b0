// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"bufio"
	"container/heap"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// defaultSortBufferRows bounds the in-memory buffer external sort fills
// before it stably sorts it and either keeps it (if it turns out to be
// the only run) or spills it to a temporary file (spec.md §4.5, step 1).
const defaultSortBufferRows = 100000

// sortRun is one sorted, already-stable run produced by the buffering
// phase: either file-backed (spilled) or, for the common case where the
// whole input fit in one buffer, held in memory with no file to clean
// up.
type sortRun struct {
	it    RowIter
	close func() error
}

// sortStream is the k-way merge over the runs external sort produced.
// Construction does the necessarily-eager buffering and spilling pass;
// Next does the lazy merge (spec.md §4.5).
type sortStream struct {
	src    Stream
	keys   KeyTuple
	tmpDir string
	runs   []sortRun
	h      mergeHeap
	closed bool
}

// newSortStream drains src into memory-bounded, stably-sorted runs and
// returns a Stream that lazily k-way-merges them. If the entire input
// fits in one buffer, no temporary file is ever created.
// maxRowsPerRun <= 0 uses defaultSortBufferRows.
func newSortStream(src Stream, keys KeyTuple, maxRowsPerRun int) (Stream, error) {
	if maxRowsPerRun <= 0 {
		maxRowsPerRun = defaultSortBufferRows
	}

	s := &sortStream{src: src, keys: keys}
	buf := make([]Row, 0, maxRowsPerRun)
	runID := 0

	spill := func() error {
		if s.tmpDir == "" {
			dir, err := os.MkdirTemp("", "compgraph-sort-")
			if err != nil {
				return err
			}
			s.tmpDir = dir
			Logger.Debug().Str("dir", dir).Msg("external sort: opened spill directory")
		}
		path := filepath.Join(s.tmpDir, fmt.Sprintf("run-%04d-%s.jsonl", runID, uuid.NewString()))
		if err := writeSortRun(path, buf); err != nil {
			return err
		}
		reader, err := openSortRun(path)
		if err != nil {
			return err
		}
		s.runs = append(s.runs, sortRun{it: reader, close: reader.Close})
		Logger.Debug().Int("run", runID).Int("rows", len(buf)).Str("path", path).Msg("external sort: spilled run")
		return nil
	}

	keepInMemory := func() {
		rows := make([]Row, len(buf))
		copy(rows, buf)
		s.runs = append(s.runs, sortRun{it: sliceRowIter(rows)})
	}

	// flush sorts the current buffer and turns it into a run. A full
	// buffer (hitFull) always spills, since more input is expected
	// right behind it; a buffer flushed at end of input is kept
	// in-memory only if no run has been spilled yet — otherwise it
	// spills too, so every run in the merge is handled uniformly.
	flush := func(hitFull bool) error {
		if len(buf) == 0 {
			return nil
		}
		sortRowsStable(buf, keys)

		if hitFull || len(s.runs) > 0 {
			if err := spill(); err != nil {
				return err
			}
		} else {
			keepInMemory()
		}
		runID++
		buf = buf[:0]
		return nil
	}

	for {
		row, ok, err := src.Next()
		if err != nil {
			s.cleanupRuns()
			return nil, err
		}
		if !ok {
			break
		}
		buf = append(buf, row.Clone())
		if len(buf) >= maxRowsPerRun {
			if err := flush(true); err != nil {
				s.cleanupRuns()
				return nil, err
			}
		}
	}
	if err := flush(false); err != nil {
		s.cleanupRuns()
		return nil, err
	}

	s.h = make(mergeHeap, 0, len(s.runs))
	for i := range s.runs {
		row, ok, err := s.runs[i].it.Next()
		if err != nil {
			s.cleanupRuns()
			return nil, err
		}
		if !ok {
			continue
		}
		s.h = append(s.h, &mergeCursor{runIdx: i, row: row, key: KeyValues(row, keys)})
	}
	heap.Init(&s.h)

	return s, nil
}

func sortRowsStable(rows []Row, keys KeyTuple) {
	sort.SliceStable(rows, func(i, j int) bool {
		return CompareKeys(KeyValues(rows[i], keys), KeyValues(rows[j], keys)) < 0
	})
}

func writeSortRun(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

type sortRunReader struct {
	f       *os.File
	scanner *bufio.Scanner
}

func openSortRun(path string) (*sortRunReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &sortRunReader{f: f, scanner: scanner}, nil
}

func (r *sortRunReader) Next() (Row, bool, error) {
	if !r.scanner.Scan() {
		return nil, false, r.scanner.Err()
	}
	var row Row
	if err := json.Unmarshal(r.scanner.Bytes(), &row); err != nil {
		return nil, false, err
	}
	return row, true, nil
}

func (r *sortRunReader) Close() error { return r.f.Close() }

// mergeCursor is one run's current head row in the k-way merge heap.
type mergeCursor struct {
	runIdx int
	row    Row
	key    []any
}

// mergeHeap orders cursors by key, breaking ties by run index: runs
// were filled from the input stream in order, so a lower run index
// means the row came from earlier in the original stream — the
// tiebreaker spec.md §4.5 step 3 requires for stability across runs.
type mergeHeap []*mergeCursor

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)         { *h = append(*h, x.(*mergeCursor)) }
func (h mergeHeap) Less(i, j int) bool {
	if c := CompareKeys(h[i].key, h[j].key); c != 0 {
		return c < 0
	}
	return h[i].runIdx < h[j].runIdx
}
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (s *sortStream) Next() (Row, bool, error) {
	if s.h.Len() == 0 {
		return nil, false, nil
	}

	top := heap.Pop(&s.h).(*mergeCursor)
	row := top.row

	next, ok, err := s.runs[top.runIdx].it.Next()
	if err != nil {
		return nil, false, err
	}
	if ok {
		top.row = next
		top.key = KeyValues(next, s.keys)
		heap.Push(&s.h, top)
	}
	return row, true, nil
}

func (s *sortStream) cleanupRuns() {
	for _, r := range s.runs {
		if r.close != nil {
			r.close()
		}
	}
	if s.tmpDir != "" {
		os.RemoveAll(s.tmpDir)
		Logger.Debug().Str("dir", s.tmpDir).Msg("external sort: released spill directory")
	}
}

func (s *sortStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cleanupRuns()
	return s.src.Close()
}
