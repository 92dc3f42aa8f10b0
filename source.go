// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"bufio"
	"os"
)

// fileStream reads one line at a time from an underlying file and hands
// each line to parser to decode into a Row. It is the synchronous-pull
// counterpart of the teacher's FileLines: one os.File, one
// bufio.Scanner, no goroutine handshake, closed exactly once. The
// engine itself stays wire-format-agnostic (spec.md §1, §6): parser is
// supplied by the caller, not fixed here.
type fileStream struct {
	f       *os.File
	scanner *bufio.Scanner
	parser  func(string) (Row, error)
	closed  bool
}

// newFileStream opens path and returns a Stream over its lines, each
// decoded into a Row by parser (spec.md §4.2's from_file(path, parser)).
func newFileStream(path string, parser func(string) (Row, error)) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanLines)

	return &fileStream{f: f, scanner: scanner, parser: parser}, nil
}

func (s *fileStream) Next() (Row, bool, error) {
	if s.closed {
		return nil, false, nil
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	row, err := s.parser(s.scanner.Text())
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

func (s *fileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
