// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// SourceFunc produces a fresh row stream each time it is called — the
// shape a NamedSources binding must take for a From-iterator node
// (spec.md §4.2).
type SourceFunc func() (Stream, error)

// NamedSources binds source names, as used by FromIter, to producers.
// The same Graph may be Run more than once against different
// NamedSources bindings; each Run call asks every SourceFunc it visits
// for a fresh Stream.
type NamedSources map[string]SourceFunc

// Graph is an immutable computational-graph plan node (a Source, Map,
// Reduce, Sort, or Join): its run closure captures zero, one, or two
// upstream Graph references plus the operation to run against them.
// Constructing a Graph performs no I/O and runs no user code — only
// Run does, mirroring the teacher's graph_from_iter/map/reduce/sort/
// join/run shape from graph.py.
type Graph struct {
	run func(sources NamedSources) (Stream, error)
}

// FromIter returns a Graph whose Run looks up name in the NamedSources
// passed to Run and re-emits its rows unchanged.
func FromIter(name string) *Graph {
	return &Graph{
		run: func(sources NamedSources) (Stream, error) {
			producer, ok := sources[name]
			if !ok {
				return nil, ErrUnboundSource
			}
			return producer()
		},
	}
}

// FromFile returns a Graph whose Run reads path one line at a time,
// decoding each line into a Row with parser (spec.md §4.2). The engine
// itself consumes only this row-producer abstraction; the wire format
// is entirely the caller's choice — see rowio.ParseLine for the
// newline-delimited-JSON parser compgraph's cmd/ binaries pass here.
func FromFile(path string, parser func(string) (Row, error)) *Graph {
	return &Graph{
		run: func(_ NamedSources) (Stream, error) {
			return newFileStream(path, parser)
		},
	}
}

// Map returns a new Graph that applies mapper to every row this Graph
// produces.
func (g *Graph) Map(mapper Mapper) *Graph {
	return &Graph{
		run: func(sources NamedSources) (Stream, error) {
			src, err := g.run(sources)
			if err != nil {
				return nil, err
			}
			return newMapStream(src, mapper), nil
		},
	}
}

// Reduce returns a new Graph that groups this Graph's rows by keys
// (which must already be contiguous-grouped — see Sort) and invokes
// reducer once per group.
func (g *Graph) Reduce(reducer Reducer, keys KeyTuple) *Graph {
	return &Graph{
		run: func(sources NamedSources) (Stream, error) {
			src, err := g.run(sources)
			if err != nil {
				return nil, err
			}
			return newReduceStream(src, keys, reducer), nil
		},
	}
}

// Sort returns a new Graph that stably totally-sorts this Graph's rows
// by keys, spilling to temporary files once the in-memory buffer
// reaches maxRowsPerRun rows (0 or omitted uses a built-in default).
func (g *Graph) Sort(keys KeyTuple, maxRowsPerRun ...int) *Graph {
	bound := 0
	if len(maxRowsPerRun) > 0 {
		bound = maxRowsPerRun[0]
	}
	return &Graph{
		run: func(sources NamedSources) (Stream, error) {
			src, err := g.run(sources)
			if err != nil {
				return nil, err
			}
			return newSortStream(src, keys, bound)
		},
	}
}

// Join returns a new Graph that sorted-merge-joins this Graph (the
// left side) with other (the right side) on keys using joiner. Both
// sides must already be sorted by keys.
func (g *Graph) Join(joiner Joiner, other *Graph, keys KeyTuple) *Graph {
	return &Graph{
		run: func(sources NamedSources) (Stream, error) {
			left, err := g.run(sources)
			if err != nil {
				return nil, err
			}
			right, err := other.run(sources)
			if err != nil {
				left.Close()
				return nil, err
			}
			return newJoinStream(left, right, keys, joiner), nil
		},
	}
}

// Run resolves the plan against sources and returns the resulting
// Stream. Calling Run with an unbound source name fails with
// ErrUnboundSource; calling it on a Graph with no operation attached
// fails with ErrEmptyOperation.
func (g *Graph) Run(sources NamedSources) (Stream, error) {
	if g.run == nil {
		return nil, ErrEmptyOperation
	}
	return g.run(sources)
}
