// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import "errors"

// ErrEmptyOperation is returned by Graph.Run when a plan node has no
// operator attached (spec.md §4.1, §7.1).
var ErrEmptyOperation = errors.New("compgraph: graph node has no operation")

// ErrUnboundSource is returned by Graph.Run when a FromIter node's name
// is not present in the NamedSources map passed to Run (spec.md §4.2,
// §7.2).
var ErrUnboundSource = errors.New("compgraph: source name not bound")
