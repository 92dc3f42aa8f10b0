// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// Less is a comparison function, used by TopNReducer to rank a group's
// rows before truncating to the first N.
type Less[T any] func(t1, t2 T) bool
