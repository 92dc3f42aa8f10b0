// Copyright © 2021 Yoshiki Shibata. All rights reserved.

package compgraph

// Comparable is an extension point for key-column values that carry
// their own ordering. A Row value stored under a key column may
// implement Comparable instead of being one of the built-in numeric,
// string, or absent kinds; CompareKeys orders such values after every
// absent, numeric, and string value, and compares two of them with
// CompareTo.
type Comparable interface {
	CompareTo(o any) int
}
