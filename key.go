// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// absentValue is the distinct value a row's key-tuple value takes at a
// column the row does not carry. Two absent values compare equal to one
// another and are ordered before every other value kind.
type absentValue struct{}

// Absent is the sentinel returned by KeyValues for a missing column.
var Absent = absentValue{}

var textCollator = collate.New(language.Und)

// KeyValues returns a row's key value under a key tuple: the tuple of
// the row's values at keys' columns, in order. A column the row does not
// carry contributes Absent.
func KeyValues(row Row, keys KeyTuple) []any {
	vals := make([]any, len(keys))
	for i, k := range keys {
		if v, ok := row[k]; ok {
			vals[i] = v
		} else {
			vals[i] = Absent
		}
	}
	return vals
}

// CompareKeys compares two key values element-wise, returning a negative
// number, zero, or a positive number as a is less than, equal to, or
// greater than b. a and b must have the same length.
func CompareKeys(a, b []any) int {
	for i := range a {
		if c := compareValue(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// kindRank orders value kinds when two key values at the same column
// carry different underlying types: absent, then numeric, then string,
// then anything implementing Comparable. spec.md's Open Question on
// mixed-type key columns is resolved here by this total order rather
// than by treating it as a fatal user error — see SPEC_FULL.md §F.3.
func kindRank(v any) int {
	switch v.(type) {
	case absentValue:
		return 0
	case int, int64, float64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		panic(fmt.Sprintf("compgraph: value %v is not numeric", v))
	}
}

func compareValue(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		switch {
		case ra < rb:
			return -1
		default:
			return 1
		}
	}

	switch ra {
	case 0: // both absent
		return 0
	case 1: // both numeric
		fa, fb := asFloat(a), asFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case 2: // both string
		return textCollator.CompareString(a.(string), b.(string))
	default:
		if c, ok := a.(Comparable); ok {
			return c.CompareTo(b)
		}
		panic(fmt.Sprintf("compgraph: key value of type %T has no natural order", a))
	}
}
