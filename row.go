// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

// Row is an unordered mapping from column name to value. Values are
// heterogeneous: int, int64, float64, string, []float64 (coordinate
// pairs), or a string encoding a date as YYYYMMDD'T'HHMMSS with an
// optional ".ffffff" fraction (the convention package ops parses). Rows
// are value-semantic: once yielded downstream, an
// operator must not observe or mutate it again.
type Row map[string]any

// Clone returns a defensive copy of r. Operators that hand a row to user
// code that may mutate it in place (Map, the join merge rule) clone
// before handing it over, so the row a caller still holds a reference to
// is never observably changed out from under it.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = cloneValue(v)
	}
	return cp
}

func cloneValue(v any) any {
	if s, ok := v.([]float64); ok {
		cp := make([]float64, len(s))
		copy(cp, s)
		return cp
	}
	return v
}

// KeyTuple is an ordered list of column names used to group, sort, or
// join rows.
type KeyTuple []string
