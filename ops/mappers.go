// Copyright © 2020 Yoshiki Shibata. All rights reserved.

// Package ops collects the row-transforming Mapper implementations that
// ship with compgraph's example pipelines: punctuation and case
// cleanup, column splitting/projection, arithmetic between columns,
// the great-circle Haversine distance, and datetime extraction —
// ported in meaning from the original compgraph.operations.map module.
package ops

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/wyborski/compgraph"
	"github.com/wyborski/compgraph/function"
)

// DummyMapper emits exactly the row it is given.
type DummyMapper struct{}

func (DummyMapper) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	emit(row)
	return nil
}

// FilterPunctuation strips Unicode punctuation from Column's value.
type FilterPunctuation struct {
	Column string
}

func (m FilterPunctuation) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	s, _ := row[m.Column].(string)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}
	row[m.Column] = b.String()
	emit(row)
	return nil
}

// LowerCase lower-cases Column's value.
type LowerCase struct {
	Column string
}

func (m LowerCase) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	s, _ := row[m.Column].(string)
	row[m.Column] = strings.ToLower(s)
	emit(row)
	return nil
}

// defaultSplitSeparator is the separator Split uses when Sep is nil —
// one or more whitespace characters, matching the original's default.
var defaultSplitSeparator = regexp.MustCompile(`\s+`)

// Split breaks Column's value on Sep (nil means runs of whitespace),
// emitting one row per token with every other column repeated.
type Split struct {
	Column string
	Sep    *regexp.Regexp
}

func (m Split) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	s, _ := row[m.Column].(string)
	delete(row, m.Column)

	sep := m.Sep
	if sep == nil {
		sep = defaultSplitSeparator
	}
	fields := sep.Split(s, -1)

	for i, field := range fields {
		out := row
		if i < len(fields)-1 {
			out = row.Clone()
		}
		out[m.Column] = field
		emit(out)
	}
	return nil
}

// Product multiplies the values of Columns together into ResultColumn.
type Product struct {
	Columns      []string
	ResultColumn string
}

func (m Product) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	product := 1.0
	intProduct := int64(1)
	isFloat := false
	for _, col := range m.Columns {
		switch v := row[col].(type) {
		case int:
			if isFloat {
				product *= float64(v)
			} else {
				intProduct *= int64(v)
			}
		case int64:
			if isFloat {
				product *= float64(v)
			} else {
				intProduct *= v
			}
		case float64:
			if !isFloat {
				product = float64(intProduct)
				isFloat = true
			}
			product *= v
		}
	}
	if isFloat {
		row[m.ResultColumn] = product
	} else {
		row[m.ResultColumn] = intProduct
	}
	emit(row)
	return nil
}

// Filter drops rows for which Condition returns false.
type Filter struct {
	Condition function.RowPredicate[compgraph.Row]
}

func (m Filter) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	if m.Condition(row) {
		emit(row)
	}
	return nil
}

// Project keeps only Columns, dropping everything else.
type Project struct {
	Columns []string
}

func (m Project) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	out := make(compgraph.Row, len(m.Columns))
	for _, col := range m.Columns {
		out[col] = row[col]
	}
	emit(out)
	return nil
}

// BinaryArithmetic writes the result of applying Operation to the whole
// row into ResultColumn — e.g. a difference or ratio of two columns.
type BinaryArithmetic struct {
	Operation    function.RowFunction[compgraph.Row, float64]
	ResultColumn string
}

func (m BinaryArithmetic) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	row[m.ResultColumn] = m.Operation(row)
	emit(row)
	return nil
}

// Haversine writes the great-circle distance in kilometers between the
// [lon, lat] coordinate pairs in Start and End columns into Column.
type Haversine struct {
	Start, End, Column string
}

const earthRadiusKM = 6373.0

func (m Haversine) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	start, _ := row[m.Start].([]float64)
	end, _ := row[m.End].([]float64)
	if len(start) != 2 || len(end) != 2 {
		emit(row)
		return nil
	}

	lon1, lat1 := start[0]*math.Pi/180, start[1]*math.Pi/180
	lon2, lat2 := end[0]*math.Pi/180, end[1]*math.Pi/180

	latSin := math.Sin((lat2 - lat1) / 2)
	lonSin := math.Sin((lon2 - lon1) / 2)
	angle := math.Sqrt(latSin*latSin + math.Cos(lat1)*math.Cos(lat2)*lonSin*lonSin)

	row[m.Column] = 2 * earthRadiusKM * math.Asin(angle)
	emit(row)
	return nil
}

// datetimeLayout is the convention compgraph's source data uses for
// timestamps: YYYYMMDD'T'HHMMSS, with an optional ".ffffff" fraction.
func datetimeLayout(s string) string {
	if strings.Contains(s, ".") {
		return "20060102T150405.000000"
	}
	return "20060102T150405"
}

// DatetimeExtractor reformats DateColumn (parsed with the package
// convention) according to OutputLayout (a Go reference-time layout)
// into Column.
type DatetimeExtractor struct {
	DateColumn   string
	OutputLayout string
	Column       string
}

func (m DatetimeExtractor) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	s, _ := row[m.DateColumn].(string)
	t, err := time.Parse(datetimeLayout(s), s)
	if err != nil {
		return err
	}
	row[m.Column] = t.Format(m.OutputLayout)
	emit(row)
	return nil
}

// Duration writes the difference between End and Start (both parsed
// with the package's datetime convention), in hours, into Column.
type Duration struct {
	Start, End, Column string
}

func (m Duration) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	startStr, _ := row[m.Start].(string)
	endStr, _ := row[m.End].(string)

	t1, err := time.Parse(datetimeLayout(startStr), startStr)
	if err != nil {
		return err
	}
	t2, err := time.Parse(datetimeLayout(endStr), endStr)
	if err != nil {
		return err
	}

	row[m.Column] = t2.Sub(t1).Hours()
	emit(row)
	return nil
}

// StrToInt converts the string value of each of Columns to an int.
type StrToInt struct {
	Columns []string
}

func (m StrToInt) Map(row compgraph.Row, emit function.RowConsumer[compgraph.Row]) error {
	for _, col := range m.Columns {
		s, _ := row[col].(string)
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		row[col] = n
	}
	emit(row)
	return nil
}
