// Copyright © 2020 Yoshiki Shibata. All rights reserved.

// Package pipelines assembles compgraph's op set into the example
// graphs the engine was built to run, ported in structure (not source)
// from the original compgraph.algorithms module: word frequency count,
// TF-IDF inverted index, pointwise mutual information, and average
// road speed by weekday/hour.
package pipelines

import (
	"math"

	"github.com/wyborski/compgraph"
	"github.com/wyborski/compgraph/ops"
)

// WordCount counts occurrences of each word in textColumn across every
// row of input, sorted ascending by (count, word). sortBufferRows
// bounds every external sort's in-memory run (0 uses the engine
// default).
func WordCount(input *compgraph.Graph, textColumn, countColumn string, sortBufferRows int) *compgraph.Graph {
	return input.
		Map(ops.FilterPunctuation{Column: textColumn}).
		Map(ops.LowerCase{Column: textColumn}).
		Map(ops.Split{Column: textColumn}).
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows).
		Reduce(compgraph.CountReducer{Column: countColumn}, compgraph.KeyTuple{textColumn}).
		Sort(compgraph.KeyTuple{countColumn, textColumn}, sortBufferRows)
}

// InvertedIndex computes the TF-IDF score of every (document, word) pair
// and keeps, for each word, the 3 documents with the highest score.
func InvertedIndex(input *compgraph.Graph, docColumn, textColumn, resultColumn string, sortBufferRows int) *compgraph.Graph {
	const (
		docCountColumn = "doc_count"
		totalColumn    = "total"
		idfColumn      = "idf"
		tfColumn       = "tf"
	)

	splitGraph := input.
		Map(ops.FilterPunctuation{Column: textColumn}).
		Map(ops.LowerCase{Column: textColumn}).
		Map(ops.Split{Column: textColumn})

	docGraph := input.
		Sort(compgraph.KeyTuple{docColumn}, sortBufferRows).
		Reduce(compgraph.FirstReducer{}, compgraph.KeyTuple{docColumn}).
		Reduce(compgraph.CountReducer{Column: totalColumn}, compgraph.KeyTuple{})

	idfGraph := splitGraph.
		Sort(compgraph.KeyTuple{docColumn, textColumn}, sortBufferRows).
		Reduce(compgraph.FirstReducer{}, compgraph.KeyTuple{docColumn, textColumn}).
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows).
		Reduce(compgraph.CountReducer{Column: docCountColumn}, compgraph.KeyTuple{textColumn}).
		Join(compgraph.InnerJoiner{}, docGraph, compgraph.KeyTuple{}).
		Map(ops.BinaryArithmetic{
			ResultColumn: idfColumn,
			Operation: func(row compgraph.Row) float64 {
				return math.Log(asFloat(row[totalColumn]) / asFloat(row[docCountColumn]))
			},
		})

	tfGraph := splitGraph.
		Sort(compgraph.KeyTuple{docColumn}, sortBufferRows).
		Reduce(compgraph.TermFrequencyReducer{WordsColumn: textColumn, ResultColumn: tfColumn}, compgraph.KeyTuple{docColumn})

	return tfGraph.
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows).
		Join(compgraph.InnerJoiner{}, idfGraph, compgraph.KeyTuple{textColumn}).
		Map(ops.Product{Columns: []string{idfColumn, tfColumn}, ResultColumn: resultColumn}).
		Map(ops.Project{Columns: []string{docColumn, textColumn, resultColumn}}).
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows).
		Reduce(compgraph.TopNReducer{Column: resultColumn, N: 3}, compgraph.KeyTuple{textColumn})
}

// PMI computes, for every document, the top 10 words ranked by
// pointwise mutual information between the word and the document.
func PMI(input *compgraph.Graph, docColumn, textColumn, resultColumn string, sortBufferRows int) *compgraph.Graph {
	const docTFColumn = "doc_tf"
	const totalTFColumn = "total_tf"

	splitGraph := input.
		Map(ops.FilterPunctuation{Column: textColumn}).
		Map(ops.LowerCase{Column: textColumn}).
		Map(ops.Split{Column: textColumn}).
		Map(ops.Filter{Condition: func(row compgraph.Row) bool {
			s, _ := row[textColumn].(string)
			return len(s) > 4
		}})

	freqGraph := splitGraph.
		Sort(compgraph.KeyTuple{docColumn, textColumn}, sortBufferRows).
		Reduce(compgraph.CountReducer{Column: docTFColumn}, compgraph.KeyTuple{docColumn, textColumn}).
		Map(ops.Filter{Condition: func(row compgraph.Row) bool {
			n, _ := row[docTFColumn].(int64)
			return n > 1
		}})

	filteredGraph := splitGraph.
		Sort(compgraph.KeyTuple{docColumn, textColumn}, sortBufferRows).
		Join(compgraph.InnerJoiner{}, freqGraph, compgraph.KeyTuple{docColumn, textColumn})

	docTFGraph := filteredGraph.
		Reduce(compgraph.TermFrequencyReducer{WordsColumn: textColumn, ResultColumn: docTFColumn}, compgraph.KeyTuple{docColumn})

	totalTFGraph := filteredGraph.
		Reduce(compgraph.TermFrequencyReducer{WordsColumn: textColumn, ResultColumn: totalTFColumn}, compgraph.KeyTuple{}).
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows)

	return docTFGraph.
		Sort(compgraph.KeyTuple{textColumn}, sortBufferRows).
		Join(compgraph.InnerJoiner{}, totalTFGraph, compgraph.KeyTuple{textColumn}).
		Map(ops.BinaryArithmetic{
			ResultColumn: resultColumn,
			Operation: func(row compgraph.Row) float64 {
				return math.Log(asFloat(row[docTFColumn]) / asFloat(row[totalTFColumn]))
			},
		}).
		Map(ops.Project{Columns: []string{docColumn, textColumn, resultColumn}}).
		Sort(compgraph.KeyTuple{docColumn}, sortBufferRows).
		Reduce(compgraph.TopNReducer{Column: resultColumn, N: 10}, compgraph.KeyTuple{docColumn})
}

// YandexMapsSpeedColumns names the columns YandexMapsSpeed reads and
// writes; callers whose source data uses different names supply their
// own.
type YandexMapsSpeedColumns struct {
	EnterTime, LeaveTime string
	EdgeID               string
	StartCoord, EndCoord string
	Weekday, Hour        string
	Speed                string
}

// YandexMapsSpeed joins a stream of edge traversal timestamps with a
// stream of edge geometries to compute average travel speed in km/h,
// broken down by weekday and hour of day.
func YandexMapsSpeed(timeInput, lengthInput *compgraph.Graph, c YandexMapsSpeedColumns, sortBufferRows int) *compgraph.Graph {
	const (
		haversineColumn = "haversine"
		durationColumn  = "duration"
	)

	havGraph := lengthInput.
		Map(ops.Haversine{Start: c.StartCoord, End: c.EndCoord, Column: haversineColumn}).
		Map(ops.Project{Columns: []string{c.EdgeID, haversineColumn}}).
		Sort(compgraph.KeyTuple{c.EdgeID}, sortBufferRows)

	timeGraph := timeInput.
		Map(ops.DatetimeExtractor{DateColumn: c.EnterTime, OutputLayout: "Mon", Column: c.Weekday}).
		Map(ops.DatetimeExtractor{DateColumn: c.EnterTime, OutputLayout: "15", Column: c.Hour}).
		Map(ops.StrToInt{Columns: []string{c.Hour}}).
		Map(ops.Duration{Start: c.EnterTime, End: c.LeaveTime, Column: durationColumn}).
		Map(ops.Project{Columns: []string{c.EdgeID, c.Weekday, c.Hour, durationColumn}}).
		Sort(compgraph.KeyTuple{c.EdgeID}, sortBufferRows)

	jointGraph := timeGraph.
		Join(compgraph.InnerJoiner{}, havGraph, compgraph.KeyTuple{c.EdgeID}).
		Sort(compgraph.KeyTuple{c.Weekday, c.Hour}, sortBufferRows)

	groupKeys := compgraph.KeyTuple{c.Weekday, c.Hour}
	durationGraph := jointGraph.Reduce(compgraph.SumReducer{Column: durationColumn}, groupKeys)
	distanceGraph := jointGraph.Reduce(compgraph.SumReducer{Column: haversineColumn}, groupKeys)

	return durationGraph.
		Join(compgraph.InnerJoiner{}, distanceGraph, groupKeys).
		Map(ops.BinaryArithmetic{
			ResultColumn: c.Speed,
			Operation: func(row compgraph.Row) float64 {
				return asFloat(row[haversineColumn]) / asFloat(row[durationColumn])
			},
		}).
		Map(ops.Project{Columns: []string{c.Weekday, c.Hour, c.Speed}})
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
		return 0
	}
}
