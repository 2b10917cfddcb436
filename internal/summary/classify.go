package summary

import "github.com/apache/arrow-go/v18/arrow"

// Kind is the statistical treatment chosen for a column.
type Kind int

const (
	// KindNumeric columns get mean/std/quartile statistics.
	KindNumeric Kind = iota
	// KindCategorical columns get a value frequency table.
	KindCategorical
	// KindHighCardinality columns are non-numeric with more distinct
	// values than the configured threshold; only their distinct count
	// is reported.
	KindHighCardinality
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	case KindHighCardinality:
		return "high cardinality"
	}
	return "unknown"
}

// isNumericType reports whether t is an integer or floating point storage
// type. Cardinality never changes the classification of these.
func isNumericType(t arrow.Type) bool {
	switch t {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

// Classify decides the treatment of a column from its storage type and,
// for non-numeric types, its distinct-value count. Pure function: the
// distinct count for numeric types is ignored and may be zero.
func Classify(t arrow.Type, distinct, threshold int) Kind {
	if isNumericType(t) {
		return KindNumeric
	}
	if distinct <= threshold {
		return KindCategorical
	}
	return KindHighCardinality
}
