package summary

import (
	"context"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/SaehwanPark/parquet-summarizer/internal/engine"
)

// nullLabel is the frequency-table category that null values are grouped
// under in categorical columns.
const nullLabel = "null"

// NumericSummary holds the aggregates for a numeric column. Std is the
// sample standard deviation (n-1 divisor); Q1 and Q3 use the delegated
// interpolated percentile estimator.
type NumericSummary struct {
	Count int64 // non-null values
	Nulls int64
	Mean  float64
	Std   float64
	Q1    float64
	Q3    float64
	IQR   float64
	Valid bool // false when the column has no non-null values
}

// ValueCount is one frequency-table row. Percent is count relative to the
// total row count of the file, nulls included.
type ValueCount struct {
	Value   string
	Count   int64
	Percent float64
}

// CategoricalSummary holds the frequency table for a categorical column,
// ordered by descending count with ties in first-encountered order.
type CategoricalSummary struct {
	Values []ValueCount
	Nulls  int64
}

// ColumnSummary is the per-column result. Exactly one of Numeric and
// Categorical is set for the matching Kind; high-cardinality columns set
// neither and report Distinct only.
type ColumnSummary struct {
	Name        string
	Type        string
	Kind        Kind
	Distinct    int
	Numeric     *NumericSummary
	Categorical *CategoricalSummary
}

// Collect computes the summary for column idx of frame. The classification
// of non-numeric columns depends on the distinct count, so the value scan
// happens before Classify is consulted.
func Collect(ctx context.Context, frame *engine.Frame, idx, threshold int) (ColumnSummary, error) {
	fld := frame.Schema().Field(idx)
	cs := ColumnSummary{
		Name: fld.Name,
		Type: fld.Type.String(),
	}

	if isNumericType(fld.Type.ID()) {
		cs.Kind = KindNumeric
		num, err := collectNumeric(ctx, frame, idx)
		if err != nil {
			return cs, &StatsError{Path: frame.Path(), Column: fld.Name, Err: err}
		}
		cs.Numeric = num
		return cs, nil
	}

	values, nulls, err := collectCounts(ctx, frame, idx)
	if err != nil {
		return cs, &StatsError{Path: frame.Path(), Column: fld.Name, Err: err}
	}

	cs.Distinct = len(values)
	cs.Kind = Classify(fld.Type.ID(), cs.Distinct, threshold)
	if cs.Kind == KindCategorical {
		cs.Categorical = &CategoricalSummary{Values: values, Nulls: nulls}
	}
	return cs, nil
}

func collectNumeric(ctx context.Context, frame *engine.Frame, idx int) (*NumericSummary, error) {
	var (
		xs    []float64
		nulls int64
	)

	err := frame.ScanColumn(ctx, idx, func(arr arrow.Array) error {
		nulls += int64(arr.NullN())
		var aerr error
		xs, aerr = appendFloats(xs, arr)
		return aerr
	})
	if err != nil {
		return nil, err
	}

	num := &NumericSummary{
		Count: int64(len(xs)),
		Nulls: nulls,
	}
	if len(xs) == 0 {
		return num, nil
	}

	sample := stats.Sample{Xs: xs}
	sample.Sort()

	num.Valid = true
	num.Mean = sample.Mean()
	num.Std = sample.StdDev()
	num.Q1 = sample.Quantile(0.25)
	num.Q3 = sample.Quantile(0.75)
	num.IQR = num.Q3 - num.Q1
	return num, nil
}

// appendFloats widens the non-null values of a numeric arrow array into xs.
func appendFloats(xs []float64, arr arrow.Array) ([]float64, error) {
	switch a := arr.(type) {
	case *array.Int8:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Int16:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Int32:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Int64:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Uint8:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Uint16:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Uint32:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Uint64:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				xs = append(xs, float64(a.Value(i)))
			}
		}
	case *array.Float32:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				v := float64(a.Value(i))
				if !math.IsNaN(v) {
					xs = append(xs, v)
				}
			}
		}
	case *array.Float64:
		for i := 0; i < a.Len(); i++ {
			if a.IsValid(i) {
				v := a.Value(i)
				if !math.IsNaN(v) {
					xs = append(xs, v)
				}
			}
		}
	default:
		return xs, &unsupportedTypeError{dtype: arr.DataType().String()}
	}
	return xs, nil
}

type unsupportedTypeError struct {
	dtype string
}

func (e *unsupportedTypeError) Error() string {
	return "unsupported numeric storage type " + e.dtype
}

// collectCounts builds the grouped value counts for a non-numeric column.
// The returned slice is sorted by descending count; sort.SliceStable over
// the first-seen insertion order gives the tie-break the report promises.
func collectCounts(ctx context.Context, frame *engine.Frame, idx int) ([]ValueCount, int64, error) {
	var (
		entries []ValueCount
		index   = make(map[string]int)
		nulls   int64
	)

	visit := func(v string) {
		if i, ok := index[v]; ok {
			entries[i].Count++
			return
		}
		index[v] = len(entries)
		entries = append(entries, ValueCount{Value: v, Count: 1})
	}

	err := frame.ScanColumn(ctx, idx, func(arr arrow.Array) error {
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNull(i) {
				nulls++
				visit(nullLabel)
				continue
			}
			visit(arr.ValueStr(i))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if total := frame.NumRows(); total > 0 {
		for i := range entries {
			entries[i].Percent = float64(entries[i].Count) / float64(total) * 100
		}
	}
	return entries, nulls, nil
}
