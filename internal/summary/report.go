package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report is the full result for one file, columns in schema order.
type Report struct {
	Path    string
	Rows    int64
	Columns []ColumnSummary
}

// Format renders the report as plain text. Rendering is deterministic:
// mean/std/quartiles/IQR use 4 decimal places, percentages use 2, and the
// column order is the schema order the report was built with.
func (r *Report) Format() string {
	var out strings.Builder

	out.WriteString("=== PARQUET SUMMARY ===\n")
	out.WriteString(fmt.Sprintf("File: %s\n", r.Path))
	out.WriteString(fmt.Sprintf("Shape: %s rows x %s columns\n\n",
		humanize.Comma(r.Rows), humanize.Comma(int64(len(r.Columns)))))

	for i, col := range r.Columns {
		switch col.Kind {
		case KindNumeric:
			out.WriteString(fmt.Sprintf("%d. %s (%s) - numeric\n", i+1, col.Name, col.Type))
			writeNumeric(&out, col.Numeric)
		case KindCategorical:
			out.WriteString(fmt.Sprintf("%d. %s (%s) - categorical, %d unique\n",
				i+1, col.Name, col.Type, col.Distinct))
			for _, v := range col.Categorical.Values {
				out.WriteString(fmt.Sprintf("   %s: %s (%.2f%%)\n",
					v.Value, humanize.Comma(v.Count), v.Percent))
			}
		case KindHighCardinality:
			out.WriteString(fmt.Sprintf("%d. %s (%s) - high cardinality, %d unique values (frequency table omitted)\n",
				i+1, col.Name, col.Type, col.Distinct))
		}
		out.WriteString("\n")
	}

	return out.String()
}

func writeNumeric(out *strings.Builder, num *NumericSummary) {
	out.WriteString(fmt.Sprintf("   count: %s  nulls: %s\n",
		humanize.Comma(num.Count), humanize.Comma(num.Nulls)))
	out.WriteString(fmt.Sprintf("   mean:  %s\n", formatStat(num.Mean, num.Valid)))
	out.WriteString(fmt.Sprintf("   std:   %s\n", formatStat(num.Std, num.Valid)))
	out.WriteString(fmt.Sprintf("   q1:    %s\n", formatStat(num.Q1, num.Valid)))
	out.WriteString(fmt.Sprintf("   q3:    %s\n", formatStat(num.Q3, num.Valid)))
	out.WriteString(fmt.Sprintf("   iqr:   %s\n", formatStat(num.IQR, num.Valid)))
}

// formatStat renders a statistic at fixed precision. Aggregates that do
// not exist (empty column, or std of a single value) render as N/A.
func formatStat(v float64, valid bool) string {
	if !valid || math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", v)
}
