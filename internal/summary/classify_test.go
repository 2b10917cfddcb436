package summary

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		dtype     arrow.Type
		distinct  int
		threshold int
		want      Kind
	}{
		{"int64 is numeric", arrow.INT64, 0, 10, KindNumeric},
		{"float64 is numeric", arrow.FLOAT64, 0, 10, KindNumeric},
		{"uint8 is numeric", arrow.UINT8, 0, 10, KindNumeric},
		{"constant int column stays numeric", arrow.INT32, 1, 10, KindNumeric},
		{"high-cardinality float stays numeric", arrow.FLOAT32, 100000, 10, KindNumeric},
		{"string below threshold", arrow.STRING, 5, 10, KindCategorical},
		{"string at threshold", arrow.STRING, 10, 10, KindCategorical},
		{"string above threshold", arrow.STRING, 11, 10, KindHighCardinality},
		{"bool is categorical", arrow.BOOL, 2, 10, KindCategorical},
		{"timestamp above threshold", arrow.TIMESTAMP, 50, 10, KindHighCardinality},
		{"empty column is categorical", arrow.STRING, 0, 10, KindCategorical},
		{"zero threshold, zero distinct", arrow.STRING, 0, 0, KindCategorical},
		{"zero threshold, one distinct", arrow.STRING, 1, 0, KindHighCardinality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.dtype, tt.distinct, tt.threshold)
			if got != tt.want {
				t.Errorf("Classify(%s, %d, %d) = %s, want %s",
					tt.dtype, tt.distinct, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindNumeric.String() != "numeric" {
		t.Errorf("Unexpected name for KindNumeric: %s", KindNumeric)
	}
	if KindCategorical.String() != "categorical" {
		t.Errorf("Unexpected name for KindCategorical: %s", KindCategorical)
	}
	if KindHighCardinality.String() != "high cardinality" {
		t.Errorf("Unexpected name for KindHighCardinality: %s", KindHighCardinality)
	}
}
