// Package algo has the per-row highlighting and trend computations of the comparison table.
package algo

import (
	"math"

	"github.com/huangsam/leaderlens/schema"
)

// ClassifyCell returns the highlight class of row[i].
// Absent or out-of-range cells are MissingCell. A row whose present values are all
// equal has no extremes, so every present cell in it is NeutralCell.
func ClassifyCell(row []schema.NullFloat, i int) schema.CellClass {
	if i < 0 || i >= len(row) || !row[i].Valid {
		return schema.MissingCell
	}
	lo, hi, ok := rowRange(row)
	if !ok {
		return schema.MissingCell
	}
	return classify(row[i].Float64, lo, hi)
}

// ClassifyRow classifies every cell of a row.
func ClassifyRow(row []schema.NullFloat) []schema.CellClass {
	classes := make([]schema.CellClass, len(row))
	lo, hi, ok := rowRange(row)
	for i, v := range row {
		if !v.Valid || !ok {
			classes[i] = schema.MissingCell
			continue
		}
		classes[i] = classify(v.Float64, lo, hi)
	}
	return classes
}

// ClassifyMetricCell classifies a metric cell. Numeric cells are compared against the
// other numeric cells of the row, text cells are always NeutralCell.
func ClassifyMetricCell(row []schema.MetricValue, i int) schema.CellClass {
	if i < 0 || i >= len(row) || row[i].IsMissing() {
		return schema.MissingCell
	}
	if !row[i].IsNumber() {
		return schema.NeutralCell
	}
	return ClassifyCell(metricNumbers(row), i)
}

// ClassifyMetricRow classifies every cell of a metric row.
func ClassifyMetricRow(row []schema.MetricValue) []schema.CellClass {
	numeric := ClassifyRow(metricNumbers(row))
	for i, v := range row {
		if v.Kind == schema.MetricText {
			numeric[i] = schema.NeutralCell
		}
	}
	return numeric
}

func metricNumbers(row []schema.MetricValue) []schema.NullFloat {
	nums := make([]schema.NullFloat, len(row))
	for i, v := range row {
		nums[i] = v.AsNullFloat()
	}
	return nums
}

// rowRange returns the min and max of the present values; ok is false when none are present.
func rowRange(row []schema.NullFloat) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range row {
		if !v.Valid {
			continue
		}
		ok = true
		lo = math.Min(lo, v.Float64)
		hi = math.Max(hi, v.Float64)
	}
	return lo, hi, ok
}

func classify(v, lo, hi float64) schema.CellClass {
	switch {
	case lo == hi:
		return schema.NeutralCell
	case v == hi:
		return schema.MaxCell
	case v == lo:
		return schema.MinCell
	default:
		return schema.NeutralCell
	}
}
