package algo

import (
	"math"

	"github.com/huangsam/leaderlens/schema"
)

// ComputeTrend compares the first and last present values of a row.
// Fewer than two present values yield an invalid trend. The percent change is
// rounded to one decimal and is invalid when the first value is zero.
func ComputeTrend(row []schema.NullFloat) schema.Trend {
	first, last := -1, -1
	for i, v := range row {
		if !v.Valid {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || first == last {
		return schema.Trend{}
	}

	t := schema.Trend{
		Valid: true,
		First: row[first].Float64,
		Last:  row[last].Float64,
	}
	t.Delta = t.Last - t.First

	switch {
	case t.Delta > 0:
		t.Direction = schema.TrendUp
	case t.Delta < 0:
		t.Direction = schema.TrendDown
	default:
		t.Direction = schema.TrendFlat
	}

	if t.First != 0 {
		t.Percent = math.Round(t.Delta/t.First*1000)/10 + 0
		t.PercentValid = true
	}
	return t
}
