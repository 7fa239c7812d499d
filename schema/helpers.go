package schema

import (
	"math"
	"strconv"
)

// TruncateLabel shortens a report title for the x-axis.
// Titles longer than TickLabelMaxRunes runes keep their first TickLabelMaxRunes runes plus an ellipsis.
func TruncateLabel(title string) string {
	return TruncateRunes(title, TickLabelMaxRunes)
}

// TruncateRunes cuts s to at most limit runes and appends TickLabelEllipsis when it was cut.
// A non-positive limit returns s unchanged.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	rr := []rune(s)
	if len(rr) <= limit {
		return s
	}
	return string(rr[:limit]) + TickLabelEllipsis
}

// FormatTrend renders a trend as an arrow plus absolute percent, e.g. "↑ 12.5%".
// Invalid trends render as "-"; trends with a zero first value show the raw delta instead.
func FormatTrend(t Trend) string {
	if !t.Valid {
		return "-"
	}
	arrow := "→"
	switch t.Direction {
	case TrendUp:
		arrow = "↑"
	case TrendDown:
		arrow = "↓"
	}
	if !t.PercentValid {
		return arrow + " " + strconv.FormatFloat(math.Abs(t.Delta), 'f', -1, 64)
	}
	return arrow + " " + strconv.FormatFloat(math.Abs(t.Percent), 'f', 1, 64) + "%"
}
