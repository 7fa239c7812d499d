// Package chart computes renderer-independent line chart geometry for a comparison dataset.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/leaderlens/schema"
)

// ComputeGeometry maps a dataset onto the viewport.
//
// Reports are spread evenly along the x-axis in their given order. The y-axis runs
// from zero at the floor to the dataset maximum at the ceiling. Absent values are
// never plotted; they split a leader's polyline into separate segments.
// The function is total and never produces NaN or infinite coordinates.
func ComputeGeometry(dataset schema.ComparisonDataset, titles []string, vp schema.Viewport) schema.ChartGeometry {
	vp = NormalizeViewport(vp)
	count := reportCount(dataset, titles)
	maxValue := MaxValue(dataset)
	s := scale{vp: vp, count: count, max: maxValue}

	geom := schema.ChartGeometry{
		Viewport:  vp,
		MaxValue:  maxValue,
		GridLines: gridLines(vp, maxValue),
		XTicks:    make([]schema.AxisTick, count),
		Series:    make([]schema.SeriesGeometry, 0, len(dataset.Leaders)),
		Legend:    make([]schema.LegendEntry, 0, len(dataset.Leaders)),
	}

	for i := range count {
		title := ""
		if i < len(titles) {
			title = titles[i]
		}
		geom.XTicks[i] = schema.AxisTick{
			ReportIndex: i,
			X:           s.x(i),
			Y:           vp.Floor() + schema.TickLabelOffset,
			Label:       schema.TruncateLabel(title),
			Title:       title,
		}
	}

	for i, leader := range dataset.Leaders {
		color := Color(i)
		geom.Series = append(geom.Series, buildSeries(leader, color, s))
		geom.Legend = append(geom.Legend, schema.LegendEntry{Name: leader.Name, Color: color})
	}

	return geom
}

// NormalizeViewport fills unset dimensions and grid line count from DefaultViewport.
// Padding values are kept as given since zero padding is valid.
func NormalizeViewport(vp schema.Viewport) schema.Viewport {
	def := schema.DefaultViewport()
	if vp == (schema.Viewport{}) {
		return def
	}
	if vp.Width <= 0 {
		vp.Width = def.Width
	}
	if vp.Height <= 0 {
		vp.Height = def.Height
	}
	if vp.GridLines <= 0 {
		vp.GridLines = def.GridLines
	}
	return vp
}

// MaxValue returns the largest present leader score, or zero when there is none
// or every score is negative.
func MaxValue(dataset schema.ComparisonDataset) float64 {
	maxValue := 0.0
	for _, leader := range dataset.Leaders {
		for _, v := range leader.Values {
			if plottable(v) && v.Float64 > maxValue {
				maxValue = v.Float64
			}
		}
	}
	return maxValue
}

// Color returns the palette color for the series at index i.
func Color(i int) string {
	n := len(schema.ChartPalette)
	return schema.ChartPalette[((i%n)+n)%n]
}

// scale converts report indices and values to pixel coordinates.
type scale struct {
	vp    schema.Viewport
	count int
	max   float64
}

// x places report i; a single report sits on the left edge.
func (s scale) x(i int) float64 {
	step := s.vp.PlotWidth() / float64(max(s.count-1, 1))
	return s.vp.PlotLeft() + float64(i)*step
}

// y places value v; everything sits on the floor when the maximum is zero.
func (s scale) y(v float64) float64 {
	if s.max == 0 {
		return s.vp.Floor()
	}
	return s.vp.Floor() - (v/s.max)*s.vp.PlotHeight()
}

func reportCount(dataset schema.ComparisonDataset, titles []string) int {
	count := max(len(titles), dataset.ReportCount)
	for _, leader := range dataset.Leaders {
		count = max(count, len(leader.Values))
	}
	return count
}

func plottable(v schema.NullFloat) bool {
	return v.Valid && !math.IsNaN(v.Float64) && !math.IsInf(v.Float64, 0)
}

// gridLines spaces the horizontal reference lines evenly from floor to ceiling.
func gridLines(vp schema.Viewport, maxValue float64) []schema.GridLine {
	line := func(k int, y float64, value float64) schema.GridLine {
		return schema.GridLine{
			Index:  k,
			Y:      y,
			X1:     vp.PlotLeft(),
			X2:     vp.PlotRight(),
			Label:  formatGridLabel(value),
			LabelX: vp.PlotLeft() - schema.GridLabelOffsetX,
			LabelY: y + schema.GridLabelBaselineAdj,
		}
	}

	if vp.GridLines == 1 {
		return []schema.GridLine{line(0, vp.Floor(), 0)}
	}

	intervals := float64(vp.GridLines - 1)
	lines := make([]schema.GridLine, vp.GridLines)
	for k := range lines {
		y := vp.Floor() - float64(k)*vp.PlotHeight()/intervals
		lines[k] = line(k, y, maxValue/intervals*float64(k))
	}
	return lines
}

// formatGridLabel rounds to an integer string and never yields "-0".
func formatGridLabel(v float64) string {
	return strconv.FormatFloat(math.Round(v)+0, 'f', 0, 64)
}

// buildSeries plots the present values of one leader.
func buildSeries(leader schema.LeaderSeries, color string, s scale) schema.SeriesGeometry {
	series := schema.SeriesGeometry{
		Name:     leader.Name,
		Color:    color,
		Points:   []schema.ChartPoint{},
		Segments: [][]schema.ChartPoint{},
	}

	var current []schema.ChartPoint
	for i, v := range leader.Values {
		if !plottable(v) {
			if len(current) > 0 {
				series.Segments = append(series.Segments, current)
				current = nil
			}
			continue
		}
		p := schema.ChartPoint{ReportIndex: i, X: s.x(i), Y: s.y(v.Float64), Value: v.Float64}
		series.Points = append(series.Points, p)
		current = append(current, p)
	}
	if len(current) > 0 {
		series.Segments = append(series.Segments, current)
	}

	series.Path = PathData(series.Segments)
	return series
}

// PathData renders segments as SVG path data, starting a new subpath after each gap.
func PathData(segments [][]schema.ChartPoint) string {
	var sb strings.Builder
	for _, seg := range segments {
		for j, p := range seg {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			cmd := "L"
			if j == 0 {
				cmd = "M"
			}
			sb.WriteString(cmd)
			sb.WriteString(" ")
			sb.WriteString(FormatCoord(p.X))
			sb.WriteString(" ")
			sb.WriteString(FormatCoord(p.Y))
		}
	}
	return sb.String()
}

// FormatCoord formats a pixel coordinate with at most two decimals.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100+0, 'f', -1, 64)
}
