package outwriter

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/huangsam/leaderlens/schema"
)

// ErrNothingToPlot is returned when a PNG is requested for a chart without leaders.
var ErrNothingToPlot = errors.New("chart has no leader values to plot")

// RenderPNG writes the chart geometry as a PNG image.
// Each contiguous segment becomes its own series so gaps stay visible; only the
// first segment of a leader carries its name, giving one legend entry per leader.
func RenderPNG(w io.Writer, geom schema.ChartGeometry) error {
	if len(geom.XTicks) < schema.MinComparableReports {
		return fmt.Errorf("png chart needs at least %d reports, got %d", schema.MinComparableReports, len(geom.XTicks))
	}

	series := pngSeries(geom)
	if len(series) == 0 {
		return ErrNothingToPlot
	}

	xTicks := make([]chart.Tick, len(geom.XTicks))
	for i, t := range geom.XTicks {
		xTicks[i] = chart.Tick{Value: float64(t.ReportIndex), Label: t.Label}
	}

	vp := geom.Viewport
	ch := chart.Chart{
		Width:  int(vp.Width),
		Height: int(vp.Height),
		Background: chart.Style{Padding: chart.Box{
			Top:    int(vp.PaddingTop) + 20,
			Left:   int(vp.PaddingLeft),
			Right:  int(vp.PaddingRight),
			Bottom: int(vp.PaddingBottom) / 2,
		}},
		XAxis:  chart.XAxis{Ticks: xTicks},
		YAxis:  pngYAxis(geom),
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render png chart: %w", err)
	}
	return nil
}

func pngSeries(geom schema.ChartGeometry) []chart.Series {
	var series []chart.Series
	for _, s := range geom.Series {
		col := drawing.ParseColor(s.Color)
		for j, seg := range s.Segments {
			xs := make([]float64, len(seg))
			ys := make([]float64, len(seg))
			for k, p := range seg {
				xs[k] = float64(p.ReportIndex)
				ys[k] = p.Value
			}
			st := chart.Style{
				StrokeColor: col,
				StrokeWidth: schema.SeriesStrokeWidth,
				DotColor:    col,
				DotWidth:    schema.PointRadius,
			}
			if len(seg) == 1 {
				st.StrokeWidth = 0 // a lone point has no line
			}
			cs := chart.ContinuousSeries{XValues: xs, YValues: ys, Style: st}
			if j == 0 {
				cs.Name = s.Name
			}
			series = append(series, cs)
		}
	}
	return series
}

// pngYAxis reuses the grid line values as ticks when they span the plotted values.
// Otherwise it falls back to a range that covers every point.
func pngYAxis(geom schema.ChartGeometry) chart.YAxis {
	lo, hi := 0.0, geom.MaxValue
	for _, s := range geom.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}

	n := len(geom.GridLines)
	if lo >= 0 && geom.MaxValue > 0 && n > 1 {
		ticks := make([]chart.Tick, n)
		for k, gl := range geom.GridLines {
			ticks[k] = chart.Tick{Value: geom.MaxValue / float64(n-1) * float64(gl.Index), Label: gl.Label}
		}
		return chart.YAxis{Ticks: ticks}
	}

	if hi <= lo {
		hi = lo + 1
	}
	return chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}}
}
