package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/leaderlens/core/chart"
	"github.com/huangsam/leaderlens/schema"
)

// Dark theme of the rendered chart.
const (
	svgBackground = "#1F2937"
	svgGridColor  = "#374151"
	svgTextColor  = "#9CA3AF"
	svgFontSize   = 12
	legendRowStep = 18
	legendWidth   = 140
)

// RenderSVG writes the chart geometry as a standalone SVG document.
// Gaps in a series show as separate subpaths; every present value gets a marker.
func RenderSVG(w io.Writer, geom schema.ChartGeometry) error {
	_, err := io.WriteString(w, BuildSVG(geom))
	return err
}

// BuildSVG returns the SVG document for the chart geometry.
func BuildSVG(geom schema.ChartGeometry) string {
	vp := geom.Viewport
	width, height := chart.FormatCoord(vp.Width), chart.FormatCoord(vp.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="sans-serif">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&sb, `<rect width="%s" height="%s" fill="%s"/>`+"\n", width, height, svgBackground)

	sb.WriteString(`<g class="grid">` + "\n")
	for _, gl := range geom.GridLines {
		fmt.Fprintf(&sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			chart.FormatCoord(gl.X1), chart.FormatCoord(gl.Y), chart.FormatCoord(gl.X2), chart.FormatCoord(gl.Y), svgGridColor)
		fmt.Fprintf(&sb, `<text x="%s" y="%s" fill="%s" font-size="%d">%s</text>`+"\n",
			chart.FormatCoord(gl.LabelX), chart.FormatCoord(gl.LabelY), svgTextColor, svgFontSize, escapeXML(gl.Label))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g class="x-axis">` + "\n")
	for _, tick := range geom.XTicks {
		fmt.Fprintf(&sb, `<text x="%s" y="%s" fill="%s" font-size="%d" text-anchor="middle"><title>%s</title>%s</text>`+"\n",
			chart.FormatCoord(tick.X), chart.FormatCoord(tick.Y), svgTextColor, svgFontSize, escapeXML(tick.Title), escapeXML(tick.Label))
	}
	sb.WriteString("</g>\n")

	for _, s := range geom.Series {
		fmt.Fprintf(&sb, `<g class="series" data-leader="%s">`+"\n", escapeXML(s.Name))
		if s.Path != "" {
			fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="%d"/>`+"\n", s.Path, s.Color, schema.SeriesStrokeWidth)
		}
		for _, p := range s.Points {
			fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%d" fill="%s"><title>%s: %s</title></circle>`+"\n",
				chart.FormatCoord(p.X), chart.FormatCoord(p.Y), schema.PointRadius, s.Color,
				escapeXML(s.Name), strconv.FormatFloat(p.Value, 'f', -1, 64))
		}
		sb.WriteString("</g>\n")
	}

	writeLegend(&sb, geom)
	sb.WriteString("</svg>\n")
	return sb.String()
}

// writeLegend stacks one swatch per leader in the top right corner of the plot area.
func writeLegend(sb *strings.Builder, geom schema.ChartGeometry) {
	if len(geom.Legend) == 0 {
		return
	}
	x := geom.Viewport.PlotRight() - legendWidth
	y := geom.Viewport.Ceiling() + legendRowStep

	sb.WriteString(`<g class="legend">` + "\n")
	for i, entry := range geom.Legend {
		rowY := y + float64(i*legendRowStep)
		fmt.Fprintf(sb, `<rect x="%s" y="%s" width="12" height="12" fill="%s"/>`+"\n",
			chart.FormatCoord(x), chart.FormatCoord(rowY-10), entry.Color)
		fmt.Fprintf(sb, `<text x="%s" y="%s" fill="%s" font-size="%d">%s</text>`+"\n",
			chart.FormatCoord(x+18), chart.FormatCoord(rowY), svgTextColor, svgFontSize, escapeXML(entry.Name))
	}
	sb.WriteString("</g>\n")
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
