package schema

// Viewport describes the drawing surface of the line chart in pixels.
type Viewport struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	GridLines     int     `json:"grid_lines"`
	PaddingLeft   float64 `json:"padding_left"`
	PaddingRight  float64 `json:"padding_right"`
	PaddingTop    float64 `json:"padding_top"`
	PaddingBottom float64 `json:"padding_bottom"`
}

// Default viewport settings.
const (
	DefaultChartWidth    = 800
	DefaultChartHeight   = 400
	DefaultGridLines     = 6
	DefaultChartPadding  = 50
	TickLabelMaxRunes    = 15
	TickLabelEllipsis    = "..."
	PointRadius          = 4
	SeriesStrokeWidth    = 2
	TickLabelOffset      = 30 // below the floor
	GridLabelOffsetX     = 20 // left of the plot area
	GridLabelBaselineAdj = 5
)

// DefaultViewport returns the 800x400 viewport with a 700x350 plot area.
func DefaultViewport() Viewport {
	return Viewport{
		Width:         DefaultChartWidth,
		Height:        DefaultChartHeight,
		GridLines:     DefaultGridLines,
		PaddingLeft:   DefaultChartPadding,
		PaddingRight:  DefaultChartPadding,
		PaddingTop:    0,
		PaddingBottom: DefaultChartPadding,
	}
}

// PlotLeft is the x coordinate of the first report.
func (v Viewport) PlotLeft() float64 { return v.PaddingLeft }

// PlotRight is the x coordinate of the last report.
func (v Viewport) PlotRight() float64 { return v.Width - v.PaddingRight }

// PlotWidth is the horizontal extent of the plot area.
func (v Viewport) PlotWidth() float64 { return v.PlotRight() - v.PlotLeft() }

// Floor is the y coordinate of the value zero.
func (v Viewport) Floor() float64 { return v.Height - v.PaddingBottom }

// Ceiling is the y coordinate of the maximum value.
func (v Viewport) Ceiling() float64 { return v.PaddingTop }

// PlotHeight is the vertical extent of the plot area.
func (v Viewport) PlotHeight() float64 { return v.Floor() - v.Ceiling() }

// ChartPoint is a single plotted value.
type ChartPoint struct {
	ReportIndex int     `json:"report_index"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Value       float64 `json:"value"`
}

// GridLine is a horizontal reference line with its value label.
type GridLine struct {
	Index  int     `json:"index"`
	Y      float64 `json:"y"`
	X1     float64 `json:"x1"`
	X2     float64 `json:"x2"`
	Label  string  `json:"label"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// AxisTick is the x-axis label of one report.
type AxisTick struct {
	ReportIndex int     `json:"report_index"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Label       string  `json:"label"` // truncated for display
	Title       string  `json:"title"` // untouched
}

// SeriesGeometry is the polyline and markers of one leader.
type SeriesGeometry struct {
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Points   []ChartPoint   `json:"points"`
	Segments [][]ChartPoint `json:"segments"` // contiguous runs of present values
	Path     string         `json:"path"`     // SVG path data, empty when there are no points
}

// LegendEntry maps a leader to its series color.
type LegendEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ChartGeometry is the fully computed, renderer-independent line chart.
type ChartGeometry struct {
	Viewport  Viewport         `json:"viewport"`
	MaxValue  float64          `json:"max_value"`
	GridLines []GridLine       `json:"grid_lines"`
	XTicks    []AxisTick       `json:"x_ticks"`
	Series    []SeriesGeometry `json:"series"`
	Legend    []LegendEntry    `json:"legend"`
}
