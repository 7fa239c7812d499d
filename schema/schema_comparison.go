package schema

// LeaderSeries is one leader's score across every report, indexed by report position.
type LeaderSeries struct {
	Name   string      `json:"name"`
	Values []NullFloat `json:"values"` // len == number of reports, absent when the leader is not in a report
}

// MetricSeries is one additional metric across every report, indexed by report position.
type MetricSeries struct {
	Name   string        `json:"name"`
	Values []MetricValue `json:"values"` // len == number of reports
}

// ComparisonDataset is the merged, report-indexed view of all leaders and metrics.
// Names appear once each, in first-seen order across the report sequence.
type ComparisonDataset struct {
	ReportCount int            `json:"report_count"`
	Leaders     []LeaderSeries `json:"leaders"`
	Metrics     []MetricSeries `json:"metrics"`
}

// LeaderRow is a LeaderSeries with its per-cell classes and trend attached.
type LeaderRow struct {
	Name    string      `json:"name"`
	Values  []NullFloat `json:"values"`
	Classes []CellClass `json:"classes"`
	Trend   Trend       `json:"trend"`
}

// MetricRow is a MetricSeries with its per-cell classes attached.
type MetricRow struct {
	Name    string        `json:"name"`
	Values  []MetricValue `json:"values"`
	Classes []CellClass   `json:"classes"`
}

// ComparisonTable is the tabular rendering of a dataset with highlighting applied.
type ComparisonTable struct {
	Titles  []string    `json:"titles"`
	Leaders []LeaderRow `json:"leaders"`
	Metrics []MetricRow `json:"metrics"`
}

// Trend summarizes the change between the first and last present value of a row.
type Trend struct {
	Valid        bool           `json:"valid"` // false when fewer than two values are present
	First        float64        `json:"first"`
	Last         float64        `json:"last"`
	Delta        float64        `json:"delta"`
	Percent      float64        `json:"percent"`       // rounded to one decimal
	PercentValid bool           `json:"percent_valid"` // false when First is zero
	Direction    TrendDirection `json:"direction,omitempty"`
}

// ComparisonResult is everything a single comparison run produces.
// Dataset, Table and Geometry are nil when fewer than MinComparableReports reports were given.
type ComparisonResult struct {
	Reports  []ReportSummary    `json:"reports"`
	Dataset  *ComparisonDataset `json:"dataset"`
	Table    *ComparisonTable   `json:"table"`
	Geometry *ChartGeometry     `json:"geometry"`
}

// Comparable reports whether the result carries a dataset.
func (r ComparisonResult) Comparable() bool {
	return r.Dataset != nil
}
