// Package schema has models, enums and small helpers shared by all parts of leaderlens.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LeaderEntry is one leader's score inside a single report.
type LeaderEntry struct {
	Name  string  `json:"name"`  // Merge key across reports
	Score float64 `json:"score"` // Numeric score, not required to be unique
}

// Metrics is an insertion-ordered mapping of metric name to value.
// JSON decoding keeps the key order of the source object.
type Metrics = orderedmap.OrderedMap[string, MetricValue]

// InputReport is one uploaded leader report; it is a single observation point on the x-axis.
type InputReport struct {
	Title             string        `json:"title"`
	Date              string        `json:"date"`
	Leaders           []LeaderEntry `json:"leaders"`
	AdditionalMetrics *Metrics      `json:"additionalMetrics,omitempty"`
}

// MetricCount returns how many additional metrics the report carries.
func (r InputReport) MetricCount() int {
	if r.AdditionalMetrics == nil {
		return 0
	}
	return r.AdditionalMetrics.Len()
}

// NewMetrics builds a Metrics map from pairs, keeping their order.
// A later pair with an existing name overwrites the value but keeps the first position.
func NewMetrics(pairs ...MetricPair) *Metrics {
	m := orderedmap.New[string, MetricValue]()
	for _, p := range pairs {
		m.Set(p.Name, p.Value)
	}
	return m
}

// MetricPair is a name/value tuple used to build Metrics.
type MetricPair struct {
	Name  string
	Value MetricValue
}

// ReportSummary is the listing row shown for every loaded report.
type ReportSummary struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	LeaderCount int    `json:"leader_count"`
	MetricCount int    `json:"metric_count"`
	Source      string `json:"source,omitempty"` // File path the report came from, if any
}

// SummarizeReports builds the listing rows for a report sequence.
func SummarizeReports(reports []InputReport, sources []string) []ReportSummary {
	out := make([]ReportSummary, len(reports))
	for i, r := range reports {
		out[i] = ReportSummary{
			Index:       i,
			Title:       r.Title,
			Date:        r.Date,
			LeaderCount: len(r.Leaders),
			MetricCount: r.MetricCount(),
		}
		if i < len(sources) {
			out[i].Source = sources[i]
		}
	}
	return out
}

// ReportTitles returns the titles of the reports in order.
func ReportTitles(reports []InputReport) []string {
	titles := make([]string, len(reports))
	for i, r := range reports {
		titles[i] = r.Title
	}
	return titles
}
