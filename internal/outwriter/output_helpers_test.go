package outwriter

import (
	"github.com/huangsam/leaderlens/core/agg"
	"github.com/huangsam/leaderlens/core/algo"
	"github.com/huangsam/leaderlens/core/chart"
	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// sampleReports has Alice in both reports, Carol only in the first and Bob only in the second.
func sampleReports() []schema.InputReport {
	return []schema.InputReport{
		{
			Title:   "Q1 Leadership Review",
			Date:    "2024-03-31",
			Leaders: []schema.LeaderEntry{{Name: "Alice", Score: 80}, {Name: "Carol", Score: 60}},
			AdditionalMetrics: schema.NewMetrics(
				schema.MetricPair{Name: "Team NPS", Value: schema.NumberMetric(41)},
				schema.MetricPair{Name: "Status", Value: schema.TextMetric("on track")},
			),
		},
		{
			Title:   "Q2 Leadership Review",
			Date:    "2024-06-30",
			Leaders: []schema.LeaderEntry{{Name: "Alice", Score: 90}, {Name: "Bob", Score: 70}},
			AdditionalMetrics: schema.NewMetrics(
				schema.MetricPair{Name: "Team NPS", Value: schema.NumberMetric(45)},
			),
		},
	}
}

// sampleResult assembles a comparison the same way the core package does.
func sampleResult() schema.ComparisonResult {
	reports := sampleReports()
	titles := schema.ReportTitles(reports)
	dataset := agg.Aggregate(reports)

	table := schema.ComparisonTable{Titles: titles}
	for _, l := range dataset.Leaders {
		table.Leaders = append(table.Leaders, schema.LeaderRow{
			Name:    l.Name,
			Values:  l.Values,
			Classes: algo.ClassifyRow(l.Values),
			Trend:   algo.ComputeTrend(l.Values),
		})
	}
	for _, m := range dataset.Metrics {
		table.Metrics = append(table.Metrics, schema.MetricRow{
			Name:    m.Name,
			Values:  m.Values,
			Classes: algo.ClassifyMetricRow(m.Values),
		})
	}
	geometry := chart.ComputeGeometry(dataset, titles, schema.DefaultViewport())

	return schema.ComparisonResult{
		Reports:  schema.SummarizeReports(reports, []string{"q1.json", "q2.json"}),
		Dataset:  &dataset,
		Table:    &table,
		Geometry: &geometry,
	}
}

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:        output,
		ChartFormat:   schema.SVGOut,
		Precision:     contract.DefaultPrecision,
		Width:         160,
		Viewport:      schema.DefaultViewport(),
		RunLogBackend: schema.SQLiteBackend,
	}
}
