package core

import (
	"github.com/huangsam/leaderlens/core/agg"
	"github.com/huangsam/leaderlens/core/algo"
	"github.com/huangsam/leaderlens/core/chart"
	"github.com/huangsam/leaderlens/schema"
)

// BuildComparison produces the full comparison for a report sequence.
// The listing is always present; the dataset, table and geometry only exist once
// there are at least schema.MinComparableReports reports.
func BuildComparison(reports []schema.InputReport, sources []string, vp schema.Viewport) schema.ComparisonResult {
	result := schema.ComparisonResult{
		Reports: schema.SummarizeReports(reports, sources),
	}
	if len(reports) < schema.MinComparableReports {
		return result
	}

	titles := schema.ReportTitles(reports)
	dataset := agg.Aggregate(reports)
	table := BuildTable(dataset, titles)
	geometry := chart.ComputeGeometry(dataset, titles, vp)

	result.Dataset = &dataset
	result.Table = &table
	result.Geometry = &geometry
	return result
}

// BuildTable attaches cell classes and trends to every row of a dataset.
func BuildTable(dataset schema.ComparisonDataset, titles []string) schema.ComparisonTable {
	table := schema.ComparisonTable{
		Titles:  titles,
		Leaders: make([]schema.LeaderRow, len(dataset.Leaders)),
		Metrics: make([]schema.MetricRow, len(dataset.Metrics)),
	}
	for i, l := range dataset.Leaders {
		table.Leaders[i] = schema.LeaderRow{
			Name:    l.Name,
			Values:  l.Values,
			Classes: algo.ClassifyRow(l.Values),
			Trend:   algo.ComputeTrend(l.Values),
		}
	}
	for i, m := range dataset.Metrics {
		table.Metrics[i] = schema.MetricRow{
			Name:    m.Name,
			Values:  m.Values,
			Classes: algo.ClassifyMetricRow(m.Values),
		}
	}
	return table
}
