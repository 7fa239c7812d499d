// Package agg has aggregation logic for merging leader reports into a comparison dataset.
package agg

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/huangsam/leaderlens/schema"
)

// Aggregate merges an ordered report sequence into a ComparisonDataset.
//
// Every leader and metric name seen in any report appears exactly once, in first-seen
// order. Each series has one value per report; reports that do not mention a name
// leave an explicit absent value. When a report lists the same leader twice, the
// later entry wins. Aggregate is pure and total: zero reports give an empty dataset.
func Aggregate(reports []schema.InputReport) schema.ComparisonDataset {
	n := len(reports)

	// 1. Merge leader scores
	leaders := orderedmap.New[string, []schema.NullFloat]()
	for i, report := range reports {
		for _, entry := range report.Leaders {
			values, ok := leaders.Get(entry.Name)
			if !ok {
				values = make([]schema.NullFloat, n)
				leaders.Set(entry.Name, values)
			}
			values[i] = schema.Float(entry.Score)
		}
	}

	// 2. Merge additional metrics
	metrics := orderedmap.New[string, []schema.MetricValue]()
	for i, report := range reports {
		if report.AdditionalMetrics == nil {
			continue
		}
		for p := report.AdditionalMetrics.Oldest(); p != nil; p = p.Next() {
			values, ok := metrics.Get(p.Key)
			if !ok {
				values = newMissingMetrics(n)
				metrics.Set(p.Key, values)
			}
			values[i] = p.Value
		}
	}

	// 3. Flatten in first-seen order
	dataset := schema.ComparisonDataset{
		ReportCount: n,
		Leaders:     make([]schema.LeaderSeries, 0, leaders.Len()),
		Metrics:     make([]schema.MetricSeries, 0, metrics.Len()),
	}
	for p := leaders.Oldest(); p != nil; p = p.Next() {
		dataset.Leaders = append(dataset.Leaders, schema.LeaderSeries{Name: p.Key, Values: p.Value})
	}
	for p := metrics.Oldest(); p != nil; p = p.Next() {
		dataset.Metrics = append(dataset.Metrics, schema.MetricSeries{Name: p.Key, Values: p.Value})
	}
	return dataset
}

// newMissingMetrics returns n explicitly missing metric values.
func newMissingMetrics(n int) []schema.MetricValue {
	values := make([]schema.MetricValue, n)
	for i := range values {
		values[i] = schema.MissingMetric()
	}
	return values
}
