// Package core has core logic for loading, comparing and charting leader reports.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/ingest"
	"github.com/huangsam/leaderlens/internal/metrics"
	"github.com/huangsam/leaderlens/internal/outwriter"
	"github.com/huangsam/leaderlens/internal/summary"
	"github.com/huangsam/leaderlens/schema"
)

// ErrNotEnoughReports is returned when a chart is requested for fewer than two reports.
var ErrNotEnoughReports = fmt.Errorf("at least %d reports are needed for a comparison", schema.MinComparableReports)

// ErrNoSummarizer is returned when a summary is requested without a configured model.
var ErrNoSummarizer = errors.New("no summarizer configured")

// ExecutorFunc defines the function signature for executing the comparison commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunLogManager) error

// ExecuteCompare loads the configured reports and prints the comparison tables.
// It serves as the main entry point for the 'compare' command.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.RunLogManager) error {
	start := time.Now()
	result, err := GetComparisonResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if !result.Comparable() && !shouldSuppressHeader(ctx) {
		contract.LogWarn("Comparison skipped", ErrNotEnoughReports)
	}
	return outwriter.WriteComparison(result, cfg, time.Since(start))
}

// ExecuteChart loads the configured reports and writes the line chart.
// It serves as the main entry point for the 'chart' command.
func ExecuteChart(ctx context.Context, cfg *contract.Config, mgr contract.RunLogManager) error {
	result, err := GetComparisonResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if !result.Comparable() {
		return ErrNotEnoughReports
	}
	return outwriter.WriteChart(*result.Geometry, cfg)
}

// ExecuteSummarize sends the first configured input file to the summarizer and prints the analysis.
// It serves as the main entry point for the 'summarize' command.
func ExecuteSummarize(ctx context.Context, cfg *contract.Config, s summary.Summarizer) error {
	if s == nil {
		return ErrNoSummarizer
	}
	if len(cfg.Inputs) == 0 {
		return ingest.ErrNoInputs
	}
	text, err := os.ReadFile(cfg.Inputs[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", cfg.Inputs[0], err)
	}
	result, err := SummarizeText(ctx, s, string(text))
	if err != nil {
		return err
	}
	return outwriter.WriteAnalysis(result, cfg)
}

// SummarizeText runs the summarizer and records the outcome.
func SummarizeText(ctx context.Context, s summary.Summarizer, text string) (schema.AnalysisResult, error) {
	if s == nil {
		return schema.AnalysisResult{}, ErrNoSummarizer
	}
	m := metrics.NewMetrics()
	result, err := s.Summarize(ctx, text)
	switch {
	case err != nil:
		m.RecordSummary("error")
		return schema.AnalysisResult{}, err
	case result.Parsed():
		m.RecordSummary("parsed")
	default:
		m.RecordSummary("raw")
	}
	return result, nil
}

// GetComparisonResults loads the configured inputs and compares them without printing.
func GetComparisonResults(ctx context.Context, cfg *contract.Config, mgr contract.RunLogManager) (schema.ComparisonResult, error) {
	batch, err := ingest.LoadBatch(ctx, cfg.Inputs)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	return CompareReports(ctx, cfg, mgr, batch.Reports, batch.Sources), nil
}

// CompareReports compares already decoded reports and records the run.
// Sources may be nil when the reports did not come from files.
func CompareReports(ctx context.Context, cfg *contract.Config, mgr contract.RunLogManager, reports []schema.InputReport, sources []string) schema.ComparisonResult {
	start := time.Now()
	store := runStoreFrom(mgr)
	ctx = beginRun(ctx, cfg, store, start)

	result := BuildComparison(reports, sources, cfg.Viewport)

	end := time.Now()
	endRun(ctx, store, result, end)
	if result.Comparable() {
		metrics.NewMetrics().RecordComparison(runSourceFrom(ctx), len(reports), end.Sub(start))
	}
	return result
}
