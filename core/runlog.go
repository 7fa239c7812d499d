package core

import (
	"context"
	"time"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// runStoreFrom returns the run store of the manager, or nil when run logging is off.
func runStoreFrom(mgr contract.RunLogManager) contract.RunStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetRunStore()
}

// beginRun opens a run log entry and stores its ID in the returned context.
// Failures only produce a warning; the comparison continues without tracking.
func beginRun(ctx context.Context, cfg *contract.Config, store contract.RunStore, start time.Time) context.Context {
	if store == nil {
		return ctx
	}
	runID, err := store.BeginRun(start, runSourceFrom(ctx), cfg.RunParams())
	if err != nil {
		contract.LogWarn("Run log initialization failed", err)
		return ctx
	}
	if runID <= 0 {
		return ctx
	}
	return withRunID(ctx, runID)
}

// endRun records the listing and counts of a finished comparison.
func endRun(ctx context.Context, store contract.RunStore, result schema.ComparisonResult, end time.Time) {
	runID, ok := getRunID(ctx)
	if store == nil || !ok {
		return
	}
	if err := store.RecordReports(runID, schema.RunRecordsFromSummaries(runID, result.Reports)); err != nil {
		contract.LogWarn("Failed to record run reports", err)
	}
	counts := contract.RunCounts{Reports: len(result.Reports)}
	if result.Dataset != nil {
		counts.Leaders = len(result.Dataset.Leaders)
		counts.Metrics = len(result.Dataset.Metrics)
	}
	if err := store.EndRun(runID, end, counts); err != nil {
		contract.LogWarn("Failed to finalize run log entry", err)
	}
}
