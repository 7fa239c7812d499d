// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/leaderlens/schema"
)

// RunLogManager defines the interface for managing the run log store.
// This allows the run log layer to be mocked for testing.
type RunLogManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for recording comparison runs.
// It only ever appends metadata; comparisons never read from it.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, source schema.RunSource, configParams map[string]any) (int64, error)

	// RecordReports stores the listing rows of the reports compared in a run
	RecordReports(runID int64, reports []schema.RunReportRecord) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, counts RunCounts) error

	// GetStatus returns status information about the run log
	GetStatus() (schema.RunLogStatus, error)

	// GetAllRuns retrieves every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunReports retrieves every recorded report row, ordered by run and position
	GetAllRunReports() ([]schema.RunReportRecord, error)

	// Close closes the underlying connection
	Close() error
}

// RunCounts summarizes the size of a finished comparison.
type RunCounts struct {
	Reports int
	Leaders int
	Metrics int
}
