package schema

import "time"

// RunLogStatus represents the status of the run log store.
type RunLogStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalReports    int              `json:"total_reports"`
	RunsBySource    map[string]int   `json:"runs_by_source"`
	TableSizes      map[string]int64 `json:"table_sizes"`
	MigrationLevel  uint             `json:"migration_version"`
	MigrationsDirty bool             `json:"migration_dirty"`
}
