package schema

import "time"

// RunRecord represents a row from the leaderlens_compare_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	ReportCount   int32
	LeaderCount   int32
	MetricCount   int32
	Source        RunSource
	ConfigParams  *string
}

// RunReportRecord represents a row from the leaderlens_run_reports table.
type RunReportRecord struct {
	RunID       int64
	ReportIndex int32
	Title       string
	ReportDate  string
	LeaderCount int32
	MetricCount int32
}

// RunRecordsFromSummaries converts report listing rows into run-log rows for one run.
func RunRecordsFromSummaries(runID int64, summaries []ReportSummary) []RunReportRecord {
	out := make([]RunReportRecord, len(summaries))
	for i, s := range summaries {
		out[i] = RunReportRecord{
			RunID:       runID,
			ReportIndex: int32(s.Index),
			Title:       s.Title,
			ReportDate:  s.Date,
			LeaderCount: int32(s.LeaderCount),
			MetricCount: int32(s.MetricCount),
		}
	}
	return out
}
