package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/parquet"
)

// ErrNoRunData is returned when an export finds no recorded runs.
var ErrNoRunData = errors.New("no run log data found to export")

// ExportFileNames returns the Parquet files written for an output prefix.
func ExportFileNames(prefix string) (runsFile, reportsFile string) {
	return prefix + ".runs.parquet", prefix + ".run_reports.parquet"
}

// ExecuteRunLogExport exports the run log of store to two Parquet files named after prefix.
// Progress lines go to w.
func ExecuteRunLogExport(store contract.RunStore, prefix string, w io.Writer) error {
	if prefix == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run log is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run log status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoRunData
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	reports, err := store.GetAllRunReports()
	if err != nil {
		return fmt.Errorf("failed to retrieve run reports: %w", err)
	}

	runsFile, reportsFile := ExportFileNames(prefix)

	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetReports := parquet.ConvertRunReportRecords(reports)
	if err := parquet.WriteRunReportsParquet(parquetReports, reportsFile); err != nil {
		return fmt.Errorf("failed to write run reports: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report rows to: %s\n", len(parquetReports), reportsFile)

	return nil
}
