package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// WriteRunLogStatusResults prints the run log status as JSON or as plain lines.
func WriteRunLogStatusResults(w io.Writer, status schema.RunLogStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, status)
	}

	lines := []string{
		fmt.Sprintf("Run Log Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Total Runs: %d", status.TotalRuns))
		if status.TotalRuns > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Run ID: %d", status.LastRunID),
				fmt.Sprintf("Last Run: %s", status.LastRunTime.Local().Format(statusTimeLayout)),
				fmt.Sprintf("Oldest Run: %s", status.OldestRunTime.Local().Format(statusTimeLayout)),
				fmt.Sprintf("Total Reports Compared: %d", status.TotalReports),
				"Runs By Source:",
			)
			for _, source := range sortedKeys(status.RunsBySource) {
				lines = append(lines, fmt.Sprintf("  %s: %d", source, status.RunsBySource[source]))
			}
		}
		lines = append(lines, "Table Sizes:")
		for _, table := range sortedKeys(status.TableSizes) {
			lines = append(lines, fmt.Sprintf("  %s: %d rows", table, status.TableSizes[table]))
		}
		dirty := ""
		if status.MigrationsDirty {
			dirty = " (dirty)"
		}
		lines = append(lines, fmt.Sprintf("Migration Version: %d%s", status.MigrationLevel, dirty))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
