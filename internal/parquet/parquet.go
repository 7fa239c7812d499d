// Package parquet provides data structures and functions for exporting comparison
// and run log data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/leaderlens/schema"
)

// Cell kinds of a ComparisonCell row.
const (
	LeaderKind = "leader"
	MetricKind = "metric"
)

// CompareRun represents a single comparison run with metadata.
// This struct maps to the leaderlens_compare_runs database table.
type CompareRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the comparison began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the comparison completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	ReportCount int32  `parquet:"report_count,snappy"`
	LeaderCount int32  `parquet:"leader_count,snappy"`
	MetricCount int32  `parquet:"metric_count,snappy"`
	Source      string `parquet:"source,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunReport represents one report of a recorded run.
// This struct maps to the leaderlens_run_reports database table.
type RunReport struct {
	RunID       int64  `parquet:"run_id,snappy"`
	ReportIndex int32  `parquet:"report_index,snappy"`
	Title       string `parquet:"title,snappy"`
	ReportDate  string `parquet:"report_date,snappy"`
	LeaderCount int32  `parquet:"leader_count,snappy"`
	MetricCount int32  `parquet:"metric_count,snappy"`
}

// ComparisonCell is one cell of a comparison table in long format.
// Value holds numeric cells and Text holds text metrics; both are null for missing cells.
type ComparisonCell struct {
	Kind        string   `parquet:"kind,dict,snappy"`
	Name        string   `parquet:"name,dict,snappy"`
	ReportIndex int32    `parquet:"report_index,snappy"`
	ReportTitle string   `parquet:"report_title,dict,snappy"`
	Value       *float64 `parquet:"value,optional,snappy"`
	Text        *string  `parquet:"text,optional,snappy"`
	Class       string   `parquet:"class,dict,snappy"`
}

// WriteRunsParquet writes a slice of CompareRun structs to a Parquet file.
func WriteRunsParquet(data []CompareRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRunReportsParquet writes a slice of RunReport structs to a Parquet file.
func WriteRunReportsParquet(data []RunReport, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteComparisonParquet writes comparison cells to w.
func WriteComparisonParquet(w io.Writer, data []ComparisonCell) error {
	return writeRows(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// writeRows infers the schema from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to CompareRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []CompareRun {
	result := make([]CompareRun, len(records))
	for i, record := range records {
		result[i] = CompareRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			ReportCount:   record.ReportCount,
			LeaderCount:   record.LeaderCount,
			MetricCount:   record.MetricCount,
			Source:        string(record.Source),
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRunReportRecords converts schema.RunReportRecord to RunReport for Parquet export.
func ConvertRunReportRecords(records []schema.RunReportRecord) []RunReport {
	result := make([]RunReport, len(records))
	for i, record := range records {
		result[i] = RunReport(record)
	}
	return result
}

// ConvertComparisonTable flattens a comparison table into one row per cell,
// leaders first, then metrics, each in row order.
func ConvertComparisonTable(table schema.ComparisonTable) []ComparisonCell {
	var cells []ComparisonCell
	for _, row := range table.Leaders {
		for i, v := range row.Values {
			cell := ComparisonCell{
				Kind:        LeaderKind,
				Name:        row.Name,
				ReportIndex: int32(i),
				ReportTitle: titleAt(table.Titles, i),
				Class:       string(row.Classes[i]),
			}
			if v.Valid {
				f := v.Float64
				cell.Value = &f
			}
			cells = append(cells, cell)
		}
	}
	for _, row := range table.Metrics {
		for i, v := range row.Values {
			cell := ComparisonCell{
				Kind:        MetricKind,
				Name:        row.Name,
				ReportIndex: int32(i),
				ReportTitle: titleAt(table.Titles, i),
				Class:       string(row.Classes[i]),
			}
			switch v.Kind {
			case schema.MetricNumber:
				f := v.Number
				cell.Value = &f
			case schema.MetricText:
				s := v.Text
				cell.Text = &s
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

func titleAt(titles []string, i int) string {
	if i < len(titles) {
		return titles[i]
	}
	return ""
}
