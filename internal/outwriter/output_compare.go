package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/parquet"
	"github.com/huangsam/leaderlens/schema"
)

// Values of the kind column in long format output.
const (
	reportKind = "report"
	leaderKind = parquet.LeaderKind
	metricKind = parquet.MetricKind
)

// WriteComparisonResults outputs the comparison, dispatching based on the output format configured.
func WriteComparisonResults(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForComparison(w, result); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		var cells []parquet.ComparisonCell
		if result.Table != nil {
			cells = parquet.ConvertComparisonTable(*result.Table)
		}
		if err := parquet.WriteComparisonParquet(w, cells); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeComparisonTables(w, result, cfg, duration)
	}
	return nil
}

// writeComparisonTables writes the report listing followed by the leader and metric tables.
func writeComparisonTables(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	if err := writeReportListing(w, result.Reports); err != nil {
		return err
	}
	if result.Table == nil {
		_, err := fmt.Fprintf(w, "Loaded %d report(s). Add at least %d to compare.\n", len(result.Reports), schema.MinComparableReports)
		return err
	}

	fmtFloat, fmtMetric := createFormatters(cfg.Precision)
	titleWidth := getMaxTableTitleWidth(cfg, len(result.Table.Titles))
	titles := make([]string, len(result.Table.Titles))
	for i, title := range result.Table.Titles {
		titles[i] = contract.TruncateText(title, titleWidth)
	}

	if err := writeLeaderTable(w, *result.Table, titles, cfg, fmtFloat); err != nil {
		return err
	}
	if len(result.Table.Metrics) > 0 {
		if err := writeMetricTable(w, *result.Table, titles, cfg, fmtMetric); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Compared %d reports with %d leaders and %d metrics in %s. Run log backend: %s\n",
		len(result.Reports), len(result.Table.Leaders), len(result.Table.Metrics), formatDuration(duration), cfg.RunLogBackend)
	return err
}

// writeReportListing writes one row per loaded report.
func writeReportListing(w io.Writer, reports []schema.ReportSummary) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"#", "Title", "Date", "Leaders", "Metrics", "Source"})

	data := make([][]string, 0, len(reports))
	for _, r := range reports {
		data = append(data, []string{
			strconv.Itoa(r.Index + 1),
			r.Title,
			r.Date,
			strconv.Itoa(r.LeaderCount),
			strconv.Itoa(r.MetricCount),
			r.Source,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeLeaderTable writes one row per leader with a cell per report and a trend column.
func writeLeaderTable(w io.Writer, ct schema.ComparisonTable, titles []string, cfg *contract.Config, fmtFloat func(schema.NullFloat) string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	headers := append([]string{"Leader"}, titles...)
	headers = append(headers, "Trend")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(ct.Leaders))
	for _, row := range ct.Leaders {
		line := make([]string, 0, len(row.Values)+2)
		line = append(line, row.Name)
		for i, v := range row.Values {
			line = append(line, colorize(cfg, fmtFloat(v), row.Classes[i]))
		}
		trend := schema.FormatTrend(row.Trend)
		if cfg.UseColors {
			trend = contract.ColorizeTrend(trend, row.Trend)
		}
		line = append(line, trend)
		data = append(data, line)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeMetricTable writes one row per additional metric with a cell per report.
func writeMetricTable(w io.Writer, ct schema.ComparisonTable, titles []string, cfg *contract.Config, fmtMetric func(schema.MetricValue) string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(append([]string{"Metric"}, titles...))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(ct.Metrics))
	for _, row := range ct.Metrics {
		line := make([]string, 0, len(row.Values)+1)
		line = append(line, row.Name)
		for i, v := range row.Values {
			line = append(line, colorize(cfg, fmtMetric(v), row.Classes[i]))
		}
		data = append(data, line)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func colorize(cfg *contract.Config, text string, class schema.CellClass) string {
	if !cfg.UseColors {
		return text
	}
	return contract.ColorizeCell(text, class)
}

// writeCSVResultsForComparison writes the listing and every table cell in long format.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult) error {
	header := []string{"kind", "name", "report_index", "report_title", "value", "class"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range result.Reports {
			if err := cw.Write([]string{reportKind, r.Title, strconv.Itoa(r.Index), r.Title, r.Date, ""}); err != nil {
				return err
			}
		}
		if result.Table == nil {
			return nil
		}

		titles := result.Table.Titles
		for _, row := range result.Table.Leaders {
			for i, v := range row.Values {
				record := []string{leaderKind, row.Name, strconv.Itoa(i), titles[i], rawFloat(v), contract.GetCellLabel(row.Classes[i])}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
		for _, row := range result.Table.Metrics {
			for i, v := range row.Values {
				record := []string{metricKind, row.Name, strconv.Itoa(i), titles[i], rawMetric(v), contract.GetCellLabel(row.Classes[i])}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
