// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// WriteComparison prints a comparison using the configured output format.
func WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResults(w, result, cfg, duration)
	}, "Wrote comparison")
}

// WriteChart renders the chart geometry using the configured chart format.
func WriteChart(geom schema.ChartGeometry, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteChartResults(w, geom, cfg.ChartFormat)
	}, "Wrote chart")
}

// WriteAnalysis prints a report analysis using the configured output format.
func WriteAnalysis(result schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAnalysisResults(w, result, cfg)
	}, "Wrote analysis")
}

// WriteRunLogStatus prints the run log status using the configured output format.
func WriteRunLogStatus(status schema.RunLogStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRunLogStatusResults(w, status, cfg)
	}, "Wrote run log status")
}

// WriteChartResults dispatches on the chart format. Unknown formats fall back to SVG.
func WriteChartResults(w io.Writer, geom schema.ChartGeometry, format schema.OutputMode) error {
	switch format {
	case schema.JSONOut:
		return writeJSON(w, geom)
	case schema.PNGOut:
		return RenderPNG(w, geom)
	default:
		return RenderSVG(w, geom)
	}
}

// getMaxTableTitleWidth calculates the maximum width of a report title column
// based on terminal width and the number of report columns.
func getMaxTableTitleWidth(cfg *contract.Config, columns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Name and trend columns with borders/padding
	baseWidth := 40
	if columns <= 0 {
		columns = 1
	}

	available := (termWidth - baseWidth) / columns
	if available < schema.TickLabelMaxRunes {
		return schema.TickLabelMaxRunes
	}
	if available > 40 {
		return 40
	}
	return available
}

// formatDuration keeps the summary line readable.
func formatDuration(d time.Duration) string {
	return fmt.Sprint(d.Round(time.Microsecond))
}
