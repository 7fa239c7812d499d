package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/leaderlens/core"
	"github.com/huangsam/leaderlens/internal/contract"
)

// chartCmd renders the leader score line chart.
var chartCmd = &cobra.Command{
	Use:   "chart <report.json|dir|glob>...",
	Short: "Chart leader scores across reports",
	Long: `Render one line per leader across a sequence of reports.

The x axis holds one tick per report, labeled with its title; the y axis runs from
zero to the highest score. A leader missing from a report leaves a gap in its line.
At least two reports are needed.

Formats:
  svg  - standalone SVG document (default)
  png  - raster image
  json - the computed chart geometry

Examples:
  # Write an SVG chart
  leaderlens chart reports/ --output-file leaders.svg

  # Larger PNG with more grid lines
  leaderlens chart q*.json --format png --chart-width 1200 --chart-height 600 --grid-lines 11 --output-file leaders.png`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(core.WithSuppressHeader(rootCtx), cfg, runLogManager); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}
