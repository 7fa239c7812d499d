package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/leaderlens/core"
	"github.com/huangsam/leaderlens/internal/contract"
)

// compareCmd merges reports into the comparison tables.
var compareCmd = &cobra.Command{
	Use:   "compare <report.json|dir|glob>...",
	Short: "Compare leader scores across reports",
	Long: `Merge a sequence of leader reports into one comparison.

Reports are compared in argument order; a directory contributes its *.json files
in lexical order and a file holding a JSON array contributes every report in it.

The output lists every loaded report, then a table with one row per leader and one
column per report. The highest score of a row is highlighted as max, the lowest as
min, and leaders absent from a report show "-". A trend column compares the first
and last score of each leader. Additional metrics get a second table.

Examples:
  # Compare two quarterly reviews
  leaderlens compare q1.json q2.json

  # Compare every report in a folder
  leaderlens compare reports/

  # Export the comparison for a spreadsheet
  leaderlens compare reports/*.json --output csv --output-file comparison.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, runLogManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
