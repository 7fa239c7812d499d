package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/leaderlens/internal/logging"
	"github.com/huangsam/leaderlens/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the leaderlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to compare, chart and classify leader reports via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logging.Sync(logger) }()
		return mcp.StartMCPServer(rootCtx, cfg, runLogManager, logger)
	},
}
