package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huangsam/leaderlens/internal/logging"
	"github.com/huangsam/leaderlens/internal/server"
	"github.com/huangsam/leaderlens/internal/summary"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderlens HTTP API",
	Long: `Serve comparisons, charts and summaries over HTTP.

Endpoints:
  GET  /health            - liveness check
  POST /api/v1/compare    - comparison of {"reports": [...]} as JSON
  POST /api/v1/chart.svg  - SVG chart of the same body
  POST /api/v1/summarize  - AI analysis of {"text": "..."}
  GET  /metrics           - Prometheus metrics

The summarize endpoint answers 503 when no llm-api-key is configured.

Examples:
  # Serve on the default address
  leaderlens serve

  # Listen on all interfaces with JSON logs
  leaderlens serve --listen :8080 --log-format json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logging.Sync(logger) }()

		var s summary.Summarizer
		if llm, err := newSummarizer(); err == nil {
			s = llm
		} else if errors.Is(err, summary.ErrMissingAPIKey) {
			logger.Warn("summaries disabled", zap.Error(err))
		} else {
			return err
		}

		srv, err := server.New(cfg, runLogManager, s, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx, cfg.Listen)
	},
}
