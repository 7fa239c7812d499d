package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/iocache"
	"github.com/huangsam/leaderlens/internal/outwriter"
	"github.com/huangsam/leaderlens/schema"
)

// runLogConfig reads the run log backend settings without the full shared setup.
func runLogConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("runlog-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid runlog backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("runlog-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RunLogBackend = backend
	cfg.RunLogDBConnect = connStr
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// runsSetup loads minimal configuration and opens the run log store.
func runsSetup(_ *cobra.Command, _ []string) error {
	if err := runLogConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.RunLogBackend, cfg.RunLogDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run log: %w", err)
	}
	return nil
}

// runsMigrateSetup loads minimal configuration without opening the store,
// so migrations can run on a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := runLogConfig(); err != nil {
		return err
	}
	// For SQLite backend with empty connection string, use default path
	if cfg.RunLogBackend == schema.SQLiteBackend && cfg.RunLogDBConnect == "" {
		cfg.RunLogDBConnect = contract.GetRunLogDBFilePath()
	}
	return nil
}

// runsCmd focused on run log management.
//
// Note: runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by the comparison commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the log of comparison runs",
	Long: `Manage the run log, an append-only record of every comparison.

Each run stores its start and end time, duration, source (cli, http or mcp),
report, leader and metric counts, and one row per compared report. Comparisons
never read the run log back.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run log statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check the run log
  leaderlens runs status

  # Export for analysis in pandas/DuckDB
  leaderlens runs export --output-file leaderlens-runs`,
}

// runsClearCmd clears the run log.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs and their report rows.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the run log tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  leaderlens runs export --output-file backup
  leaderlens runs clear`,
	PreRunE: runLogConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFile := contract.GetRunLogDBFilePath()
		if cfg.RunLogBackend == schema.SQLiteBackend && cfg.RunLogDBConnect != "" {
			dbFile = cfg.RunLogDBConnect
		}
		if err := iocache.ClearRunLog(cfg.RunLogBackend, dbFile, cfg.RunLogDBConnect); err != nil {
			contract.LogFatal("Failed to clear run log", err)
		}
		fmt.Println("Run log cleared successfully.")
	},
}

// runsStatusCmd shows run log status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run log statistics and connection details",
	Long: `Show the backend, connection state, number of runs and report rows,
and the timestamps of the first and last run.

Examples:
  leaderlens runs status
  leaderlens runs status --output json`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run log status", err)
		}
		if err := outwriter.WriteRunLogStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print run log status", err)
		}
	},
}

// runsExportCmd exports the run log to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run log to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet.

Writes two files named after --output-file:
  <prefix>.runs.parquet        - one row per run
  <prefix>.run_reports.parquet - one row per compared report

Examples:
  leaderlens runs export --output-file leaderlens
  duckdb -c "SELECT source, count(*) FROM read_parquet('leaderlens.runs.parquet') GROUP BY 1"`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunLogExport(iocache.Manager.GetRunStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export run log", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run log.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions of the run log.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  leaderlens runs migrate

  # Migrate to specific version
  leaderlens runs migrate --target-version 1

  # Rollback to initial state
  leaderlens runs migrate --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRunLog(cfg.RunLogBackend, cfg.RunLogDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Run log migrations applied successfully.")
	},
}

// runLogConfigWrapper wraps runLogConfig to provide PreRunE for commands that manage
// the database themselves.
func runLogConfigWrapper(_ *cobra.Command, _ []string) error {
	return runLogConfig()
}
