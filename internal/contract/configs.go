package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/leaderlens/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 4
	DefaultListen    = "127.0.0.1:8080"
	DefaultLLMModel  = "gemini-2.0-flash"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// DefaultLLMBaseURL is the OpenAI-compatible endpoint used for summaries.
const DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// ValidLogFormats lists the accepted log encodings.
var ValidLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a comparison.
// This struct remains the "final, validated" config.
type Config struct {
	Inputs      []string // report files, directories or globs in x-axis order
	Precision   int
	Output      schema.OutputMode
	ChartFormat schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Viewport schema.Viewport

	RunLogBackend   schema.DatabaseBackend
	RunLogDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string

	LLMModel   string
	LLMBaseURL string
	LLMAPIKey  string // Please use env var as this is plaintext

	Listen  string
	Profile ProfileConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Inputs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Color           string `mapstructure:"color"`
	Width           int    `mapstructure:"width"`
	RunLogBackend   string `mapstructure:"runlog-backend"`
	RunLogDBConnect string `mapstructure:"runlog-db-connect"`
	LogLevel        string `mapstructure:"log-level"`
	LogFormat       string `mapstructure:"log-format"`
	Profile         string `mapstructure:"profile"`

	// --- Fields from chartCmd.Flags() ---
	Format      string `mapstructure:"format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`
	GridLines   int    `mapstructure:"grid-lines"`

	// --- Fields from summarizeCmd and serveCmd flags ---
	LLMModel   string `mapstructure:"llm-model"`
	LLMBaseURL string `mapstructure:"llm-base-url"`
	LLMAPIKey  string `mapstructure:"llm-api-key"`
	Listen     string `mapstructure:"listen"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Inputs != nil {
		clone.Inputs = make([]string, len(c.Inputs))
		copy(clone.Inputs, c.Inputs)
	}
	return &clone
}

// RunParams returns the settings recorded alongside a run in the run log.
func (c *Config) RunParams() map[string]any {
	params := map[string]any{
		"output":      string(c.Output),
		"precision":   c.Precision,
		"chart_width": c.Viewport.Width,
		"grid_lines":  c.Viewport.GridLines,
	}
	if len(c.Inputs) > 0 {
		params["inputs"] = strings.Join(c.Inputs, ",")
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processViewport(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processLogging(cfg, input); err != nil {
		return err
	}
	processLLM(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("runlog-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("runlog-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Inputs = input.Inputs
	cfg.OutputFile = input.OutputFile
	cfg.Profile = ProfileConfig{Enabled: input.Profile != "", Prefix: input.Profile}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 1. Color ---
	color := input.Color
	if color == "" {
		color = "yes"
	}
	colors, err := ParseBoolString(color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 2. Precision ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Output modes ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.ChartFormat = schema.OutputMode(strings.ToLower(input.Format))
	if cfg.ChartFormat == "" {
		cfg.ChartFormat = schema.SVGOut
	}
	if _, ok := schema.ValidChartModes[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be svg, png, json", input.Format)
	}
	return nil
}

// processViewport builds the chart viewport; zero values fall back to the defaults.
func processViewport(cfg *Config, input *ConfigRawInput) error {
	if input.ChartWidth < 0 || input.ChartHeight < 0 {
		return fmt.Errorf("chart dimensions cannot be negative (received %dx%d)", input.ChartWidth, input.ChartHeight)
	}
	if input.GridLines < 0 {
		return fmt.Errorf("grid-lines cannot be negative (received %d)", input.GridLines)
	}

	vp := schema.DefaultViewport()
	if input.ChartWidth > 0 {
		vp.Width = float64(input.ChartWidth)
	}
	if input.ChartHeight > 0 {
		vp.Height = float64(input.ChartHeight)
	}
	if input.GridLines > 0 {
		vp.GridLines = input.GridLines
	}
	if vp.PlotWidth() <= 0 || vp.PlotHeight() <= 0 {
		return fmt.Errorf("chart of %vx%v leaves no room for the plot area", vp.Width, vp.Height)
	}
	cfg.Viewport = vp
	return nil
}

// validateBackendConfigs validates the run log backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := input.RunLogBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.RunLogBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunLogBackend]; !ok {
		return fmt.Errorf("invalid runlog backend '%s'. must be sqlite, mysql, postgresql, none", input.RunLogBackend)
	}
	cfg.RunLogDBConnect = input.RunLogDBConnect
	return ValidateDatabaseConnectionString(cfg.RunLogBackend, cfg.RunLogDBConnect)
}

// processLogging validates the structured logger settings.
func processLogging(cfg *Config, input *ConfigRawInput) error {
	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, ok := ValidLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(input.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if _, ok := ValidLogFormats[cfg.LogFormat]; !ok {
		return fmt.Errorf("invalid log format '%s'. must be console, json", input.LogFormat)
	}
	return nil
}

// processLLM fills the summarizer and server settings. A missing API key is not an
// error here; only the commands that need a summarizer check it.
func processLLM(cfg *Config, input *ConfigRawInput) {
	cfg.LLMModel = strings.TrimSpace(input.LLMModel)
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultLLMModel
	}
	cfg.LLMBaseURL = strings.TrimSpace(input.LLMBaseURL)
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = DefaultLLMBaseURL
	}
	cfg.LLMAPIKey = strings.TrimSpace(input.LLMAPIKey)

	cfg.Listen = strings.TrimSpace(input.Listen)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
}
