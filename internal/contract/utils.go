package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/leaderlens/schema"
)

// Color variables for console output.
var (
	MaxColor     = color.New(color.FgGreen, color.Bold) // MaxColor marks the best value of a row.
	MinColor     = color.New(color.FgRed)               // MinColor marks the worst value of a row.
	MissingColor = color.New(color.Faint)               // MissingColor dims absent cells.
	TrendUpColor = color.New(color.FgGreen)
	TrendDnColor = color.New(color.FgRed)
)

// RunLogDBFileName is the default SQLite file for the run log, placed in the home directory.
const RunLogDBFileName = ".leaderlens_runs.db"

// GetCellLabel returns the plain text of a cell class for CSV and JSON output.
func GetCellLabel(class schema.CellClass) string {
	return string(class)
}

// ColorizeCell applies the class color to already formatted cell text.
func ColorizeCell(text string, class schema.CellClass) string {
	switch class {
	case schema.MaxCell:
		return MaxColor.Sprint(text)
	case schema.MinCell:
		return MinColor.Sprint(text)
	case schema.MissingCell:
		return MissingColor.Sprint(text)
	default:
		return text
	}
}

// ColorizeTrend applies the direction color to already formatted trend text.
func ColorizeTrend(text string, t schema.Trend) string {
	switch t.Direction {
	case schema.TrendUp:
		return TrendUpColor.Sprint(text)
	case schema.TrendDown:
		return TrendDnColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a status line to stderr so that stdout stays clean for data.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetRunLogDBFilePath returns the path to the SQLite DB file for the run log.
func GetRunLogDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return RunLogDBFileName
	}
	return filepath.Join(homeDir, RunLogDBFileName)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
