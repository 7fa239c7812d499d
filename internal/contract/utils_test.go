package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/leaderlens/schema"
)

func TestColorizeCell(t *testing.T) {
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	tests := []struct {
		class     schema.CellClass
		wantColor bool
	}{
		{schema.MaxCell, true},
		{schema.MinCell, true},
		{schema.MissingCell, true},
		{schema.NeutralCell, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			got := ColorizeCell("80.00", tt.class)
			assert.Contains(t, got, "80.00")
			if tt.wantColor {
				assert.Contains(t, got, "\x1b[", "expected ANSI escape codes")
			} else {
				assert.Equal(t, "80.00", got)
			}
		})
	}
}

func TestColorizeTrend(t *testing.T) {
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	assert.Contains(t, ColorizeTrend("↑ 1.0%", schema.Trend{Valid: true, Direction: schema.TrendUp}), "\x1b[")
	assert.Contains(t, ColorizeTrend("↓ 1.0%", schema.Trend{Valid: true, Direction: schema.TrendDown}), "\x1b[")
	assert.Equal(t, "-", ColorizeTrend("-", schema.Trend{}))
}

func TestGetCellLabel(t *testing.T) {
	assert.Equal(t, "max", GetCellLabel(schema.MaxCell))
	assert.Equal(t, "missing", GetCellLabel(schema.MissingCell))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetRunLogDBFilePath(t *testing.T) {
	path := GetRunLogDBFilePath()

	assert.NotEmpty(t, path)
	assert.Contains(t, path, RunLogDBFileName)

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth int
		want     string
	}{
		{"Alice", 10, "Alice"},
		{"Alexandria Ocasio", 10, "Alexand..."},
		{"Alexandria", 3, "Alexandria"}, // too narrow to truncate
		{"Zoë Müller-Lüdenscheidt", 8, "Zoë M..."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
