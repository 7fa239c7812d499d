package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("info", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("trace", "console")
	assert.Error(t, err)

	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("debug", "json", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("compared reports", zap.Int("reports", 2))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "compared reports", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "leaderlens", entry["logger"])
	assert.EqualValues(t, 2, entry["reports"])
	assert.Contains(t, entry, "ts")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("warn", "console", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestIsStdoutSyncError(t *testing.T) {
	assert.True(t, isStdoutSyncError(syscall.EINVAL))
	assert.True(t, isStdoutSyncError(fmt.Errorf("sync: %w", syscall.ENOTTY)))
	assert.False(t, isStdoutSyncError(syscall.EPERM))
	assert.False(t, isStdoutSyncError(assert.AnError))
}
