package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/leaderlens/schema"
)

func titles(reports []schema.InputReport) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Title
	}
	return out
}

func TestLoadReportsDirectory(t *testing.T) {
	batch, err := LoadBatch(context.Background(), []string{"testdata/q"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1 Leadership Review", "Q2 Leadership Review"}, titles(batch.Reports))
	assert.Equal(t, []string{filepath.Join("testdata", "q", "01_q1.json"), filepath.Join("testdata", "q", "02_q2.json")}, batch.Sources)
	assert.Equal(t, 2, batch.Reports[0].MetricCount())
	assert.Nil(t, batch.Reports[1].AdditionalMetrics)
}

func TestLoadReportsKeepsArgumentOrder(t *testing.T) {
	reports, err := LoadReports(context.Background(), []string{"testdata/h2.json", "testdata/q/02_q2.json", "testdata/q/01_q1.json"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q3", "Q4", "Q2 Leadership Review", "Q1 Leadership Review"}, titles(reports))
	assert.NotNil(t, reports[1].Leaders, "an empty leaders array is kept")
	assert.Empty(t, reports[1].Leaders)
}

func TestLoadReportsGlob(t *testing.T) {
	reports, err := LoadReports(context.Background(), []string{"testdata/q/*_q*.json"})
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestLoadReportsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadReports(ctx, nil)
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = LoadReports(ctx, []string{"testdata/nothing-*.json"})
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = LoadReports(ctx, []string{"testdata/does-not-exist.json"})
	assert.Error(t, err)

	_, err = LoadReports(ctx, []string{"testdata/bad/missing_score.json"})
	assert.ErrorIs(t, err, ErrInvalidReport)
	assert.Contains(t, err.Error(), "missing_score.json")
}

func TestLoadReportsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadReports(ctx, []string{"testdata/q"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadReportsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": `), 0o600))

	_, err := LoadReports(context.Background(), []string{path})
	assert.ErrorIs(t, err, ErrInvalidReport)
}

func TestDecodeReport(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"Q1","date":"2024-03-31","leaders":[{"name":"Alice","score":80}]}`, false},
		{"zero score", `{"title":"Q1","date":"d","leaders":[{"name":"Alice","score":0}]}`, false},
		{"extra fields ignored", `{"title":"Q1","date":"d","leaders":[],"owner":"x"}`, false},
		{"missing title", `{"date":"d","leaders":[]}`, true},
		{"missing date", `{"title":"Q1","leaders":[]}`, true},
		{"missing leaders", `{"title":"Q1","date":"d"}`, true},
		{"leaders not array", `{"title":"Q1","date":"d","leaders":{}}`, true},
		{"empty name", `{"title":"Q1","date":"d","leaders":[{"name":" ","score":1}]}`, true},
		{"missing score", `{"title":"Q1","date":"d","leaders":[{"name":"A"}]}`, true},
		{"string score", `{"title":"Q1","date":"d","leaders":[{"name":"A","score":"9"}]}`, true},
		{"bool metric", `{"title":"Q1","date":"d","leaders":[],"additionalMetrics":{"ok":true}}`, true},
		{"null metric", `{"title":"Q1","date":"d","leaders":[],"additionalMetrics":{"gone":null}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeReport(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReport)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeReports(t *testing.T) {
	body := `[
		{"title":"Q1","date":"d1","leaders":[{"name":"Alice","score":80}]},
		{"title":"Q2","date":"d2","leaders":[{"name":"Alice","score":90},{"name":"Bob","score":70}]}
	]`

	reports, err := DecodeReports(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, []schema.LeaderEntry{{Name: "Alice", Score: 90}, {Name: "Bob", Score: 70}}, reports[1].Leaders)

	_, err = DecodeReports(strings.NewReader(`[{"title":"Q1","date":"d"}]`))
	assert.ErrorIs(t, err, ErrInvalidReport)
	assert.Contains(t, err.Error(), "report 0")
}

func TestValidate(t *testing.T) {
	valid := schema.InputReport{Title: "Q1", Date: "d", Leaders: []schema.LeaderEntry{}}
	assert.NoError(t, Validate(valid))

	nilLeaders := valid
	nilLeaders.Leaders = nil
	assert.ErrorIs(t, Validate(nilLeaders), ErrInvalidReport)
}
