package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/iocache"
	"github.com/huangsam/leaderlens/schema"
)

// testConfig returns a validated config writing to a file under the test temp dir.
func testConfig(t *testing.T, output schema.OutputMode, inputs ...string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Inputs:      inputs,
		Precision:   contract.DefaultPrecision,
		Output:      output,
		ChartFormat: schema.SVGOut,
		OutputFile:  filepath.Join(t.TempDir(), "out"),
		Viewport:    schema.DefaultViewport(),
	}
}

// fakeSummarizer returns a fixed result and remembers the text it got.
type fakeSummarizer struct {
	result schema.AnalysisResult
	err    error
	got    string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (schema.AnalysisResult, error) {
	f.got = text
	return f.result, f.err
}

// TestExecuteCompare tests the main comparison entry point with run logging.
func TestExecuteCompare(t *testing.T) {
	ctx := context.Background()

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, schema.CLISource, mock.Anything).Return(int64(7), nil)
	store.On("RecordReports", int64(7), mock.MatchedBy(func(rows []schema.RunReportRecord) bool {
		return len(rows) == 2 && rows[0].Title == "Q1 Leadership Review" && rows[1].LeaderCount == 2
	})).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, contract.RunCounts{Reports: 2, Leaders: 3, Metrics: 2}).Return(nil)

	mgr := &iocache.MockRunLogManager{}
	mgr.On("GetRunStore").Return(store)

	cfg := testConfig(t, schema.JSONOut, "testdata/01_q1.json", "testdata/02_q2.json")
	require.NoError(t, ExecuteCompare(ctx, cfg, mgr))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "reports")
	assert.Contains(t, decoded, "table")

	mgr.AssertExpectations(t)
	store.AssertExpectations(t)
}

// TestExecuteCompareSingleReport tests that one report still prints the listing.
func TestExecuteCompareSingleReport(t *testing.T) {
	mgr := &iocache.MockRunLogManager{}
	mgr.On("GetRunStore").Return(nil) // No run logging for test

	cfg := testConfig(t, schema.CSVOut, "testdata/01_q1.json")
	require.NoError(t, ExecuteCompare(WithSuppressHeader(context.Background()), cfg, mgr))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "report,")
	assert.NotContains(t, string(data), "leader,")
	mgr.AssertExpectations(t)
}

// TestExecuteCompareMissingInput tests that load errors are returned before any run is logged.
func TestExecuteCompareMissingInput(t *testing.T) {
	mgr := &iocache.MockRunLogManager{}
	cfg := testConfig(t, schema.TextOut, "testdata/does_not_exist.json")

	err := ExecuteCompare(context.Background(), cfg, mgr)
	assert.Error(t, err)
	mgr.AssertNotCalled(t, "GetRunStore")
}

// TestExecuteChart tests the chart entry point.
func TestExecuteChart(t *testing.T) {
	t.Run("svg", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "testdata/01_q1.json", "testdata/02_q2.json")
		require.NoError(t, ExecuteChart(context.Background(), cfg, nil))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
		assert.Contains(t, string(data), "Alice")
	})

	t.Run("not enough reports", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "testdata/01_q1.json")
		err := ExecuteChart(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, ErrNotEnoughReports)
	})
}

// TestCompareReportsRunLogFailure tests that run log errors never fail a comparison.
func TestCompareReportsRunLogFailure(t *testing.T) {
	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, schema.HTTPSource, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockRunLogManager{}
	mgr.On("GetRunStore").Return(store)

	reports := []schema.InputReport{
		{Title: "A", Date: "2024-01-01", Leaders: []schema.LeaderEntry{{Name: "X", Score: 1}}},
		{Title: "B", Date: "2024-02-01", Leaders: []schema.LeaderEntry{{Name: "X", Score: 2}}},
	}
	ctx := WithRunSource(context.Background(), schema.HTTPSource)
	result := CompareReports(ctx, testConfig(t, schema.JSONOut), mgr, reports, nil)

	require.True(t, result.Comparable())
	assert.Equal(t, []string{"A", "B"}, result.Table.Titles)
	store.AssertNotCalled(t, "RecordReports", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

// TestExecuteSummarize tests the summary entry point.
func TestExecuteSummarize(t *testing.T) {
	t.Run("parsed", func(t *testing.T) {
		s := &fakeSummarizer{result: schema.AnalysisResult{
			Analysis: &schema.ReportAnalysis{Summary: "Solid quarter", OverallScore: 8},
		}}
		cfg := testConfig(t, schema.JSONOut, "testdata/summary_notes.txt")
		require.NoError(t, ExecuteSummarize(context.Background(), cfg, s))
		assert.Contains(t, s.got, "Alice improved delivery")

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Solid quarter")
	})

	t.Run("no summarizer", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "testdata/summary_notes.txt")
		assert.ErrorIs(t, ExecuteSummarize(context.Background(), cfg, nil), ErrNoSummarizer)
	})

	t.Run("model error", func(t *testing.T) {
		s := &fakeSummarizer{err: errors.New("quota exceeded")}
		_, err := SummarizeText(context.Background(), s, "notes")
		assert.EqualError(t, err, "quota exceeded")
	})
}
