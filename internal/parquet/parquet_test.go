package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/leaderlens/schema"
)

// readAll reads every row of a Parquet file.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []schema.RunRecord {
	now := time.Now()
	end := now.Add(15 * time.Millisecond)
	duration := int32(15)
	params := `{"output":"json","precision":2}`
	return []schema.RunRecord{
		{
			RunID: 1, StartTime: now, EndTime: &end, RunDurationMs: &duration,
			ReportCount: 3, LeaderCount: 4, MetricCount: 2, Source: schema.CLISource, ConfigParams: &params,
		},
		{
			RunID: 2, StartTime: now.Add(time.Minute), Source: schema.HTTPSource, // still running
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(CompareRun))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "start_time", "end_time", "run_duration_ms",
		"report_count", "leader_count", "metric_count", "source", "config_params",
	} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRuns())

	require.NoError(t, WriteRunsParquet(data, outputPath))

	readData := readAll[CompareRun](t, outputPath)
	require.Len(t, readData, len(data))

	assert.Equal(t, int64(1), readData[0].RunID)
	assert.Equal(t, int32(3), readData[0].ReportCount)
	assert.Equal(t, "cli", readData[0].Source)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Microsecond)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
	assert.Equal(t, "http", readData[1].Source)
}

func TestWriteRunReportsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "run_reports.parquet")
	records := schema.RunRecordsFromSummaries(5, []schema.ReportSummary{
		{Index: 0, Title: "Q1", Date: "2024-03-31", LeaderCount: 2, MetricCount: 1},
		{Index: 1, Title: "Q2", Date: "2024-06-30", LeaderCount: 3},
	})

	require.NoError(t, WriteRunReportsParquet(ConvertRunReportRecords(records), outputPath))

	readData := readAll[RunReport](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, RunReport{RunID: 5, ReportIndex: 1, Title: "Q2", ReportDate: "2024-06-30", LeaderCount: 3}, readData[1])
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]CompareRun{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should have Parquet metadata even when empty")
	assert.Empty(t, readAll[CompareRun](t, outputPath))
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	err := WriteRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "runs.parquet"))
	assert.Error(t, err)
}

func TestConvertComparisonTable(t *testing.T) {
	table := schema.ComparisonTable{
		Titles: []string{"Q1", "Q2"},
		Leaders: []schema.LeaderRow{{
			Name:    "Alice",
			Values:  []schema.NullFloat{schema.Float(80), schema.Null()},
			Classes: []schema.CellClass{schema.NeutralCell, schema.MissingCell},
		}},
		Metrics: []schema.MetricRow{{
			Name:    "Status",
			Values:  []schema.MetricValue{schema.TextMetric("on track"), schema.NumberMetric(3)},
			Classes: []schema.CellClass{schema.NeutralCell, schema.NeutralCell},
		}},
	}

	cells := ConvertComparisonTable(table)
	require.Len(t, cells, 4)

	assert.Equal(t, LeaderKind, cells[0].Kind)
	require.NotNil(t, cells[0].Value)
	assert.Equal(t, 80.0, *cells[0].Value)
	assert.Nil(t, cells[1].Value)
	assert.Equal(t, "missing", cells[1].Class)
	assert.Equal(t, "Q2", cells[1].ReportTitle)

	assert.Equal(t, MetricKind, cells[2].Kind)
	require.NotNil(t, cells[2].Text)
	assert.Equal(t, "on track", *cells[2].Text)
	assert.Nil(t, cells[2].Value)
	require.NotNil(t, cells[3].Value)
	assert.Equal(t, 3.0, *cells[3].Value)

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonParquet(&buf, cells))

	reader := parquet.NewGenericReader[ComparisonCell](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(4), reader.NumRows())
}
