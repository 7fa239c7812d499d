package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/iocache"
	"github.com/huangsam/leaderlens/internal/summary"
	"github.com/huangsam/leaderlens/schema"
)

const twoReports = `{"reports": [
	{"title": "Q1 Review", "date": "2024-03-31", "leaders": [{"name": "Alice", "score": 80}, {"name": "Carol", "score": 60}]},
	{"title": "Q2 Review", "date": "2024-06-30", "leaders": [{"name": "Alice", "score": 90}, {"name": "Bob", "score": 70}],
	 "additionalMetrics": {"Team NPS": 45}}
]}`

type fakeSummarizer struct {
	result schema.AnalysisResult
	err    error
	text   string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (schema.AnalysisResult, error) {
	f.text = text
	return f.result, f.err
}

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:     contract.DefaultPrecision,
		Output:        schema.JSONOut,
		Viewport:      schema.DefaultViewport(),
		RunLogBackend: schema.NoneBackend,
		Listen:        contract.DefaultListen,
	}
}

func newTestServer(t *testing.T, mgr contract.RunLogManager, s *fakeSummarizer) *Server {
	t.Helper()
	var summarizer summary.Summarizer
	if s != nil {
		summarizer = s
	}
	srv, err := New(testConfig(), mgr, summarizer, zap.NewNop())
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = New(testConfig(), nil, nil, nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := do(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCompare(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/compare", twoReports)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Comparable())
	assert.Len(t, result.Reports, 2)

	names := make([]string, 0, len(result.Table.Leaders))
	for _, row := range result.Table.Leaders {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, names)
	assert.Equal(t, []string{"Q1 Review", "Q2 Review"}, result.Table.Titles)
	require.NotNil(t, result.Geometry)
	assert.Equal(t, schema.DefaultViewport(), result.Geometry.Viewport)
}

func TestCompareSingleReport(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body := `{"reports": [{"title": "Only", "date": "2024-01-01", "leaders": []}]}`
	rec := do(t, srv, http.MethodPost, "/api/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Comparable())
	assert.Len(t, result.Reports, 1)
	assert.Nil(t, result.Table)
}

func TestCompareViewport(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body := strings.Replace(twoReports, `{"reports"`, `{"viewport": {"width": 400, "height": 200, "grid_lines": 3, "padding_left": 10, "padding_right": 10, "padding_top": 10, "padding_bottom": 10}, "reports"`, 1)
	rec := do(t, srv, http.MethodPost, "/api/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Geometry)
	assert.Equal(t, float64(400), result.Geometry.Viewport.Width)
	assert.Len(t, result.Geometry.GridLines, 3)
}

func TestCompareBadRequests(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"reports": [`},
		{"missing reports", `{}`},
		{"null reports", `{"reports": null}`},
		{"reports not an array", `{"reports": {"title": "x"}}`},
		{"missing title", `{"reports": [{"date": "2024-01-01", "leaders": []}]}`},
		{"missing score", `{"reports": [{"title": "a", "date": "2024-01-01", "leaders": [{"name": "Alice"}]}]}`},
		{"viewport without plot area", strings.Replace(twoReports, `{"reports"`, `{"viewport": {"width": 100, "height": 100, "padding_left": 60, "padding_right": 60}, "reports"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/compare", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCompareRecordsHTTPRun(t *testing.T) {
	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, schema.HTTPSource, mock.Anything).Return(int64(3), nil)
	store.On("RecordReports", int64(3), mock.Anything).Return(nil)
	store.On("EndRun", int64(3), mock.Anything, contract.RunCounts{Reports: 2, Leaders: 3, Metrics: 1}).Return(nil)
	mgr := &iocache.MockRunLogManager{}
	mgr.On("GetRunStore").Return(store)

	srv := newTestServer(t, mgr, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/compare", twoReports)
	require.Equal(t, http.StatusOK, rec.Code)

	store.AssertExpectations(t)
}

func TestChartSVG(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := do(t, srv, http.MethodPost, "/api/v1/chart.svg", twoReports)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<svg"))
	assert.Contains(t, body, `data-leader="Alice"`)
	assert.Contains(t, body, `data-leader="Bob"`)
}

func TestChartSVGNeedsTwoReports(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body := `{"reports": [{"title": "Only", "date": "2024-01-01", "leaders": [{"name": "Alice", "score": 1}]}]}`
	rec := do(t, srv, http.MethodPost, "/api/v1/chart.svg", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSummarize(t *testing.T) {
	fake := &fakeSummarizer{result: schema.AnalysisResult{Analysis: &schema.ReportAnalysis{
		Summary:      "Strong quarter",
		OverallScore: 8.5,
	}}}
	srv := newTestServer(t, nil, fake)

	rec := do(t, srv, http.MethodPost, "/api/v1/summarize", `{"text": "Alice led the team"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Alice led the team", fake.text)

	var result schema.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Parsed())
	assert.Equal(t, "Strong quarter", result.Analysis.Summary)
	assert.InDelta(t, 8.5, result.Analysis.OverallScore, 1e-9)
}

func TestSummarizeErrors(t *testing.T) {
	t.Run("no summarizer", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		rec := do(t, srv, http.MethodPost, "/api/v1/summarize", `{"text": "x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("empty text", func(t *testing.T) {
		srv := newTestServer(t, nil, &fakeSummarizer{})
		rec := do(t, srv, http.MethodPost, "/api/v1/summarize", `{"text": "  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("model failure", func(t *testing.T) {
		srv := newTestServer(t, nil, &fakeSummarizer{err: errors.New("quota exceeded")})
		rec := do(t, srv, http.MethodPost, "/api/v1/summarize", `{"text": "x"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.NotContains(t, rec.Body.String(), "quota")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	_ = do(t, srv, http.MethodPost, "/api/v1/compare", twoReports)

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "leaderlens_http_request_duration_seconds")
	assert.Contains(t, body, `route="/api/v1/compare"`)
	assert.Contains(t, body, "leaderlens_comparisons_total")
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := do(t, srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
