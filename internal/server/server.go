// Package server provides the HTTP API of leaderlens.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/huangsam/leaderlens/core"
	"github.com/huangsam/leaderlens/core/chart"
	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/ingest"
	"github.com/huangsam/leaderlens/internal/metrics"
	"github.com/huangsam/leaderlens/internal/outwriter"
	"github.com/huangsam/leaderlens/internal/summary"
	"github.com/huangsam/leaderlens/schema"
)

const (
	maxBodySize     = "4M"
	shutdownTimeout = 10 * time.Second
)

// Server provides HTTP endpoints for comparisons, charts and summaries.
type Server struct {
	echo       *echo.Echo
	logger     *zap.Logger
	cfg        *contract.Config
	mgr        contract.RunLogManager
	summarizer summary.Summarizer
	metrics    *metrics.Metrics
}

// New creates a new HTTP server. The summarizer and run log manager may be nil.
func New(cfg *contract.Config, mgr contract.RunLogManager, s summary.Summarizer, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:       e,
		logger:     logger,
		cfg:        cfg,
		mgr:        mgr,
		summarizer: s,
		metrics:    metrics.NewMetrics(),
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(srv.observe)

	srv.registerRoutes()
	return srv, nil
}

// observe logs every request and records its latency by route pattern.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err) // commit the error response so the status below is final
		}
		duration := time.Since(start)
		status := c.Response().Status

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordRequest(c.Request().Method, route, status, duration)
		s.logger.Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
		return nil
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/compare", s.handleCompare)
	v1.POST("/chart.svg", s.handleChartSVG)
	v1.POST("/summarize", s.handleSummarize)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server", zap.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server start: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down http server")
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// CompareRequest is the request body for POST /api/v1/compare and /api/v1/chart.svg.
// Reports stays raw so that it passes through the same validation as report files.
type CompareRequest struct {
	Reports  json.RawMessage  `json:"reports"`
	Viewport *schema.Viewport `json:"viewport,omitempty"`
}

// SummarizeRequest is the request body for POST /api/v1/summarize.
type SummarizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleCompare returns the full comparison; dataset, table and geometry are null below two reports.
func (s *Server) handleCompare(c echo.Context) error {
	result, err := s.compare(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// handleChartSVG renders the comparison chart.
func (s *Server) handleChartSVG(c echo.Context) error {
	result, err := s.compare(c)
	if err != nil {
		return err
	}
	if !result.Comparable() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, core.ErrNotEnoughReports.Error())
	}
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(outwriter.BuildSVG(*result.Geometry)))
}

// handleSummarize asks the configured model for a report analysis.
func (s *Server) handleSummarize(c echo.Context) error {
	if s.summarizer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, core.ErrNoSummarizer.Error())
	}

	var req SummarizeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid summarize request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}

	result, err := core.SummarizeText(c.Request().Context(), s.summarizer, req.Text)
	if err != nil {
		s.logger.Error("summary failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "summary request failed")
	}
	return c.JSON(http.StatusOK, result)
}

// compare decodes the request body and runs a comparison recorded with the http source.
func (s *Server) compare(c echo.Context) (schema.ComparisonResult, error) {
	req, err := decodeCompareRequest(c)
	if err != nil {
		s.logger.Warn("invalid compare request", zap.Error(err))
		return schema.ComparisonResult{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reports, err := ingest.DecodeReports(bytes.NewReader(req.Reports))
	if err != nil {
		s.logger.Warn("invalid reports", zap.Error(err))
		return schema.ComparisonResult{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cfg := s.cfg.Clone()
	if req.Viewport != nil {
		vp := chart.NormalizeViewport(*req.Viewport)
		if vp.PlotWidth() <= 0 || vp.PlotHeight() <= 0 {
			return schema.ComparisonResult{}, echo.NewHTTPError(http.StatusBadRequest, "viewport leaves no room for the plot area")
		}
		cfg.Viewport = vp
	}

	ctx := core.WithSuppressHeader(core.WithRunSource(c.Request().Context(), schema.HTTPSource))
	result := core.CompareReports(ctx, cfg, s.mgr, reports, nil)
	s.logger.Debug("compared reports",
		zap.Int("reports", len(reports)),
		zap.Bool("comparable", result.Comparable()),
	)
	return result, nil
}

// decodeCompareRequest reads a compare request from the body.
func decodeCompareRequest(c echo.Context) (CompareRequest, error) {
	var req CompareRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if len(bytes.TrimSpace(req.Reports)) == 0 || bytes.Equal(bytes.TrimSpace(req.Reports), []byte("null")) {
		return req, errors.New("reports field is required")
	}
	return req, nil
}
