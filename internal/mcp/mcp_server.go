// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/huangsam/leaderlens/internal/contract"
)

// NewMCPServer initializes and configures the leaderlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RunLogManager, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"Leaderlens Report Server",
		"1.0.0",
		server.WithLogging(),
		server.WithToolHandlerMiddleware(logToolCalls(logger)),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		logger:  logger,
	}

	// --- 1. Tool: compare_reports ---
	s.AddTool(mcp.NewTool("compare_reports",
		mcp.WithDescription("Merge leader reports into a report-indexed comparison with highlighted cells and trends."),
		mcp.WithString("paths", mcp.Description("Comma separated report files, directories or globs, in chart order.")),
		mcp.WithString("reports_json", mcp.Description("JSON array of reports to compare instead of reading files.")),
	), h.handleCompareReports)

	// --- 2. Tool: chart_geometry ---
	s.AddTool(mcp.NewTool("chart_geometry",
		mcp.WithDescription("Compute the line chart geometry of leader scores across reports."),
		mcp.WithString("paths", mcp.Description("Comma separated report files, directories or globs, in chart order.")),
		mcp.WithString("reports_json", mcp.Description("JSON array of reports to chart instead of reading files.")),
		mcp.WithNumber("width", mcp.Description("Chart width in pixels. Defaults to 800.")),
		mcp.WithNumber("height", mcp.Description("Chart height in pixels. Defaults to 400.")),
		mcp.WithNumber("grid_lines", mcp.Description("Number of horizontal grid lines. Defaults to 6.")),
	), h.handleChartGeometry)

	// --- 3. Tool: classify_row ---
	s.AddTool(mcp.NewTool("classify_row",
		mcp.WithDescription("Classify each value of a row as max, min, neutral or missing and compute its trend."),
		mcp.WithString("values_json", mcp.Description("JSON array of numbers, with null for absent values."), mcp.Required()),
	), h.handleClassifyRow)

	return s
}

// StartMCPServer starts the leaderlens MCP server on stdio.
// Logs go to the given logger since stdout carries the protocol.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunLogManager, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := NewMCPServer(baseCfg, mgr, logger)
	logger.Info("starting mcp server on stdio")
	return server.ServeStdio(s, server.WithErrorLogger(zap.NewStdLog(logger)))
}

// logToolCalls records the name, duration and outcome of every tool call.
func logToolCalls(logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, request)
			logger.Info("tool call",
				zap.String("tool", request.Params.Name),
				zap.Duration("duration", time.Since(start)),
				zap.Bool("is_error", err != nil || (res != nil && res.IsError)),
			)
			return res, err
		}
	}
}
