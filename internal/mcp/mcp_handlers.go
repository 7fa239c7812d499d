package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/huangsam/leaderlens/core"
	"github.com/huangsam/leaderlens/core/algo"
	"github.com/huangsam/leaderlens/core/chart"
	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/ingest"
	"github.com/huangsam/leaderlens/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RunLogManager
	logger  *zap.Logger
}

// ClassifyRowResult is the payload of the classify_row tool.
type ClassifyRowResult struct {
	Classes []schema.CellClass `json:"classes"`
	Trend   schema.Trend       `json:"trend"`
}

func (h *toolHandler) handleCompareReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reports, sources, err := h.loadReports(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid reports: %v", err)), nil
	}

	result := core.CompareReports(toolContext(ctx), h.baseCfg.Clone(), h.mgr, reports, sources)
	return jsonResult(result)
}

func (h *toolHandler) handleChartGeometry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	vp := cfg.Viewport
	if w := request.GetFloat("width", 0); w > 0 {
		vp.Width = w
	}
	if ht := request.GetFloat("height", 0); ht > 0 {
		vp.Height = ht
	}
	if g := request.GetInt("grid_lines", 0); g > 0 {
		vp.GridLines = g
	}
	vp = chart.NormalizeViewport(vp)
	if vp.PlotWidth() <= 0 || vp.PlotHeight() <= 0 {
		return mcp.NewToolResultError("invalid viewport: no room left for the plot area"), nil
	}
	cfg.Viewport = vp

	reports, sources, err := h.loadReports(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid reports: %v", err)), nil
	}

	result := core.CompareReports(toolContext(ctx), cfg, h.mgr, reports, sources)
	if !result.Comparable() {
		return mcp.NewToolResultError(core.ErrNotEnoughReports.Error()), nil
	}
	return jsonResult(result.Geometry)
}

func (h *toolHandler) handleClassifyRow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("values_json", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("values_json is required"), nil
	}

	var row []schema.NullFloat
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid values_json: %v", err)), nil
	}

	return jsonResult(ClassifyRowResult{
		Classes: algo.ClassifyRow(row),
		Trend:   algo.ComputeTrend(row),
	})
}

// loadReports reads the reports from reports_json, or else from the comma separated paths.
func (h *toolHandler) loadReports(ctx context.Context, request mcp.CallToolRequest) ([]schema.InputReport, []string, error) {
	if raw := request.GetString("reports_json", ""); strings.TrimSpace(raw) != "" {
		reports, err := ingest.DecodeReports(strings.NewReader(raw))
		return reports, nil, err
	}

	paths := splitPaths(request.GetString("paths", ""))
	if len(paths) == 0 {
		return nil, nil, errors.New("either paths or reports_json is required")
	}
	batch, err := ingest.LoadBatch(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	h.logger.Debug("loaded reports", zap.Strings("paths", paths), zap.Int("reports", len(batch.Reports)))
	return batch.Reports, batch.Sources, nil
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// toolContext tags the comparison as an MCP run and keeps stdout quiet.
func toolContext(ctx context.Context) context.Context {
	return core.WithSuppressHeader(core.WithRunSource(ctx, schema.MCPSource))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
