package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/metcons"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses the tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) GetMetconsSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// HeatmapInput is the input for get_metcon_heatmap.
type HeatmapInput struct {
	UserID      int    `json:"user_id" jsonschema:"Id of the user whose latest program is shown"`
	Metric      string `json:"metric,omitempty" jsonschema:"One of percentile, rpe, quality, heartrate (default percentile)"`
	TimeDomains string `json:"time_domains,omitempty" jsonschema:"Comma separated time domain chips, e.g. 1-5,20+ (default all)"`
	Range       string `json:"range,omitempty" jsonschema:"One of all_time, last_30_days, last_60_days, last_90_days (default all_time)"`
}

func (h *Handler) GetMetconHeatmapTool() func(context.Context, *mcp.CallToolRequest, HeatmapInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in HeatmapInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		metric, err := heatmap.ParseMetric(in.Metric)
		if err != nil {
			return errorResult("Invalid metric: " + err.Error()), nil, nil
		}
		dateRange, err := metcons.ParseRange(in.Range)
		if err != nil {
			return errorResult("Invalid range: " + err.Error()), nil, nil
		}

		text, err := h.service.GetHeatmap(ctx, metcons.HeatmapQuery{
			UserID: in.UserID,
			Metric: metric,
			Chips:  heatmap.ParseChips(in.TimeDomains),
			Range:  dateRange,
		})
		if err != nil {
			return errorResult("Error building heatmap: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// CellInput is the input for get_metcon_cell.
type CellInput struct {
	UserID     int    `json:"user_id" jsonschema:"Id of the user whose latest program is used"`
	Exercise   string `json:"exercise,omitempty" jsonschema:"Exercise name; without time_domain the exercise row average is returned"`
	TimeDomain string `json:"time_domain,omitempty" jsonschema:"Time domain label, e.g. 5:00–10:00; without exercise the column average is returned"`
	Metric     string `json:"metric,omitempty" jsonschema:"One of percentile, rpe, quality, heartrate (default percentile)"`
	Range      string `json:"range,omitempty" jsonschema:"One of all_time, last_30_days, last_60_days, last_90_days (default all_time)"`
}

func (h *Handler) GetMetconCellTool() func(context.Context, *mcp.CallToolRequest, CellInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CellInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		if in.Exercise == "" && in.TimeDomain == "" {
			return errorResult("Invalid input: set exercise, time_domain or both"), nil, nil
		}
		metric, err := heatmap.ParseMetric(in.Metric)
		if err != nil {
			return errorResult("Invalid metric: " + err.Error()), nil, nil
		}
		dateRange, err := metcons.ParseRange(in.Range)
		if err != nil {
			return errorResult("Invalid range: " + err.Error()), nil, nil
		}

		detail, err := h.service.GetDetail(ctx, metcons.DetailQuery{
			UserID:   in.UserID,
			Exercise: in.Exercise,
			Domain:   in.TimeDomain,
			Metric:   metric,
			Range:    dateRange,
		})
		if err != nil {
			return errorResult("Error fetching cell: " + err.Error()), nil, nil
		}
		if detail == nil {
			return textResult("No data for the selected cell."), nil, nil
		}

		raw, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return textResult(string(raw)), nil, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
