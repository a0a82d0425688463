package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the metcon heatmap tools.
// The same server is mounted on the heatmap service at /mcp and run over stdio by cmd/heatmap_mcp.
func NewServer(schemaRepo SchemaRepo, heatmaps heatmapService) *mcp.Server {
	h := NewHandler(NewContextService(schemaRepo, heatmaps))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "metcons-heatmap",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_metcon_heatmap",
		Description: "Returns the metcon performance heatmap of a user's latest program as a markdown table: one row per exercise, one column per time domain, with row, column and global averages. Args: user_id; optional: metric (percentile, rpe, quality, heartrate), time_domains (e.g. 1-5,20+), range (all_time, last_30_days, last_60_days, last_90_days).",
	}, h.GetMetconHeatmapTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_metcon_cell",
		Description: "Returns the detail of one heatmap cell (exercise and time_domain), an exercise row average (only exercise) or a time domain column average (only time_domain), with all metrics known for it. Args: user_id; optional: metric, range.",
	}, h.GetMetconCellTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_metcons_schema",
		Description: "Returns the DB schema of the tables the heatmaps are aggregated from (programs, program_metcons, metcons): columns, types, nullable, default.",
	}, h.GetMetconsSchemaTool())

	return s
}
