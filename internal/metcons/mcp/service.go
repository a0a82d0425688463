package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/metcons"
)

type heatmapService interface {
	Heatmap(ctx context.Context, q metcons.HeatmapQuery) (*metcons.HeatmapResponse, error)
	Detail(ctx context.Context, q metcons.DetailQuery) (heatmap.Detail, bool, error)
}

// contextService is what the tool handlers need.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetHeatmap(ctx context.Context, q metcons.HeatmapQuery) (string, error)
	GetDetail(ctx context.Context, q metcons.DetailQuery) (*heatmap.Detail, error)
}

// ContextService renders metcon heatmaps and the metcons schema for MCP clients.
type ContextService struct {
	schema   SchemaRepo
	heatmaps heatmapService
}

func NewContextService(schemaRepo SchemaRepo, heatmaps heatmapService) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		heatmaps: heatmaps,
	}
}

// GetSchema returns the tables the heatmaps are aggregated from, as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.MetconsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatMetconsSchema(cols), nil
}

// GetHeatmap returns the heatmap as a markdown table, one row per exercise.
func (s *ContextService) GetHeatmap(ctx context.Context, q metcons.HeatmapQuery) (string, error) {
	resp, err := s.heatmaps.Heatmap(ctx, q)
	if err != nil {
		return "", err
	}
	return formatHeatmap(resp), nil
}

// GetDetail returns nil when there is nothing to show for the selection.
func (s *ContextService) GetDetail(ctx context.Context, q metcons.DetailQuery) (*heatmap.Detail, error) {
	detail, found, err := s.heatmaps.Detail(ctx, q)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &detail, nil
}

func formatHeatmap(resp *metcons.HeatmapResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s. Program %d, range %s, %s completed.\n\n",
		resp.Title, resp.Subtitle, resp.ProgramID, resp.Range, heatmap.Workouts(resp.TotalCompletedWorkouts))

	if resp.Empty {
		b.WriteString(resp.EmptyMessage)
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("| Exercise |")
	for _, domain := range resp.Domains {
		fmt.Fprintf(&b, " %s |", domain)
	}
	b.WriteString(" Avg |\n|---|")
	for range resp.Domains {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")

	for _, row := range resp.Rows {
		fmt.Fprintf(&b, "| %s |", row.Exercise)
		for _, cell := range row.Cells {
			fmt.Fprintf(&b, " %s |", cell.Display)
		}
		fmt.Fprintf(&b, " %s |\n", row.RollupDisplay)
	}

	b.WriteString("| Avg |")
	for _, col := range resp.Columns {
		fmt.Fprintf(&b, " %s |", col.Display)
	}
	fmt.Fprintf(&b, " %s %s |\n", resp.Global.Label, resp.Global.Display)

	b.WriteString("| Workouts |")
	for _, col := range resp.Columns {
		fmt.Fprintf(&b, " %d |", col.Workouts)
	}
	b.WriteString("  |\n")

	return b.String()
}

func formatMetconsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Metcons DB Schema\n\nNo metcons tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Metcons DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(metconsTables, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := heatmap.NoData
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}
