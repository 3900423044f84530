package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/name"
	"github.com/rpggio/cookbook/internal/domain/summary"
)

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "parse_name",
		Description: "Normalize a free-text name: hyphens and underscores become spaces, non-letters are dropped, and every word is capitalized",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in ParseNameParams) (*sdkmcp.CallToolResult, ParseNameResult, error) {
		normalized, err := name.Normalize(in.Input)
		if err != nil {
			return nil, ParseNameResult{}, toolError(err)
		}
		return nil, ParseNameResult{Msg: normalized}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_entry",
		Description: "Store a recipe or ingredient. Names are unique across both kinds and entries are immutable once stored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddEntryParams) (*sdkmcp.CallToolResult, AddEntryResult, error) {
		err := svc.Entries.Insert(ctx, entry.Candidate{
			Type:          in.Type,
			Name:          in.Name,
			CookTime:      in.CookTime,
			RequiredItems: in.RequiredItems,
		})
		if err != nil {
			return nil, AddEntryResult{}, toolError(err)
		}
		return nil, AddEntryResult{Name: in.Name}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entry",
		Description: "Get a stored recipe or ingredient by exact name",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetEntryParams) (*sdkmcp.CallToolResult, entry.View, error) {
		e, err := svc.Entries.Find(ctx, in.Name)
		if err != nil {
			return nil, entry.View{}, toolError(err)
		}
		return nil, e.View(), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entries",
		Description: "List every stored entry in insertion order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListEntriesParams) (*sdkmcp.CallToolResult, ListEntriesResult, error) {
		entries, err := svc.Entries.List(ctx)
		if err != nil {
			return nil, ListEntriesResult{}, toolError(err)
		}
		views := make([]entry.View, 0, len(entries))
		for _, e := range entries {
			views = append(views, e.View())
		}
		return nil, ListEntriesResult{Entries: views}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Expand a recipe into total cook time and base ingredient quantities",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetSummaryParams) (*sdkmcp.CallToolResult, summary.Summary, error) {
		result, err := svc.Summaries.Summarize(ctx, in.Name)
		if err != nil {
			return nil, summary.Summary{}, toolError(err)
		}
		return nil, *result, nil
	})
}
