package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WriteJournalHandler returns the handler function for the write_journal MCP tool.
func WriteJournalHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input WriteJournalInput) (*mcp.CallToolResult, WriteJournalOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WriteJournalInput) (*mcp.CallToolResult, WriteJournalOutput, error) {
		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, WriteJournalOutput{}, err
		}

		e, err := d.Service.SubmitJournal(ctx, journal.Input{
			UserID:  userID,
			Title:   input.Title,
			Content: input.Content,
			Tags:    input.Tags,
			Private: input.Private,
		})
		if err != nil {
			return nil, WriteJournalOutput{}, err
		}
		d.invalidate()

		return nil, WriteJournalOutput{
			ID:      e.ID,
			Date:    e.CreatedAt.Local().Format("2006-01-02"),
			Title:   e.Title,
			Label:   string(e.Sentiment.Label),
			Score:   e.Sentiment.Score,
			Preview: e.Preview(200),
		}, nil
	}
}

// ListJournalHandler returns the handler function for the list_journal MCP tool.
func ListJournalHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input ListJournalInput) (*mcp.CallToolResult, ListJournalOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListJournalInput) (*mcp.CallToolResult, ListJournalOutput, error) {
		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, ListJournalOutput{}, err
		}

		opts := storage.JournalListOptions{Tag: input.Tag, Limit: input.Limit}
		if opts.Limit <= 0 {
			opts.Limit = 20
		}
		if input.StartDate != "" {
			start, err := parseDate(input.StartDate)
			if err != nil {
				return nil, ListJournalOutput{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", input.StartDate)
			}
			opts.Range.Start = &start
		}
		if input.EndDate != "" {
			end, err := parseDate(input.EndDate)
			if err != nil {
				return nil, ListJournalOutput{}, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", input.EndDate)
			}
			opts.Range.End = &end
		}

		entries, err := d.Service.Store().ListJournalEntries(ctx, userID, opts)
		if err != nil {
			return nil, ListJournalOutput{}, err
		}

		results := make([]EntryResult, 0, len(entries))
		for _, e := range entries {
			results = append(results, EntryResult{
				ID:      e.ID,
				Title:   e.Title,
				Preview: e.Preview(100),
				Date:    e.CreatedAt.Local().Format("2006-01-02"),
				Tags:    e.Tags,
				Label:   string(e.Sentiment.Label),
				Score:   e.Sentiment.Score,
			})
		}
		return nil, ListJournalOutput{Entries: results}, nil
	}
}
