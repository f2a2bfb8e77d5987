package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultTrendDays = 30

// TrendHandler returns the handler function for the get_trend MCP tool.
func TrendHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input TrendInput) (*mcp.CallToolResult, TrendOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TrendInput) (*mcp.CallToolResult, TrendOutput, error) {
		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, TrendOutput{}, err
		}
		days := input.Days
		if days == 0 {
			days = defaultTrendDays
		}

		rep, err := d.Service.Trend(ctx, userID, days, input.Window)
		if err != nil {
			return nil, TrendOutput{}, err
		}

		points := make([]DayPoint, len(rep.Points))
		for i, p := range rep.Points {
			points[i] = DayPoint{
				Date:         p.Date.Format("2006-01-02"),
				MoodAvg:      p.MoodAvg,
				EnergyAvg:    p.EnergyAvg,
				StressAvg:    p.StressAvg,
				SentimentAvg: p.SentimentAvg,
				EntriesCount: p.EntriesCount,
			}
		}
		return nil, TrendOutput{
			From:    rep.From.Format("2006-01-02"),
			To:      rep.To.Format("2006-01-02"),
			Summary: rep.Summary,
			Points:  points,
		}, nil
	}
}
