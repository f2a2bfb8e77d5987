package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScoreSentimentHandler returns the handler function for the score_sentiment MCP tool.
func ScoreSentimentHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input ScoreSentimentInput) (*mcp.CallToolResult, ScoreSentimentOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScoreSentimentInput) (*mcp.CallToolResult, ScoreSentimentOutput, error) {
		res, err := d.Service.ScoreSentiment(ctx, input.Text)
		if err != nil {
			return nil, ScoreSentimentOutput{}, err
		}
		return nil, ScoreSentimentOutput{
			Score:      res.Score,
			Label:      string(res.Label),
			Confidence: res.Confidence,
		}, nil
	}
}
