package mcptools

import (
	"context"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type cardValues struct {
	Mood   int `json:"mood" validate:"gte=1,lte=10"`
	Stress int `json:"stress" validate:"gte=1,lte=5"`
	Energy int `json:"energy" validate:"gte=1,lte=5"`
}

// RecommendationsHandler returns the handler function for the get_recommendations MCP tool.
func RecommendationsHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input RecommendationsInput) (*mcp.CallToolResult, RecommendationsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecommendationsInput) (*mcp.CallToolResult, RecommendationsOutput, error) {
		if input.Mood != 0 {
			if err := validation.Struct(cardValues{input.Mood, input.Stress, input.Energy}); err != nil {
				return nil, RecommendationsOutput{}, err
			}
			acts, err := mood.NewActivitySet(input.Activities...)
			if err != nil {
				return nil, RecommendationsOutput{}, err
			}
			return nil, RecommendationsOutput{
				Recommendations: recommend.Cards(input.Mood, input.Stress, input.Energy, acts),
			}, nil
		}

		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, RecommendationsOutput{}, err
		}
		recs, err := d.Service.Recommendations(ctx, userID)
		if err != nil {
			return nil, RecommendationsOutput{}, err
		}
		return nil, RecommendationsOutput{Recommendations: recs}, nil
	}
}

// CompleteHandler returns the handler function for the complete_recommendation MCP tool.
func CompleteHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, CompleteOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, CompleteOutput, error) {
		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, CompleteOutput{}, err
		}
		if err := d.Service.CompleteRecommendation(ctx, userID, input.ID, !input.Undo); err != nil {
			return nil, CompleteOutput{}, err
		}
		return nil, CompleteOutput{ID: input.ID, Completed: !input.Undo}, nil
	}
}
