package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// CheckInHandler returns the handler function for the log_checkin MCP tool.
func CheckInHandler(d Deps) func(ctx context.Context, req *mcp.CallToolRequest, input CheckInInput) (*mcp.CallToolResult, CheckInOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CheckInInput) (*mcp.CallToolResult, CheckInOutput, error) {
		userID, err := d.userID(ctx, input.UserID)
		if err != nil {
			return nil, CheckInOutput{}, err
		}

		in := mood.Input{
			UserID:     userID,
			Mood:       input.Mood,
			Energy:     input.Energy,
			Stress:     input.Stress,
			Activities: input.Activities,
			Notes:      input.Notes,
			SleepHours: input.SleepHours,
		}
		if input.Date != "" {
			date, err := parseDate(input.Date)
			if err != nil {
				return nil, CheckInOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
			}
			in.Date = date
		}

		res, err := d.Service.CheckIn(ctx, in)
		if err != nil {
			d.Logger.Debug("log_checkin failed", zap.String("user_id", userID), zap.Error(err))
			return nil, CheckInOutput{}, err
		}
		d.invalidate()

		return nil, CheckInOutput{
			ID:              res.Sample.ID,
			Date:            res.Sample.Date.Format("2006-01-02"),
			Label:           mood.Label(res.Sample.Mood),
			Recommendations: res.Recommendations,
		}, nil
	}
}
