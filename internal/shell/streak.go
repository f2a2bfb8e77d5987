package shell

import (
	"context"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/trend"
)

// streakHorizon bounds how far back the streak is computed.
const streakHorizon = 366

// Status is what the shell prompt shows.
type Status struct {
	Today     bool
	Streak    int
	TodayMood float64 // average of today's check-ins, 0 when none
}

// ComputeStatus queries the store for whether userID checked in today, the
// current check-in streak and today's average mood.
func ComputeStatus(ctx context.Context, store storage.Storage, userID string, now time.Time) (Status, error) {
	days, err := store.ListDays(ctx, userID, storage.LastDays(streakHorizon, now))
	if err != nil {
		return Status{}, err
	}

	today := mood.Day(now)
	var st Status
	dates := make([]time.Time, len(days))
	for i, d := range days {
		dates[i] = d.Date
		if d.Date.Equal(today) {
			st.Today = true
			st.TodayMood = d.AvgMood
		}
	}
	st.Streak = trend.Streak(dates, now)
	return st, nil
}
