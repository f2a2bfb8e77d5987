package trend

import (
	"sort"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
)

// Point is the aggregate of one calendar day, used for chart rendering.
type Point struct {
	Date         time.Time `json:"date"`
	MoodAvg      float64   `json:"mood_avg"`
	EnergyAvg    float64   `json:"energy_avg"`
	StressAvg    float64   `json:"stress_avg"`
	SentimentAvg *float64  `json:"sentiment_avg,omitempty"`
	EntriesCount int       `json:"entries_count"`
}

// Daily groups samples by calendar day and averages each day. Sentiment is
// the mean journal score of the same day, left nil when no journal entry
// exists for it. Days without a check-in are omitted. Points are ascending.
func Daily(samples []mood.Sample, entries []journal.Entry) []Point {
	byDay := make(map[time.Time][]mood.Sample)
	for _, s := range samples {
		d := mood.Day(s.Date)
		byDay[d] = append(byDay[d], s)
	}

	sentSum := make(map[time.Time]float64)
	sentCount := make(map[time.Time]int)
	for _, e := range entries {
		d := mood.Day(e.CreatedAt)
		sentSum[d] += e.Sentiment.Score
		sentCount[d]++
	}

	points := make([]Point, 0, len(byDay))
	for d, group := range byDay {
		p := Point{
			Date:         d,
			MoodAvg:      mean(group, func(x mood.Sample) int { return x.Mood }),
			EnergyAvg:    mean(group, func(x mood.Sample) int { return x.Energy }),
			StressAvg:    mean(group, func(x mood.Sample) int { return x.Stress }),
			EntriesCount: len(group),
		}
		if n := sentCount[d]; n > 0 {
			avg := sentSum[d] / float64(n)
			p.SentimentAvg = &avg
		}
		points = append(points, p)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Streak counts consecutive calendar days with a check-in, ending at today.
// It is zero when today has no check-in.
func Streak(days []time.Time, today time.Time) int {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d.Local().Format("2006-01-02")] = true
	}

	streak := 0
	for check := mood.Day(today); set[check.Format("2006-01-02")]; check = check.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
