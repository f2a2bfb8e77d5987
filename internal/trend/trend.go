// Package trend aggregates mood check-ins into averages, trend direction,
// per-day chart points and streaks.
package trend

import (
	"github.com/chris-regnier/wellnessctl/internal/mood"
)

// DefaultWindow is the number of most recent samples compared against the
// earlier baseline.
const DefaultWindow = 7

const directionThreshold = 0.5

// Direction summarizes the change in average mood.
type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// Summary holds averages over a run of samples.
type Summary struct {
	CurrentAvg  float64   `json:"current_avg"`
	PreviousAvg float64   `json:"previous_avg"`
	Trend       float64   `json:"trend"`
	EnergyAvg   float64   `json:"energy_avg"`
	StressAvg   float64   `json:"stress_avg"`
	Count       int       `json:"count"`
	Window      int       `json:"window"`
	Direction   Direction `json:"direction"`
}

// DirectionFor classifies a difference in averages.
func DirectionFor(delta float64) Direction {
	switch {
	case delta > directionThreshold:
		return Improving
	case delta < -directionThreshold:
		return Declining
	default:
		return Stable
	}
}

// Summarize averages samples, which must be ordered by date ascending.
// CurrentAvg covers every sample; PreviousAvg covers all but the last window
// samples and equals CurrentAvg when there are not more than window samples.
// An empty input yields a zero summary with a stable direction.
func Summarize(samples []mood.Sample, window int) Summary {
	if window < 0 {
		window = 0
	}
	s := Summary{Count: len(samples), Window: window, Direction: Stable}
	if len(samples) == 0 {
		return s
	}

	s.CurrentAvg = mean(samples, func(x mood.Sample) int { return x.Mood })
	s.EnergyAvg = mean(samples, func(x mood.Sample) int { return x.Energy })
	s.StressAvg = mean(samples, func(x mood.Sample) int { return x.Stress })

	s.PreviousAvg = s.CurrentAvg
	if len(samples) > window {
		s.PreviousAvg = mean(samples[:len(samples)-window], func(x mood.Sample) int { return x.Mood })
	}

	s.Trend = s.CurrentAvg - s.PreviousAvg
	s.Direction = DirectionFor(s.Trend)
	return s
}

func mean(samples []mood.Sample, field func(mood.Sample) int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int
	for _, x := range samples {
		sum += field(x)
	}
	return float64(sum) / float64(len(samples))
}
