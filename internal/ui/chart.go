package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/trend"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one block per value scaled between lo and hi.
func Sparkline(values []float64, lo, hi float64) string {
	if len(values) == 0 || hi <= lo {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		v = math.Max(lo, math.Min(hi, v))
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1)))
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// Bar draws a horizontal bar of width cells, filled in proportion to
// value/maxValue.
func Bar(value, maxValue float64, width int) string {
	if width <= 0 || maxValue <= 0 {
		return ""
	}
	filled := int(math.Round(value / maxValue * float64(width)))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// MoodChart renders one bar per day, colored by mood.
func (t Theme) MoodChart(points []trend.Point, width int) string {
	if len(points) == 0 {
		return "No check-ins in this period.\n"
	}
	var b strings.Builder
	for _, p := range points {
		style := t.MoodStyle(p.MoodAvg)
		fmt.Fprintf(&b, "%s  %s %4.1f  %s\n",
			p.Date.Format("Mon 01-02"),
			style.Render(Bar(p.MoodAvg, mood.MaxMood, width)),
			p.MoodAvg,
			mood.Label(int(math.Round(p.MoodAvg))),
		)
	}
	return b.String()
}

// MoodSparkline is a one-line view of daily mood averages.
func MoodSparkline(points []trend.Point) string {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.MoodAvg
	}
	return Sparkline(values, mood.MinMood, mood.MaxMood)
}
