package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
)

const timeLayout = "2006-01-02 15:04"

// FormatCheckIn formats a recorded check-in and its recommendations.
func FormatCheckIn(w io.Writer, res *wellness.CheckInResult) {
	s := res.Sample
	fmt.Fprintf(w, "Checked in %s (%s)\n", s.ID, s.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "  %s\n", sampleLine(s))
	if len(res.Recommendations) == 0 {
		fmt.Fprintln(w, "\nNo recommendations today. Keep it up!")
		return
	}
	fmt.Fprintln(w, "\nRecommended for you:")
	FormatRecommendations(w, res.Recommendations)
}

func sampleLine(s mood.Sample) string {
	line := fmt.Sprintf("mood %d/10 (%s)  energy %d/5  stress %d/5",
		s.Mood, mood.Label(s.Mood), s.Energy, s.Stress)
	if len(s.Activities) > 0 {
		line += "  [" + strings.Join(s.Activities.Strings(), ", ") + "]"
	}
	if s.SleepHours != nil {
		line += fmt.Sprintf("  sleep %.1fh", *s.SleepHours)
	}
	return line
}

// FormatSampleList formats check-ins, one per line.
func FormatSampleList(w io.Writer, samples []mood.Sample) {
	if len(samples) == 0 {
		fmt.Fprintln(w, "No check-ins found.")
		return
	}
	for _, s := range samples {
		fmt.Fprintf(w, "%s  %s  %s\n", s.ID, s.Date.Format("2006-01-02"), sampleLine(s))
		if s.Notes != "" {
			fmt.Fprintf(w, "          %s\n", journal.Snippet(s.Notes, 70))
		}
	}
}

// FormatDayList formats per-day check-in summaries.
func FormatDayList(w io.Writer, days []storage.DaySummary) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No check-ins found.")
		return
	}
	for _, d := range days {
		label := "check-ins"
		if d.Count == 1 {
			label = "check-in"
		}
		fmt.Fprintf(w, "%s  %d %s  avg mood %.1f\n", d.Date.Format("2006-01-02"), d.Count, label, d.AvgMood)
	}
}

// FormatSampleDeleted formats a check-in deletion confirmation.
func FormatSampleDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted check-in %s.\n", id)
}

// FormatJournalCreated formats a creation confirmation message.
func FormatJournalCreated(w io.Writer, e journal.Entry) {
	fmt.Fprintf(w, "Created journal entry %s (%s)\n", e.ID, e.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "Sentiment: %s (score %+.2f, confidence %.0f%%)\n",
		e.Sentiment.Label, e.Sentiment.Score, e.Sentiment.Confidence*100)
}

// FormatJournalDeleted formats a deletion confirmation message.
func FormatJournalDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted journal entry %s.\n", id)
}

// FormatJournalFull formats a full entry display with metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatJournalFull(w io.Writer, e journal.Entry, markdownStyle string) {
	fmt.Fprintf(w, "Entry: %s\n", e.ID)
	fmt.Fprintf(w, "Title: %s\n", e.Title)
	fmt.Fprintf(w, "Created: %s\n", e.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "Sentiment: %s (%+.2f)\n", e.Sentiment.Label, e.Sentiment.Score)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Private {
		fmt.Fprintln(w, "Private: yes")
	}
	fmt.Fprintln(w)

	// The pager adjusts to the terminal; 80 columns is the rendering default.
	fmt.Fprintln(w, RenderMarkdownWithStyle(e.Content, 80, markdownStyle))
}

// FormatJournalList formats journal entries as a table.
func FormatJournalList(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %-8s  %s: %s\n",
			e.ID,
			e.CreatedAt.Local().Format(timeLayout),
			e.Sentiment.Label,
			e.Title,
			e.Preview(50),
		)
	}
}

// FormatRecommendations formats recommendation cards with a completion box.
func FormatRecommendations(w io.Writer, recs []recommend.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		return
	}
	for _, r := range recs {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		meta := []string{string(r.Type), string(r.Difficulty)}
		if r.DurationMinutes != nil {
			meta = append(meta, fmt.Sprintf("%d min", *r.DurationMinutes))
		}
		fmt.Fprintf(w, "%s %s  %s (%s)\n", box, r.ID, r.Title, strings.Join(meta, ", "))
		fmt.Fprintf(w, "    %s\n", r.Description)
	}
}

// FormatTrend formats a trend report with a sparkline and a per-day chart.
func FormatTrend(w io.Writer, rep *wellness.Report, theme Theme) {
	s := rep.Summary
	fmt.Fprintln(w, theme.HeaderStyle().Render(fmt.Sprintf("Mood trend %s to %s",
		rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02"))))
	if s.Count == 0 {
		fmt.Fprintln(w, "No check-ins in this period.")
		return
	}

	fmt.Fprintf(w, "Check-ins: %d   window: %d\n", s.Count, s.Window)
	fmt.Fprintf(w, "Average mood: %s   previous: %.1f   change: %+.1f (%s)\n",
		theme.MoodStyle(s.CurrentAvg).Render(fmt.Sprintf("%.1f", s.CurrentAvg)),
		s.PreviousAvg, s.Trend, s.Direction)
	fmt.Fprintf(w, "Average energy: %.1f/5   average stress: %.1f/5\n", s.EnergyAvg, s.StressAvg)
	fmt.Fprintf(w, "\n%s\n\n", MoodSparkline(rep.Points))
	fmt.Fprint(w, theme.MoodChart(rep.Points, 20))
}

// FormatDashboard formats the home overview.
func FormatDashboard(w io.Writer, d *wellness.Dashboard, name string, theme Theme) {
	fmt.Fprintln(w, theme.HeaderStyle().Render(fmt.Sprintf("Welcome back, %s", name)))
	fmt.Fprintln(w, d.Today.Format("Monday, January 2, 2006"))
	fmt.Fprintln(w)

	if d.CheckedInToday {
		fmt.Fprintln(w, theme.PositiveStyle().Render("✓ Checked in today"))
	} else {
		fmt.Fprintln(w, theme.DangerStyle().Render("✗ No check-in yet today"))
	}
	fmt.Fprintf(w, "Streak: %d day(s)   check-ins: %d   journal entries: %d\n",
		d.Streak, d.TotalCheckIns, d.JournalEntries)

	if d.Latest != nil {
		fmt.Fprintf(w, "Latest: %s\n", sampleLine(*d.Latest))
	}
	if d.Summary.Count > 0 {
		fmt.Fprintf(w, "Last %d days: average mood %s (%s)\n",
			d.Summary.Window,
			theme.MoodStyle(d.Summary.CurrentAvg).Render(fmt.Sprintf("%.1f", d.Summary.CurrentAvg)),
			d.Summary.Direction)
	}

	if len(d.Recommendations) > 0 {
		fmt.Fprintf(w, "\nToday's recommendations (%d/%d completed today)\n", d.Completed, len(d.Recommendations))
		FormatRecommendations(w, d.Recommendations)
	}

	if len(d.RecentEntries) > 0 {
		fmt.Fprintln(w, "\nRecent journal entries")
		for _, e := range d.RecentEntries {
			fmt.Fprintf(w, "  %s  %s  %s\n",
				e.CreatedAt.Local().Format("01-02"),
				theme.SentimentStyle(e.Sentiment.Label).Render(fmt.Sprintf("%-8s", e.Sentiment.Label)),
				e.Title)
		}
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for journal list output.
type EntrySummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	Tags      []string  `json:"tags,omitempty"`
	Label     string    `json:"sentiment"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []journal.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			ID:        e.ID,
			Title:     e.Title,
			Preview:   e.Preview(60),
			Tags:      e.Tags,
			Label:     string(e.Sentiment.Label),
			Score:     e.Sentiment.Score,
			CreatedAt: e.CreatedAt,
		}
	}
	return summaries
}

// DayJSON is the JSON representation of a per-day check-in summary.
type DayJSON struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	AvgMood float64 `json:"avg_mood"`
}

// ToDays converts day summaries for JSON output.
func ToDays(days []storage.DaySummary) []DayJSON {
	out := make([]DayJSON, len(days))
	for i, d := range days {
		out[i] = DayJSON{Date: d.Date.Format("2006-01-02"), Count: d.Count, AvgMood: d.AvgMood}
	}
	return out
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
