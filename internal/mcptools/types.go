package mcptools

import (
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/trend"
)

// ScoreSentimentInput is the input schema for the score_sentiment MCP tool.
type ScoreSentimentInput struct {
	Text string `json:"text" jsonschema-description:"Text to score"`
}

// ScoreSentimentOutput is the output schema for the score_sentiment MCP tool.
type ScoreSentimentOutput struct {
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// CheckInInput is the input schema for the log_checkin MCP tool.
type CheckInInput struct {
	UserID     string   `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	Date       string   `json:"date,omitempty" jsonschema-description:"ISO date of the check-in; defaults to today"`
	Mood       int      `json:"mood" jsonschema-description:"Mood from 1 (worst) to 10 (best)"`
	Energy     int      `json:"energy" jsonschema-description:"Energy from 1 to 5"`
	Stress     int      `json:"stress" jsonschema-description:"Stress from 1 to 5"`
	Activities []string `json:"activities,omitempty" jsonschema-description:"Activities: exercise, work, social, relaxation, hobbies, outdoors, creative, learning"`
	Notes      string   `json:"notes,omitempty" jsonschema-description:"Free-text notes"`
	SleepHours *float64 `json:"sleep_hours,omitempty" jsonschema-description:"Hours slept, 0 to 24"`
}

// CheckInOutput is the output schema for the log_checkin MCP tool.
type CheckInOutput struct {
	ID              string                     `json:"id"`
	Date            string                     `json:"date"`
	Label           string                     `json:"label"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// WriteJournalInput is the input schema for the write_journal MCP tool.
type WriteJournalInput struct {
	UserID  string   `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	Title   string   `json:"title,omitempty" jsonschema-description:"Entry title"`
	Content string   `json:"content" jsonschema-description:"Entry content (markdown)"`
	Tags    []string `json:"tags,omitempty" jsonschema-description:"Tags for the entry"`
	Private bool     `json:"private,omitempty" jsonschema-description:"Mark the entry as private"`
}

// WriteJournalOutput is the output schema for the write_journal MCP tool.
type WriteJournalOutput struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
	Preview string  `json:"preview"`
}

// ListJournalInput is the input schema for the list_journal MCP tool.
type ListJournalInput struct {
	UserID    string `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	StartDate string `json:"start_date,omitempty" jsonschema-description:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema-description:"ISO date upper bound (inclusive)"`
	Tag       string `json:"tag,omitempty" jsonschema-description:"Only entries with this tag"`
	Limit     int    `json:"limit,omitempty" jsonschema-description:"Maximum number of results"`
}

// ListJournalOutput is the output schema for the list_journal MCP tool.
type ListJournalOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is the common output format for journal-related MCP tools.
type EntryResult struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Preview string   `json:"preview"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags,omitempty"`
	Label   string   `json:"label"`
	Score   float64  `json:"score"`
}

// TrendInput is the input schema for the get_trend MCP tool.
type TrendInput struct {
	UserID string `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	Days   int    `json:"days,omitempty" jsonschema-description:"Number of calendar days ending today; defaults to 30"`
	Window int    `json:"window,omitempty" jsonschema-description:"Number of recent check-ins compared against the earlier baseline"`
}

// TrendOutput is the output schema for the get_trend MCP tool.
type TrendOutput struct {
	From    string        `json:"from"`
	To      string        `json:"to"`
	Summary trend.Summary `json:"summary"`
	Points  []DayPoint    `json:"points"`
}

// DayPoint is one day of a trend.
type DayPoint struct {
	Date         string   `json:"date"`
	MoodAvg      float64  `json:"mood_avg"`
	EnergyAvg    float64  `json:"energy_avg"`
	StressAvg    float64  `json:"stress_avg"`
	SentimentAvg *float64 `json:"sentiment_avg,omitempty"`
	EntriesCount int      `json:"entries_count"`
}

// RecommendationsInput is the input schema for the get_recommendations MCP
// tool. When Mood is set the cards are computed from the given values;
// otherwise from the user's latest check-in.
type RecommendationsInput struct {
	UserID     string   `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	Mood       int      `json:"mood,omitempty" jsonschema-description:"Mood from 1 to 10"`
	Stress     int      `json:"stress,omitempty" jsonschema-description:"Stress from 1 to 5"`
	Energy     int      `json:"energy,omitempty" jsonschema-description:"Energy from 1 to 5"`
	Activities []string `json:"activities,omitempty" jsonschema-description:"Recent activities"`
}

// RecommendationsOutput is the output schema for the get_recommendations MCP tool.
type RecommendationsOutput struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// CompleteInput is the input schema for the complete_recommendation MCP tool.
type CompleteInput struct {
	UserID string `json:"user_id,omitempty" jsonschema-description:"User ID; defaults to the signed-in user"`
	ID     string `json:"id" jsonschema-description:"Recommendation ID, e.g. low-mood-1"`
	Undo   bool   `json:"undo,omitempty" jsonschema-description:"Clear the completion instead of setting it"`
}

// CompleteOutput is the output schema for the complete_recommendation MCP tool.
type CompleteOutput struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}
