package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrConflict   = errors.New("concurrent write conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// DateRange selects calendar days, both bounds inclusive. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// LastDays returns the range covering the n calendar days ending at today.
func LastDays(n int, today time.Time) DateRange {
	end := mood.Day(today)
	start := end.AddDate(0, 0, -(n - 1))
	return DateRange{Start: &start, End: &end}
}

// Contains reports whether the calendar day of t falls inside r.
func (r DateRange) Contains(t time.Time) bool {
	d := mood.Day(t)
	if r.Start != nil && d.Before(mood.Day(*r.Start)) {
		return false
	}
	if r.End != nil && d.After(mood.Day(*r.End)) {
		return false
	}
	return true
}

// JournalListOptions controls filtering and paging of journal entries.
type JournalListOptions struct {
	Range  DateRange
	Tag    string // only entries carrying this tag
	Limit  int    // 0 = no limit
	Offset int
}

// DaySummary aggregates the check-ins of one calendar day.
type DaySummary struct {
	Date    time.Time // local midnight
	Count   int
	AvgMood float64
}

// Storage persists check-ins, journal entries and recommendation completion.
// Samples are returned ascending by date; journal entries newest first.
type Storage interface {
	// Check-in methods
	LoadSamples(ctx context.Context, userID string, r DateRange) ([]mood.Sample, error)
	SaveSample(ctx context.Context, s mood.Sample) error
	DeleteSample(ctx context.Context, id string) error
	ListDays(ctx context.Context, userID string, r DateRange) ([]DaySummary, error)

	// Journal methods
	SaveJournalEntry(ctx context.Context, e journal.Entry) error
	GetJournalEntry(ctx context.Context, id string) (journal.Entry, error)
	ListJournalEntries(ctx context.Context, userID string, opts JournalListOptions) ([]journal.Entry, error)
	DeleteJournalEntry(ctx context.Context, id string) error

	// Recommendation completion, keyed by user and calendar day
	SetCompletion(ctx context.Context, userID string, day time.Time, recID string, done bool) error
	Completions(ctx context.Context, userID string, day time.Time) (map[string]bool, error)

	Close() error
}

// ValidateSample checks a sample before it is written.
func ValidateSample(s mood.Sample) error {
	if s.ID == "" {
		return fmt.Errorf("%w: sample ID is required", ErrValidation)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ValidateJournalEntry checks a journal entry before it is written.
func ValidateJournalEntry(e journal.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: entry ID is required", ErrValidation)
	}
	if e.UserID == "" {
		return fmt.Errorf("%w: user ID is required", ErrValidation)
	}
	if err := journal.ValidateContent(e.Content); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := e.Sentiment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// SummarizeDays groups samples into DaySummary values, newest day first.
func SummarizeDays(samples []mood.Sample) []DaySummary {
	type acc struct {
		count int
		sum   int
	}
	byDay := make(map[time.Time]*acc)
	var order []time.Time
	for _, s := range samples {
		d := mood.Day(s.Date)
		a, ok := byDay[d]
		if !ok {
			a = &acc{}
			byDay[d] = a
			order = append(order, d)
		}
		a.count++
		a.sum += s.Mood
	}

	out := make([]DaySummary, 0, len(order))
	for _, d := range order {
		a := byDay[d]
		out = append(out, DaySummary{Date: d, Count: a.count, AvgMood: float64(a.sum) / float64(a.count)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
