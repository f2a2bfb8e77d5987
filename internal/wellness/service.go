// Package wellness ties the analytics pipeline to storage: it records
// check-ins and journal entries, and assembles trends, recommendations and
// the dashboard for a user.
package wellness

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/config"
	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/logging"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/trend"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"go.uber.org/zap"
)

// RecentDays is how far back Recommendations looks for the latest check-in.
const RecentDays = 7

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Window int    // trend window, default trend.DefaultWindow
	Policy string // config.PolicyAppend or config.PolicyOnePerDay
	Logger *zap.Logger
	Now    func() time.Time
}

// Service orchestrates the wellness pipeline for one store.
type Service struct {
	store    storage.Storage
	analyzer sentiment.Analyzer
	log      *zap.Logger
	window   int
	policy   string
	now      func() time.Time
}

// New creates a Service. A nil analyzer uses the built-in lexicon.
func New(store storage.Storage, analyzer sentiment.Analyzer, opts Options) *Service {
	if analyzer == nil {
		analyzer = sentiment.LexiconAnalyzer{}
	}
	s := &Service{
		store:    store,
		analyzer: analyzer,
		log:      logging.OrNop(opts.Logger),
		window:   opts.Window,
		policy:   opts.Policy,
		now:      opts.Now,
	}
	if s.window <= 0 {
		s.window = trend.DefaultWindow
	}
	if s.policy == "" {
		s.policy = config.PolicyAppend
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Store returns the underlying storage.
func (s *Service) Store() storage.Storage {
	return s.store
}

// Window returns the configured trend window.
func (s *Service) Window() int {
	return s.window
}

// CheckInResult is the outcome of recording a check-in.
type CheckInResult struct {
	Sample          mood.Sample                `json:"sample"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// CheckIn validates and stores a check-in, then recommends follow-ups based
// on its scores and activities.
func (s *Service) CheckIn(ctx context.Context, in mood.Input) (*CheckInResult, error) {
	now := s.now()
	smp, err := mood.NewSample(in, now)
	if err != nil {
		return nil, err
	}

	log := s.log.With(zap.String("user_id", smp.UserID), zap.String("sample_id", smp.ID))

	if s.policy == config.PolicyOnePerDay {
		day := smp.Date
		existing, err := s.store.LoadSamples(ctx, smp.UserID, storage.DateRange{Start: &day, End: &day})
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			log.Info("rejected second check-in for day", zap.String("date", day.Format("2006-01-02")))
			return nil, fmt.Errorf("%w: already checked in on %s", storage.ErrConflict, day.Format("2006-01-02"))
		}
	}

	if err := s.store.SaveSample(ctx, smp); err != nil {
		log.Error("saving check-in", zap.Error(err))
		return nil, err
	}

	recs, err := s.cards(ctx, smp)
	if err != nil {
		return nil, err
	}

	log.Info("check-in recorded",
		zap.Int("mood", smp.Mood),
		zap.Int("energy", smp.Energy),
		zap.Int("stress", smp.Stress),
		zap.Int("recommendations", len(recs)),
	)
	return &CheckInResult{Sample: smp, Recommendations: recs}, nil
}

// cards scores one check-in on its own activities.
func (s *Service) cards(ctx context.Context, smp mood.Sample) ([]recommend.Recommendation, error) {
	recs := recommend.Cards(smp.Mood, smp.Stress, smp.Energy, smp.Activities)
	done, err := s.store.Completions(ctx, smp.UserID, s.now())
	if err != nil {
		return nil, err
	}
	return recommend.ApplyCompletions(recs, done), nil
}

// ScoreSentiment analyzes text without storing anything.
func (s *Service) ScoreSentiment(ctx context.Context, text string) (sentiment.Result, error) {
	return s.analyze(ctx, text)
}

// analyze runs the analyzer behind sentiment.Async and stops waiting as soon
// as ctx is done, even if the analyzer does not watch ctx.
func (s *Service) analyze(ctx context.Context, text string) (sentiment.Result, error) {
	select {
	case out := <-sentiment.Async(ctx, s.analyzer, text):
		return out.Result, out.Err
	case <-ctx.Done():
		return sentiment.Result{}, ctx.Err()
	}
}

// SubmitJournal scores and stores a journal entry.
func (s *Service) SubmitJournal(ctx context.Context, in journal.Input) (journal.Entry, error) {
	if err := journal.ValidateContent(in.Content); err != nil {
		return journal.Entry{}, err
	}
	if err := validation.Struct(in); err != nil {
		return journal.Entry{}, err
	}

	res, err := s.analyze(ctx, in.Content)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("analyzing sentiment: %w", err)
	}

	e, err := journal.New(in, res, s.now())
	if err != nil {
		return journal.Entry{}, err
	}
	if err := s.store.SaveJournalEntry(ctx, e); err != nil {
		s.log.Error("saving journal entry", zap.String("user_id", e.UserID), zap.Error(err))
		return journal.Entry{}, err
	}

	s.log.Info("journal entry recorded",
		zap.String("user_id", e.UserID),
		zap.String("entry_id", e.ID),
		zap.String("label", string(e.Sentiment.Label)),
		zap.Float64("score", e.Sentiment.Score),
	)
	return e, nil
}

// Report is a trend summary with its per-day points.
type Report struct {
	Days    int           `json:"days"`
	From    time.Time     `json:"from"`
	To      time.Time     `json:"to"`
	Summary trend.Summary `json:"summary"`
	Points  []trend.Point `json:"points"`
}

// Trend summarizes the user's check-ins over the last days calendar days.
// A window of zero uses the configured window.
func (s *Service) Trend(ctx context.Context, userID string, days, window int) (*Report, error) {
	if days < 1 {
		return nil, validation.Field("days", "must be at least 1")
	}
	if window < 0 {
		return nil, validation.Field("window", "must not be negative")
	}
	if window == 0 {
		window = s.window
	}

	r := storage.LastDays(days, s.now())
	samples, err := s.store.LoadSamples(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListJournalEntries(ctx, userID, storage.JournalListOptions{Range: r})
	if err != nil {
		return nil, err
	}

	return &Report{
		Days:    days,
		From:    *r.Start,
		To:      *r.End,
		Summary: trend.Summarize(samples, window),
		Points:  trend.Daily(samples, entries),
	}, nil
}

// Recommendations returns cards for the user's latest check-in in the last
// RecentDays days, with today's completion state applied. It is empty when
// there is no recent check-in.
func (s *Service) Recommendations(ctx context.Context, userID string) ([]recommend.Recommendation, error) {
	samples, err := s.store.LoadSamples(ctx, userID, storage.LastDays(RecentDays, s.now()))
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return []recommend.Recommendation{}, nil
	}
	return s.cards(ctx, samples[len(samples)-1])
}

// CompleteRecommendation records, or with done false clears, today's
// completion of a recommendation.
func (s *Service) CompleteRecommendation(ctx context.Context, userID, recID string, done bool) error {
	if !recommend.Known(recID) {
		return validation.Field("id", fmt.Sprintf("unknown recommendation %q", recID))
	}
	if err := s.store.SetCompletion(ctx, userID, s.now(), recID, done); err != nil {
		return err
	}
	s.log.Info("recommendation completion updated",
		zap.String("user_id", userID),
		zap.String("recommendation_id", recID),
		zap.Bool("completed", done),
	)
	return nil
}

// Dashboard is the overview shown on the home screen.
type Dashboard struct {
	Today           time.Time                  `json:"today"`
	CheckedInToday  bool                       `json:"checked_in_today"`
	Streak          int                        `json:"streak"`
	TotalCheckIns   int                        `json:"total_check_ins"`
	JournalEntries  int                        `json:"journal_entries"`
	Latest          *mood.Sample               `json:"latest,omitempty"`
	Summary         trend.Summary              `json:"summary"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Completed       int                        `json:"completed"`
	RecentEntries   []journal.Entry            `json:"recent_entries"`
}

// DashboardEntries is the number of recent journal entries on the dashboard.
const DashboardEntries = 3

// Dashboard assembles the overview for userID.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := s.now()
	today := mood.Day(now)

	days, err := s.store.ListDays(ctx, userID, storage.DateRange{})
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(days))
	total := 0
	for i, d := range days {
		dates[i] = d.Date
		total += d.Count
	}

	entries, err := s.store.ListJournalEntries(ctx, userID, storage.JournalListOptions{})
	if err != nil {
		return nil, err
	}

	samples, err := s.store.LoadSamples(ctx, userID, storage.LastDays(s.window, now))
	if err != nil {
		return nil, err
	}

	recs, err := s.Recommendations(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Today:           today,
		CheckedInToday:  len(days) > 0 && days[0].Date.Equal(today),
		Streak:          trend.Streak(dates, now),
		TotalCheckIns:   total,
		JournalEntries:  len(entries),
		Summary:         trend.Summarize(samples, s.window),
		Recommendations: recs,
		Completed:       recommend.CompletedCount(recs),
		RecentEntries:   entries,
	}
	if len(d.RecentEntries) > DashboardEntries {
		d.RecentEntries = d.RecentEntries[:DashboardEntries]
	}
	if len(samples) > 0 {
		latest := samples[len(samples)-1]
		d.Latest = &latest
	}
	return d, nil
}
