package markdown

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"gopkg.in/yaml.v2"
)

const dateLayout = "2006-01-02"

// Store implements storage.Storage using Markdown files with YAML front-matter.
// Check-in notes and journal content live in the file body.
type Store struct {
	checkinsDir    string // e.g. ~/.wellnessctl/checkins/
	journalDir     string // e.g. ~/.wellnessctl/journal/
	completionsDir string // e.g. ~/.wellnessctl/completions/
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	s := &Store{
		checkinsDir:    filepath.Join(dataDir, "checkins"),
		journalDir:     filepath.Join(dataDir, "journal"),
		completionsDir: filepath.Join(dataDir, "completions"),
	}
	for _, dir := range []string{s.checkinsDir, s.journalDir, s.completionsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating directory %s: %v", storage.ErrStorage, dir, err)
		}
	}
	return s, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func datedPath(base string, day time.Time, id string) string {
	return filepath.Join(base, day.Format("2006"), day.Format("01"), day.Format("02"), id+".md")
}

type sampleFrontMatter struct {
	ID         string   `yaml:"id"`
	UserID     string   `yaml:"user_id"`
	Date       string   `yaml:"date"`
	Mood       int      `yaml:"mood"`
	Energy     int      `yaml:"energy"`
	Stress     int      `yaml:"stress"`
	Activities []string `yaml:"activities,omitempty"`
	SleepHours *float64 `yaml:"sleep_hours,omitempty"`
	CreatedAt  string   `yaml:"created_at"`
}

type sentimentFrontMatter struct {
	Score      float64 `yaml:"score"`
	Label      string  `yaml:"label"`
	Confidence float64 `yaml:"confidence"`
}

type journalFrontMatter struct {
	ID        string               `yaml:"id"`
	UserID    string               `yaml:"user_id"`
	Title     string               `yaml:"title"`
	Tags      []string             `yaml:"tags,omitempty"`
	Private   bool                 `yaml:"private"`
	Sentiment sentimentFrontMatter `yaml:"sentiment"`
	CreatedAt string               `yaml:"created_at"`
}

type completionFrontMatter struct {
	UserID    string   `yaml:"user_id"`
	Date      string   `yaml:"date"`
	Completed []string `yaml:"completed"`
}

func marshal(fm any, body string) ([]byte, error) {
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}
	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.Bytes(), nil
}

func parse(data []byte, fm any) (string, error) {
	body, err := frontmatter.Parse(bytes.NewReader(data), fm)
	if err != nil {
		return "", fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}
	return strings.TrimSpace(string(body)), nil
}

func marshalSample(smp mood.Sample) ([]byte, error) {
	return marshal(sampleFrontMatter{
		ID:         smp.ID,
		UserID:     smp.UserID,
		Date:       smp.Date.Format(dateLayout),
		Mood:       smp.Mood,
		Energy:     smp.Energy,
		Stress:     smp.Stress,
		Activities: smp.Activities.Strings(),
		SleepHours: smp.SleepHours,
		CreatedAt:  smp.CreatedAt.UTC().Format(time.RFC3339),
	}, smp.Notes)
}

func unmarshalSample(data []byte) (mood.Sample, error) {
	var fm sampleFrontMatter
	notes, err := parse(data, &fm)
	if err != nil {
		return mood.Sample{}, err
	}

	date, err := time.ParseInLocation(dateLayout, fm.Date, time.Local)
	if err != nil {
		return mood.Sample{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return mood.Sample{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	acts, err := mood.NewActivitySet(fm.Activities...)
	if err != nil {
		return mood.Sample{}, fmt.Errorf("%w: %v", storage.ErrStorage, err)
	}

	smp := mood.Sample{
		ID:         fm.ID,
		UserID:     fm.UserID,
		Date:       date,
		Mood:       fm.Mood,
		Energy:     fm.Energy,
		Stress:     fm.Stress,
		Activities: acts,
		Notes:      notes,
		SleepHours: fm.SleepHours,
		CreatedAt:  createdAt,
	}
	if err := smp.Validate(); err != nil {
		return mood.Sample{}, fmt.Errorf("%w: stored check-in %s: %v", storage.ErrStorage, fm.ID, err)
	}
	return smp, nil
}

func marshalEntry(e journal.Entry) ([]byte, error) {
	return marshal(journalFrontMatter{
		ID:      e.ID,
		UserID:  e.UserID,
		Title:   e.Title,
		Tags:    e.Tags,
		Private: e.Private,
		Sentiment: sentimentFrontMatter{
			Score:      e.Sentiment.Score,
			Label:      string(e.Sentiment.Label),
			Confidence: e.Sentiment.Confidence,
		},
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}, e.Content)
}

func unmarshalEntry(data []byte) (journal.Entry, error) {
	var fm journalFrontMatter
	content, err := parse(data, &fm)
	if err != nil {
		return journal.Entry{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	res := sentiment.Result{
		Score:      fm.Sentiment.Score,
		Label:      sentiment.Label(fm.Sentiment.Label),
		Confidence: fm.Sentiment.Confidence,
	}
	if err := res.Validate(); err != nil {
		return journal.Entry{}, fmt.Errorf("%w: stored entry %s: %v", storage.ErrStorage, fm.ID, err)
	}
	return journal.Entry{
		ID:        fm.ID,
		UserID:    fm.UserID,
		Title:     fm.Title,
		Content:   content,
		Tags:      fm.Tags,
		Private:   fm.Private,
		Sentiment: res,
		CreatedAt: createdAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// findPath locates the file for an ID under base.
func findPath(base, id string) (string, error) {
	var found string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !d.IsDir() && d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: scanning %s: %v", storage.ErrStorage, base, err)
	}
	if found == "" {
		return "", storage.ErrNotFound
	}
	return found, nil
}

// walkFiles calls fn with the contents of every Markdown file under base.
// Unreadable files are skipped.
func walkFiles(ctx context.Context, base string, fn func(data []byte)) error {
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}
		fn(data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: scanning %s: %v", storage.ErrStorage, base, err)
	}
	return nil
}

// SaveSample persists a new check-in.
func (s *Store) SaveSample(ctx context.Context, smp mood.Sample) error {
	if err := storage.ValidateSample(smp); err != nil {
		return err
	}
	if _, err := findPath(s.checkinsDir, smp.ID); err == nil {
		return fmt.Errorf("%w: check-in %s already exists", storage.ErrConflict, smp.ID)
	}
	data, err := marshalSample(smp)
	if err != nil {
		return err
	}
	return atomicWrite(datedPath(s.checkinsDir, smp.Date, smp.ID), data)
}

// LoadSamples returns a user's check-ins within r, ordered by date then
// creation time.
func (s *Store) LoadSamples(ctx context.Context, userID string, r storage.DateRange) ([]mood.Sample, error) {
	samples := []mood.Sample{}
	err := walkFiles(ctx, s.checkinsDir, func(data []byte) {
		smp, err := unmarshalSample(data)
		if err != nil {
			return // skip malformed files
		}
		if smp.UserID != userID || !r.Contains(smp.Date) {
			return
		}
		samples = append(samples, smp)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(samples, func(i, j int) bool {
		a, b := samples[i], samples[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return samples, nil
}

// DeleteSample removes a check-in permanently.
func (s *Store) DeleteSample(ctx context.Context, id string) error {
	path, err := findPath(s.checkinsDir, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: deleting check-in: %v", storage.ErrStorage, err)
	}
	return nil
}

// ListDays returns per-day check-in summaries, newest first.
func (s *Store) ListDays(ctx context.Context, userID string, r storage.DateRange) ([]storage.DaySummary, error) {
	samples, err := s.LoadSamples(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	return storage.SummarizeDays(samples), nil
}

// SaveJournalEntry persists a new journal entry.
func (s *Store) SaveJournalEntry(ctx context.Context, e journal.Entry) error {
	if err := storage.ValidateJournalEntry(e); err != nil {
		return err
	}
	if _, err := findPath(s.journalDir, e.ID); err == nil {
		return fmt.Errorf("%w: journal entry %s already exists", storage.ErrConflict, e.ID)
	}
	data, err := marshalEntry(e)
	if err != nil {
		return err
	}
	return atomicWrite(datedPath(s.journalDir, e.CreatedAt.Local(), e.ID), data)
}

// GetJournalEntry retrieves a journal entry by ID.
func (s *Store) GetJournalEntry(ctx context.Context, id string) (journal.Entry, error) {
	path, err := findPath(s.journalDir, id)
	if err != nil {
		return journal.Entry{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return unmarshalEntry(data)
}

// ListJournalEntries returns a user's entries, newest first.
func (s *Store) ListJournalEntries(ctx context.Context, userID string, opts storage.JournalListOptions) ([]journal.Entry, error) {
	entries := []journal.Entry{}
	err := walkFiles(ctx, s.journalDir, func(data []byte) {
		e, err := unmarshalEntry(data)
		if err != nil {
			return
		}
		if e.UserID != userID || !opts.Range.Contains(e.CreatedAt) {
			return
		}
		if opts.Tag != "" && !e.HasTag(opts.Tag) {
			return
		}
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(entries) {
			return []journal.Entry{}, nil
		}
		entries = entries[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(entries) {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

// DeleteJournalEntry removes a journal entry permanently.
func (s *Store) DeleteJournalEntry(ctx context.Context, id string) error {
	path, err := findPath(s.journalDir, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: deleting journal entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// completionPath names the user's directory by the hex of the ID, so no ID
// can resolve outside completionsDir.
func (s *Store) completionPath(userID string, day time.Time) string {
	return filepath.Join(s.completionsDir, hex.EncodeToString([]byte(userID)), mood.Day(day).Format(dateLayout)+".md")
}

// Completions returns the recommendation IDs completed by a user on day.
func (s *Store) Completions(ctx context.Context, userID string, day time.Time) (map[string]bool, error) {
	done := make(map[string]bool)
	data, err := os.ReadFile(s.completionPath(userID, day))
	if err != nil {
		if os.IsNotExist(err) {
			return done, nil
		}
		return nil, fmt.Errorf("%w: reading completions: %v", storage.ErrStorage, err)
	}
	var fm completionFrontMatter
	if _, err := parse(data, &fm); err != nil {
		return nil, err
	}
	for _, id := range fm.Completed {
		done[id] = true
	}
	return done, nil
}

// SetCompletion records or clears the completion of a recommendation.
func (s *Store) SetCompletion(ctx context.Context, userID string, day time.Time, recID string, completed bool) error {
	if userID == "" || recID == "" {
		return fmt.Errorf("%w: user and recommendation IDs are required", storage.ErrValidation)
	}
	done, err := s.Completions(ctx, userID, day)
	if err != nil {
		return err
	}
	if completed {
		done[recID] = true
	} else {
		delete(done, recID)
	}

	ids := make([]string, 0, len(done))
	for id := range done {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := marshal(completionFrontMatter{
		UserID:    userID,
		Date:      mood.Day(day).Format(dateLayout),
		Completed: ids,
	}, "")
	if err != nil {
		return err
	}
	return atomicWrite(s.completionPath(userID, day), data)
}
