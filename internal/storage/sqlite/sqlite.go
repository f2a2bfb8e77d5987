package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

const dateLayout = "2006-01-02"

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "wellnessctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode. The pragma returns the resulting mode as a row.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	statements := []string{`
		CREATE TABLE IF NOT EXISTS samples (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			date        TEXT NOT NULL,
			mood        INTEGER NOT NULL CHECK(mood BETWEEN 1 AND 10),
			energy      INTEGER NOT NULL CHECK(energy BETWEEN 1 AND 5),
			stress      INTEGER NOT NULL CHECK(stress BETWEEN 1 AND 5),
			activities  TEXT NOT NULL DEFAULT '',
			notes       TEXT NOT NULL DEFAULT '',
			sleep_hours REAL CHECK(sleep_hours IS NULL OR sleep_hours BETWEEN 0 AND 24),
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_user_date ON samples(user_id, date)`,
		`
		CREATE TABLE IF NOT EXISTS journal_entries (
			id                   TEXT PRIMARY KEY,
			user_id              TEXT NOT NULL,
			title                TEXT NOT NULL,
			content              TEXT NOT NULL CHECK(length(trim(content)) > 0),
			tags                 TEXT NOT NULL DEFAULT '',
			private              INTEGER NOT NULL DEFAULT 0,
			sentiment_score      REAL NOT NULL CHECK(sentiment_score BETWEEN -1 AND 1),
			sentiment_label      TEXT NOT NULL,
			sentiment_confidence REAL NOT NULL CHECK(sentiment_confidence BETWEEN 0 AND 1),
			day                  TEXT NOT NULL,
			created_at           TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_user_created ON journal_entries(user_id, created_at DESC)`,
		`
		CREATE TABLE IF NOT EXISTS completions (
			user_id TEXT NOT NULL,
			day     TEXT NOT NULL,
			rec_id  TEXT NOT NULL,
			PRIMARY KEY (user_id, day, rec_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rangeClause appends date bounds for column to a WHERE clause.
func rangeClause(column string, r storage.DateRange, args []any) (string, []any) {
	var clause string
	if r.Start != nil {
		clause += " AND " + column + " >= ?"
		args = append(args, mood.Day(*r.Start).Format(dateLayout))
	}
	if r.End != nil {
		clause += " AND " + column + " <= ?"
		args = append(args, mood.Day(*r.End).Format(dateLayout))
	}
	return clause, args
}

func exists(ctx context.Context, tx *sql.Tx, table, id string) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: checking %s: %v", storage.ErrStorage, table, err)
	}
	return n > 0, nil
}

// SaveSample persists a new check-in.
func (s *Store) SaveSample(ctx context.Context, smp mood.Sample) error {
	if err := storage.ValidateSample(smp); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	found, err := exists(ctx, tx, "samples", smp.ID)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: check-in %s already exists", storage.ErrConflict, smp.ID)
	}

	var sleep sql.NullFloat64
	if smp.SleepHours != nil {
		sleep = sql.NullFloat64{Float64: *smp.SleepHours, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO samples (id, user_id, date, mood, energy, stress, activities, notes, sleep_hours, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		smp.ID,
		smp.UserID,
		smp.Date.Format(dateLayout),
		smp.Mood,
		smp.Energy,
		smp.Stress,
		strings.Join(smp.Activities.Strings(), ","),
		smp.Notes,
		sleep,
		smp.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("%w: inserting check-in: %v", storage.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

// LoadSamples returns a user's check-ins within r, ordered by date then
// creation time.
func (s *Store) LoadSamples(ctx context.Context, userID string, r storage.DateRange) ([]mood.Sample, error) {
	query := `SELECT id, user_id, date, mood, energy, stress, activities, notes, sleep_hours, created_at
		FROM samples WHERE user_id = ?`
	args := []any{userID}
	clause, args := rangeClause("date", r, args)
	query += clause + " ORDER BY date ASC, created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing check-ins: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	samples := []mood.Sample{}
	for rows.Next() {
		var smp mood.Sample
		var dateStr, actStr, createdStr string
		var sleep sql.NullFloat64
		if err := rows.Scan(&smp.ID, &smp.UserID, &dateStr, &smp.Mood, &smp.Energy, &smp.Stress,
			&actStr, &smp.Notes, &sleep, &createdStr); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		if smp.Date, err = time.ParseInLocation(dateLayout, dateStr, time.Local); err != nil {
			return nil, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
		}
		if smp.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
		}
		var tags []string
		if actStr != "" {
			tags = strings.Split(actStr, ",")
		}
		if smp.Activities, err = mood.NewActivitySet(tags...); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrStorage, err)
		}
		if sleep.Valid {
			h := sleep.Float64
			smp.SleepHours = &h
		}
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// DeleteSample removes a check-in permanently.
func (s *Store) DeleteSample(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "samples", id)
}

// ListDays returns per-day check-in summaries, newest first.
func (s *Store) ListDays(ctx context.Context, userID string, r storage.DateRange) ([]storage.DaySummary, error) {
	query := "SELECT date, COUNT(*), AVG(mood) FROM samples WHERE user_id = ?"
	args := []any{userID}
	clause, args := rangeClause("date", r, args)
	query += clause + " GROUP BY date ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing days: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	days := []storage.DaySummary{}
	for rows.Next() {
		var dateStr string
		var d storage.DaySummary
		if err := rows.Scan(&dateStr, &d.Count, &d.AvgMood); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		if d.Date, err = time.ParseInLocation(dateLayout, dateStr, time.Local); err != nil {
			return nil, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// SaveJournalEntry persists a new journal entry.
func (s *Store) SaveJournalEntry(ctx context.Context, e journal.Entry) error {
	if err := storage.ValidateJournalEntry(e); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	found, err := exists(ctx, tx, "journal_entries", e.ID)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: journal entry %s already exists", storage.ErrConflict, e.ID)
	}

	private := 0
	if e.Private {
		private = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO journal_entries
		 (id, user_id, title, content, tags, private, sentiment_score, sentiment_label, sentiment_confidence, day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.UserID,
		e.Title,
		e.Content,
		encodeTags(e.Tags),
		private,
		e.Sentiment.Score,
		string(e.Sentiment.Label),
		e.Sentiment.Confidence,
		e.CreatedAt.Local().Format(dateLayout),
		e.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("%w: inserting journal entry: %v", storage.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

// encodeTags stores tags as ",a,b," so a single tag can be matched with instr.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

func decodeTags(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

const journalColumns = `id, user_id, title, content, tags, private,
	sentiment_score, sentiment_label, sentiment_confidence, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (journal.Entry, error) {
	var e journal.Entry
	var tags, label, createdStr string
	var private int
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &tags, &private,
		&e.Sentiment.Score, &label, &e.Sentiment.Confidence, &createdStr); err != nil {
		return journal.Entry{}, err
	}
	e.Tags = decodeTags(tags)
	e.Private = private != 0
	e.Sentiment.Label = sentiment.Label(label)

	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// GetJournalEntry retrieves a journal entry by ID.
func (s *Store) GetJournalEntry(ctx context.Context, id string) (journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+journalColumns+" FROM journal_entries WHERE id = ?", id)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return journal.Entry{}, storage.ErrNotFound
		}
		return journal.Entry{}, fmt.Errorf("%w: querying journal entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// ListJournalEntries returns a user's entries, newest first.
func (s *Store) ListJournalEntries(ctx context.Context, userID string, opts storage.JournalListOptions) ([]journal.Entry, error) {
	query := "SELECT " + journalColumns + " FROM journal_entries WHERE user_id = ?"
	args := []any{userID}
	clause, args := rangeClause("day", opts.Range, args)
	query += clause

	if opts.Tag != "" {
		query += " AND instr(tags, ?) > 0"
		args = append(args, ","+strings.ToLower(strings.TrimSpace(opts.Tag))+",")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing journal entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []journal.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteJournalEntry removes a journal entry permanently.
func (s *Store) DeleteJournalEntry(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "journal_entries", id)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting from %s: %v", storage.ErrStorage, table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetCompletion records or clears the completion of a recommendation.
func (s *Store) SetCompletion(ctx context.Context, userID string, day time.Time, recID string, completed bool) error {
	if userID == "" || recID == "" {
		return fmt.Errorf("%w: user and recommendation IDs are required", storage.ErrValidation)
	}
	d := mood.Day(day).Format(dateLayout)

	var err error
	if completed {
		_, err = s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO completions (user_id, day, rec_id) VALUES (?, ?, ?)", userID, d, recID)
	} else {
		_, err = s.db.ExecContext(ctx,
			"DELETE FROM completions WHERE user_id = ? AND day = ? AND rec_id = ?", userID, d, recID)
	}
	if err != nil {
		return fmt.Errorf("%w: updating completion: %v", storage.ErrStorage, err)
	}
	return nil
}

// Completions returns the recommendation IDs completed by a user on day.
func (s *Store) Completions(ctx context.Context, userID string, day time.Time) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT rec_id FROM completions WHERE user_id = ? AND day = ?",
		userID, mood.Day(day).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("%w: listing completions: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		done[id] = true
	}
	return done, rows.Err()
}
