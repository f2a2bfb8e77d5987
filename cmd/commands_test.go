package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/config"
	"github.com/chris-regnier/wellnessctl/internal/editor"
	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/shell"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
)

func TestCheckinRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	err := checkinRun(ctx, &buf, mood.Input{UserID: "tester", Mood: 3, Energy: 3, Stress: 2, Activities: []string{"work"}})
	if err != nil {
		t.Fatalf("checkinRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Checked in", "mood 3/10", "low-mood-1", "low-mood-3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckinRunValidation(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	err := checkinRun(context.Background(), &buf, mood.Input{UserID: "tester", Mood: 11, Energy: 3, Stress: 2})
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}

	var errBuf bytes.Buffer
	printError(&errBuf, err)
	if !strings.Contains(errBuf.String(), "invalid input") || !strings.Contains(errBuf.String(), "mood") {
		t.Errorf("unexpected error output:\n%s", errBuf.String())
	}
}

func TestPrintErrorSortsFields(t *testing.T) {
	err := &validation.Error{Fields: map[string]string{
		"stress": "must be between 1 and 5",
		"energy": "must be between 1 and 5",
		"mood":   "must be between 1 and 10",
	}}
	want := "Error: invalid input\n" +
		"  energy: must be between 1 and 5\n" +
		"  mood: must be between 1 and 10\n" +
		"  stress: must be between 1 and 5\n"
	for i := 0; i < 10; i++ {
		var buf bytes.Buffer
		printError(&buf, err)
		if buf.String() != want {
			t.Fatalf("output = %q, want %q", buf.String(), want)
		}
	}
}

func TestCheckinOnePerDay(t *testing.T) {
	setupTestEnv(t)
	appConfig.Checkin.Policy = config.PolicyOnePerDay
	svc = newService(store)

	mustCheckIn(t, 6, 3, 2)
	var buf bytes.Buffer
	err := checkinRun(context.Background(), &buf, mood.Input{UserID: "tester", Mood: 7, Energy: 3, Stress: 2})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCheckinDeleteRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	id := mustCheckIn(t, 6, 3, 2)

	var buf bytes.Buffer
	if err := checkinDeleteRun(ctx, &buf, id); err != nil {
		t.Fatalf("checkinDeleteRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Deleted check-in "+id) {
		t.Errorf("unexpected output: %q", buf.String())
	}
	if err := checkinDeleteRun(ctx, &buf, id); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("second delete: got %v", err)
	}
}

func TestParseDateFlag(t *testing.T) {
	d, err := parseDateFlag("date", "2026-03-09")
	if err != nil {
		t.Fatalf("parseDateFlag: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 9 {
		t.Errorf("got %v", d)
	}
	if _, err := parseDateFlag("date", "09/03/2026"); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestListRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	id1 := mustCheckIn(t, 6, 3, 2)
	id2 := mustCheckIn(t, 8, 4, 1)

	var buf bytes.Buffer
	if err := listRun(ctx, &buf, storage.DateRange{}, false, true); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	ids := strings.Fields(buf.String())
	if len(ids) != 2 || !strings.Contains(buf.String(), id1) || !strings.Contains(buf.String(), id2) {
		t.Errorf("unexpected ids: %v", ids)
	}

	buf.Reset()
	if err := listRun(ctx, &buf, storage.DateRange{}, true, false); err != nil {
		t.Fatalf("listRun by day: %v", err)
	}
	if !strings.Contains(buf.String(), "2 check-ins  avg mood 7.0") {
		t.Errorf("unexpected day output:\n%s", buf.String())
	}
}

func TestListRunEmpty(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, storage.DateRange{}, false, false); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	if buf.String() != "No check-ins found.\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestJournalLifecycle(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	jsonOutput = true
	err := journalRun(ctx, &buf, journal.Input{
		UserID:  "tester",
		Title:   "Evening",
		Content: "Feeling grateful and happy after a good walk",
		Tags:    []string{"gratitude"},
	})
	jsonOutput = false
	if err != nil {
		t.Fatalf("journalRun: %v", err)
	}
	var e journal.Entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if e.Sentiment.Label != "positive" {
		t.Errorf("label = %q, want positive", e.Sentiment.Label)
	}

	buf.Reset()
	if err := journalListRun(ctx, &buf, storage.JournalListOptions{Tag: "gratitude"}, true); err != nil {
		t.Fatalf("journalListRun: %v", err)
	}
	if strings.TrimSpace(buf.String()) != e.ID {
		t.Errorf("list ids = %q, want %q", buf.String(), e.ID)
	}

	buf.Reset()
	if err := journalListRun(ctx, &buf, storage.JournalListOptions{Tag: "work"}, false); err != nil {
		t.Fatalf("journalListRun: %v", err)
	}
	if buf.String() != "No journal entries found.\n" {
		t.Errorf("filtered list = %q", buf.String())
	}

	buf.Reset()
	if err := journalShowRun(ctx, &buf, e.ID, true); err != nil {
		t.Fatalf("journalShowRun: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "Feeling grateful and happy after a good walk" {
		t.Errorf("content = %q", buf.String())
	}

	buf.Reset()
	if err := journalDeleteRun(ctx, &buf, e.ID); err != nil {
		t.Fatalf("journalDeleteRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Deleted journal entry") {
		t.Errorf("unexpected delete output: %q", buf.String())
	}
	if err := journalShowRun(ctx, &buf, e.ID, false); err == nil {
		t.Error("expected error showing deleted entry")
	}
}

func TestJournalRunEmptyContent(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	err := journalRun(context.Background(), &buf, journal.Input{UserID: "tester", Content: "   "})
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJournalOtherUserHidden(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	e, err := svc.SubmitJournal(ctx, journal.Input{UserID: "someone-else", Content: "private thoughts"})
	if err != nil {
		t.Fatalf("SubmitJournal: %v", err)
	}

	var buf bytes.Buffer
	if err := journalShowRun(ctx, &buf, e.ID, false); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("show other user's entry: got %v", err)
	}
	if err := journalDeleteRun(ctx, &buf, e.ID); err == nil {
		t.Error("expected error deleting other user's entry")
	}
	if _, err := store.GetJournalEntry(ctx, e.ID); err != nil {
		t.Errorf("entry should still exist: %v", err)
	}
}

func TestTrendRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	mustCheckIn(t, 4, 3, 2)
	mustCheckIn(t, 8, 3, 2)

	var buf bytes.Buffer
	jsonOutput = true
	if err := trendRun(ctx, &buf, 30, 7); err != nil {
		t.Fatalf("trendRun: %v", err)
	}
	var rep wellness.Report
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, buf.String())
	}
	if rep.Summary.Count != 2 || rep.Summary.CurrentAvg != 6 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if len(rep.Points) != 1 || rep.Points[0].MoodAvg != 6 {
		t.Errorf("points = %+v", rep.Points)
	}
}

func TestRecommendRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := recommendRun(ctx, &buf, false); err != nil {
		t.Fatalf("recommendRun: %v", err)
	}
	if !strings.Contains(buf.String(), "No check-in in the past week") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}

	mustCheckIn(t, 3, 3, 2)

	buf.Reset()
	if err := recommendCompleteRun(ctx, &buf, "low-mood-1", true); err != nil {
		t.Fatalf("recommendCompleteRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Marked low-mood-1 as completed") {
		t.Errorf("unexpected complete output: %q", buf.String())
	}

	buf.Reset()
	if err := recommendRun(ctx, &buf, false); err != nil {
		t.Fatalf("recommendRun: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[x] low-mood-1") || !strings.Contains(out, "[ ] low-mood-2") {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	if err := recommendRun(ctx, &buf, true); err != nil {
		t.Fatalf("recommendRun pending: %v", err)
	}
	if strings.Contains(buf.String(), "low-mood-1") || !strings.Contains(buf.String(), "low-mood-2") {
		t.Errorf("unexpected pending output:\n%s", buf.String())
	}

	buf.Reset()
	if err := recommendCompleteRun(ctx, &buf, "low-mood-1", false); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := recommendCompleteRun(ctx, &buf, "made-up-1", true); err == nil {
		t.Error("expected error for unknown recommendation")
	}
}

func TestDashboardRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	mustCheckIn(t, 7, 4, 2, "social")

	var buf bytes.Buffer
	if err := dashboardRun(ctx, &buf); err != nil {
		t.Fatalf("dashboardRun: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"Welcome back, Tess", "Checked in today", "Streak: 1 day(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadStatus(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	now := time.Now()

	data, err := loadStatus(ctx, false, now)
	if err != nil {
		t.Fatalf("loadStatus: %v", err)
	}
	if data.HasToday || data.TodayIcon != "✗" || data.Streak != 0 {
		t.Errorf("before check-in: %+v", data)
	}

	mustCheckIn(t, 7, 3, 2)

	// The cached status is still fresh.
	data, _ = loadStatus(ctx, false, now)
	if data.HasToday {
		t.Error("expected cached status before invalidation")
	}

	invalidateCache()
	data, err = loadStatus(ctx, false, now)
	if err != nil {
		t.Fatalf("loadStatus: %v", err)
	}
	if !data.HasToday || data.Streak != 1 || data.Mood != "7.0" {
		t.Errorf("after check-in: %+v", data)
	}

	var buf bytes.Buffer
	outputEnv(&buf, data)
	for _, want := range []string{
		`export WELLNESSCTL_HAS_TODAY="1"`,
		`export WELLNESSCTL_STREAK="1"`,
		`export WELLNESSCTL_MOOD="7.0"`,
		`export WELLNESSCTL_BACKEND="markdown"`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("env output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := outputTemplate(&buf, data, "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}}"); err != nil {
		t.Fatalf("outputTemplate: %v", err)
	}
	if buf.String() != "✓ 1d\n" {
		t.Errorf("template output = %q", buf.String())
	}
}

func TestLoadStatusOtherUserCache(t *testing.T) {
	setupTestEnv(t)
	now := time.Now()

	cache := shell.NewCache("someone-else", "markdown", shell.Status{Today: true, Streak: 9}, now)
	if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
		t.Fatalf("WriteCache: %v", err)
	}
	data, err := loadStatus(context.Background(), false, now)
	if err != nil {
		t.Fatalf("loadStatus: %v", err)
	}
	if data.HasToday || data.Streak != 0 {
		t.Errorf("another user's cache leaked: %+v", data)
	}
}

func TestSeedRun(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	var buf bytes.Buffer
	jsonOutput = true
	if err := seedRun(ctx, &buf, "recovering", rng, time.Now()); err != nil {
		t.Fatalf("seedRun: %v", err)
	}
	var res seedResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	// recovering checks in every day of its 30-day window.
	if res.CheckIns != 31 || res.UserID != "tester" {
		t.Errorf("result = %+v", res)
	}

	samples, err := store.LoadSamples(ctx, "tester", storage.DateRange{})
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(samples) != res.CheckIns {
		t.Errorf("stored %d samples, result says %d", len(samples), res.CheckIns)
	}
	if first, last := samples[0], samples[len(samples)-1]; !first.Date.Before(last.Date) {
		t.Errorf("samples not spread over days: %v .. %v", first.Date, last.Date)
	}

	entries, err := store.ListJournalEntries(ctx, "tester", storage.JournalListOptions{})
	if err != nil {
		t.Fatalf("ListJournalEntries: %v", err)
	}
	if len(entries) != res.JournalEntries {
		t.Errorf("stored %d entries, result says %d", len(entries), res.JournalEntries)
	}
	for _, e := range entries {
		if e.CreatedAt.After(time.Now()) {
			t.Errorf("entry %s is in the future: %v", e.ID, e.CreatedAt)
		}
	}
}

func TestSeedRunUnknownProfile(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	err := seedRun(context.Background(), &buf, "nope", rand.New(rand.NewSource(1)), time.Now())
	if err == nil || !strings.Contains(err.Error(), "unknown profile") {
		t.Fatalf("got %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	var buf bytes.Buffer
	listProfiles(&buf)
	for _, name := range []string{"steady", "stressed-worker", "recovering"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("missing profile %s:\n%s", name, buf.String())
		}
	}
}

func TestWhoamiLoginLogout(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := whoamiRun(ctx, &buf); err != nil {
		t.Fatalf("whoamiRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Tess (tester)") {
		t.Errorf("whoami = %q", buf.String())
	}

	buf.Reset()
	if err := loginRun(ctx, &buf, session.User{ID: "sam", Name: "Sam"}); err != nil {
		t.Fatalf("loginRun: %v", err)
	}
	u, err := currentUser(ctx)
	if err != nil || u.ID != "sam" {
		t.Fatalf("current user = %+v, %v", u, err)
	}

	if err := logoutRun(ctx, &buf); err != nil {
		t.Fatalf("logoutRun: %v", err)
	}
	u, _ = currentUser(ctx)
	if u.ID != "tester" {
		t.Errorf("after logout user = %q, want fallback tester", u.ID)
	}
}

func TestCurrentUserNoSession(t *testing.T) {
	setupTestEnv(t)
	sess = session.NewLocal("", session.User{})

	_, err := currentUser(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if !strings.Contains(err.Error(), "wellnessctl login") {
		t.Errorf("error lacks hint: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{validation.Field("mood", "out of range"), 1},
		{fmt.Errorf("saving: %w", storage.ErrStorage), 2},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, err := openStore(&config.Config{Storage: "floppy", DataDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "unknown storage backend") {
		t.Fatalf("got %v", err)
	}
}

func TestJournalDraftWithPrompts(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	mustCheckIn(t, 7, 3, 2)

	draft, _, err := journalDraft(ctx, "Evening", []string{"reflection"}, time.Now())
	if err != nil {
		t.Fatalf("journalDraft: %v", err)
	}
	if !strings.HasPrefix(draft, "# Evening\n") || !strings.Contains(draft, "Mood today: 7/10") {
		t.Errorf("unexpected draft:\n%s", draft)
	}

	title, body := editor.Parse(draft)
	if title != "Evening" || !strings.HasPrefix(body, "## How I Feel") {
		t.Errorf("parsed draft: title=%q body=%q", title, body)
	}

	if _, _, err := journalDraft(ctx, "", []string{"missing"}, time.Now()); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

func TestPromptedJournalScoresOwnText(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	const text = "Today was sad and bad, I feel worried."
	draft, scaffold, err := journalDraft(ctx, "", []string{"gratitude"}, time.Now())
	if err != nil {
		t.Fatalf("journalDraft: %v", err)
	}
	_, content := draftContent(draft+text+"\n", scaffold)
	if content != text {
		t.Errorf("content = %q, want %q", content, text)
	}

	var buf bytes.Buffer
	jsonOutput = true
	err = journalRun(ctx, &buf, journal.Input{UserID: "tester", Content: content})
	jsonOutput = false
	if err != nil {
		t.Fatalf("journalRun: %v", err)
	}
	var e journal.Entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if want := sentiment.Score(text); e.Sentiment.Score != want.Score || e.Sentiment.Label != want.Label {
		t.Errorf("sentiment = %+v, want %+v", e.Sentiment, want)
	}

	// A filled-in list item stays with the entry.
	_, content = draftContent(strings.Replace(draft, "1. \n", "1. my sister\n", 1), scaffold)
	if content != "1. my sister" {
		t.Errorf("content = %q, want the filled item", content)
	}
}

func TestJournalPromptsRun(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := journalPromptsRun(&buf); err != nil {
		t.Fatalf("journalPromptsRun: %v", err)
	}
	for _, name := range []string{"gratitude", "reflection", "stress", "weekly-review"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("missing prompt %s:\n%s", name, buf.String())
		}
	}
}
