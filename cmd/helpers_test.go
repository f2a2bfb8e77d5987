package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/chris-regnier/wellnessctl/internal/config"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/storage/markdown"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	store = setupTestStore(t)
	appConfig = &config.Config{
		Storage: "markdown",
		DataDir: t.TempDir(),
		User:    config.UserConfig{ID: "tester", Name: "Tess"},
		Trend:   config.TrendConfig{Window: 7, Days: 30},
		Checkin: config.CheckinConfig{Policy: config.PolicyAppend},
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "d",
		},
	}
	logger = zap.NewNop()
	sess = session.NewLocal("", session.User{ID: "tester", Name: "Tess"})
	svc = newService(store)
	jsonOutput = false
	t.Cleanup(func() { jsonOutput = false })
}

// mustCheckIn records a check-in for the test user and returns its ID.
func mustCheckIn(t *testing.T, m, e, s int, acts ...string) string {
	t.Helper()
	var buf bytes.Buffer
	jsonOutput = true
	defer func() { jsonOutput = false }()
	if err := checkinRun(context.Background(), &buf, mood.Input{
		UserID: "tester", Mood: m, Energy: e, Stress: s, Activities: acts,
	}); err != nil {
		t.Fatalf("checkinRun: %v", err)
	}
	var res wellness.CheckInResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decoding check-in: %v\n%s", err, buf.String())
	}
	return res.Sample.ID
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes color codes so output can be asserted on.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
