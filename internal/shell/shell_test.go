package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/storage/markdown"
)

var now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if ReadCache(dir) != nil {
		t.Fatal("expected nil cache before write")
	}

	c := NewCache("u1", "markdown", Status{Today: true, Streak: 4, TodayMood: 6.5}, now)
	if err := WriteCache(dir, c); err != nil {
		t.Fatalf("WriteCache: %v", err)
	}
	got := ReadCache(dir)
	if got == nil {
		t.Fatal("expected cache after write")
	}
	if got.Status() != c.Status() || got.UserID != "u1" || got.TodayDate != "2026-03-10" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := InvalidateCache(dir); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if ReadCache(dir) != nil {
		t.Error("expected nil cache after invalidation")
	}
	if err := InvalidateCache(dir); err != nil {
		t.Errorf("second invalidation: %v", err)
	}
}

func TestCacheIsFresh(t *testing.T) {
	c := NewCache("u1", "markdown", Status{}, now)
	tests := []struct {
		name   string
		cache  *PromptCache
		user   string
		at     time.Time
		expect bool
	}{
		{"nil", nil, "u1", now, false},
		{"fresh", c, "u1", now.Add(time.Minute), true},
		{"ttl expired", c, "u1", now.Add(10 * time.Minute), false},
		{"other user", c, "u2", now, false},
		{"date rolled", c, "u1", now.Add(7 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cache.IsFresh(tt.user, 5*time.Minute, tt.at); got != tt.expect {
				t.Errorf("IsFresh = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestComputeStatus(t *testing.T) {
	store, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("markdown.New: %v", err)
	}
	ctx := context.Background()

	for i, score := range []int{5, 7, 8} {
		day := now.AddDate(0, 0, -i)
		smp, err := mood.NewSample(mood.Input{UserID: "u1", Date: day, Mood: score, Energy: 3, Stress: 2}, day)
		if err != nil {
			t.Fatalf("NewSample: %v", err)
		}
		if err := store.SaveSample(ctx, smp); err != nil {
			t.Fatalf("SaveSample: %v", err)
		}
	}

	st, err := ComputeStatus(ctx, store, "u1", now)
	if err != nil {
		t.Fatalf("ComputeStatus: %v", err)
	}
	if !st.Today || st.Streak != 3 || st.TodayMood != 5 {
		t.Errorf("unexpected status: %+v", st)
	}

	st, err = ComputeStatus(ctx, store, "someone-else", now)
	if err != nil {
		t.Fatalf("ComputeStatus: %v", err)
	}
	if st.Today || st.Streak != 0 {
		t.Errorf("expected empty status for other user, got %+v", st)
	}
}

func TestWriteInit(t *testing.T) {
	for _, sh := range Shells {
		var buf bytes.Buffer
		if err := WriteInit(&buf, sh); err != nil {
			t.Fatalf("%s: %v", sh, err)
		}
		out := buf.String()
		if !strings.Contains(out, "__wellnessctl_prompt_hook") || !strings.Contains(out, "completion "+sh) {
			t.Errorf("%s script missing hook or completion:\n%s", sh, out)
		}
	}
	if err := WriteInit(&bytes.Buffer{}, "fish"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
