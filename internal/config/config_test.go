package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "markdown" {
		t.Errorf("storage = %q, want markdown", cfg.Storage)
	}
	if cfg.Trend.Window != 7 {
		t.Errorf("trend.window = %d, want 7", cfg.Trend.Window)
	}
	if cfg.Trend.Days != 30 {
		t.Errorf("trend.days = %d, want 30", cfg.Trend.Days)
	}
	if cfg.Checkin.Policy != PolicyAppend {
		t.Errorf("checkin.policy = %q, want %q", cfg.Checkin.Policy, PolicyAppend)
	}
	if cfg.Sentiment.Latency != 0 {
		t.Errorf("sentiment.latency = %v, want 0", cfg.Sentiment.Latency)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve.addr = %q, want :8080", cfg.Serve.Addr)
	}
	if cfg.User.ID == "" {
		t.Error("expected a default user id")
	}
}

func TestLoadDefaultTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Theme.Preset != "default-dark" {
		t.Errorf("expected preset 'default-dark', got %q", cfg.Theme.Preset)
	}
	if cfg.Theme.MarkdownStyle != "" {
		t.Errorf("expected empty markdown_style (uses preset default), got %q", cfg.Theme.MarkdownStyle)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
storage = "sqlite"

[user]
id = "alex"
name = "Alex"

[trend]
window = 3
days = 14

[checkin]
policy = "one-per-day"

[sentiment]
latency = "250ms"

[theme]
preset = "default-light"
primary = "#FF0000"
markdown_style = "light"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.User.ID != "alex" || cfg.User.Name != "Alex" {
		t.Errorf("user = %+v", cfg.User)
	}
	if cfg.Trend.Window != 3 || cfg.Trend.Days != 14 {
		t.Errorf("trend = %+v", cfg.Trend)
	}
	if cfg.Checkin.Policy != PolicyOnePerDay {
		t.Errorf("checkin.policy = %q", cfg.Checkin.Policy)
	}
	if cfg.Sentiment.Latency != 250*time.Millisecond {
		t.Errorf("sentiment.latency = %v, want 250ms", cfg.Sentiment.Latency)
	}
	if cfg.Theme.Preset != "default-light" {
		t.Errorf("expected preset 'default-light', got %q", cfg.Theme.Preset)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("expected primary '#FF0000', got %q", cfg.Theme.Primary)
	}
	if cfg.Theme.MarkdownStyle != "light" {
		t.Errorf("expected markdown_style 'light', got %q", cfg.Theme.MarkdownStyle)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WELLNESSCTL_STORAGE", "sqlite")
	path := writeConfig(t, `storage = "markdown"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != "sqlite" {
		t.Errorf("storage = %q, want sqlite from environment", cfg.Storage)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", `storage = "postgres"`},
		{"unknown policy", "[checkin]\npolicy = \"twice\""},
		{"zero window", "[trend]\nwindow = 0"},
		{"negative latency", "[sentiment]\nlatency = \"-1s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
