package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/wellnessctl/internal/config"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
)

func TestResolveThemeOverrides(t *testing.T) {
	cfg := config.ThemeConfig{
		Preset:     "default-dark",
		Primary:    "#FF0000",
		Background: "#112233",
	}
	theme := ResolveTheme(cfg)

	if string(theme.Primary) != "#FF0000" {
		t.Errorf("expected primary '#FF0000', got %q", string(theme.Primary))
	}
	if string(theme.Background) != "#112233" {
		t.Errorf("expected background '#112233', got %q", string(theme.Background))
	}
}

func TestResolveThemeMarkdownStyleOverride(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark", MarkdownStyle: "notty"})
	if theme.MarkdownStyle != "notty" {
		t.Errorf("expected markdown_style 'notty', got %q", theme.MarkdownStyle)
	}
}

func TestResolveThemeUnknownPresetFallsBack(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "nonexistent"})
	if theme != presets["default-dark"] {
		t.Errorf("expected fallback to default-dark, got %+v", theme)
	}
}

func TestResolveThemeAllPresets(t *testing.T) {
	cases := []struct {
		preset        string
		markdownStyle string
	}{
		{"default-dark", "dark"},
		{"default-light", "light"},
		{"dracula", "dark"},
		{"catppuccin-mocha", "dark"},
		{"catppuccin-latte", "light"},
		{"calm", "dark"},
	}
	if len(cases) != len(PresetNames()) {
		t.Fatalf("test covers %d presets, PresetNames lists %d", len(cases), len(PresetNames()))
	}

	for _, tc := range cases {
		t.Run(tc.preset, func(t *testing.T) {
			theme := ResolveTheme(config.ThemeConfig{Preset: tc.preset})

			if string(theme.Primary) == "" {
				t.Error("expected primary color to be set")
			}
			if string(theme.Positive) == "" {
				t.Error("expected positive color to be set")
			}
			if string(theme.Danger) == "" {
				t.Error("expected danger color to be set")
			}
			if string(theme.Background) == "" {
				t.Error("expected background color to be set")
			}
			if theme.MarkdownStyle != tc.markdownStyle {
				t.Errorf("expected markdown_style %q, got %q", tc.markdownStyle, theme.MarkdownStyle)
			}
		})
	}
}

func TestAllStylesIncludeBackground(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})

	styles := map[string]lipgloss.Style{
		"HelpStyle":       theme.HelpStyle(),
		"HeaderStyle":     theme.HeaderStyle(),
		"AccentStyle":     theme.AccentStyle(),
		"DangerStyle":     theme.DangerStyle(),
		"PositiveStyle":   theme.PositiveStyle(),
		"BorderStyle":     theme.BorderStyle(),
		"FullScreenStyle": theme.FullScreenStyle(80, 24),
	}

	for name, style := range styles {
		if style.GetBackground() != theme.Background {
			t.Errorf("%s: expected background %v, got %v", name, theme.Background, style.GetBackground())
		}
	}
}

func TestMoodStyle(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "dracula"})

	tests := []struct {
		score float64
		want  lipgloss.TerminalColor
	}{
		{1, theme.Danger},
		{4.9, theme.Danger},
		{5, theme.Accent},
		{6.9, theme.Accent},
		{7, theme.Positive},
		{10, theme.Positive},
	}
	for _, tt := range tests {
		if got := theme.MoodStyle(tt.score).GetForeground(); got != tt.want {
			t.Errorf("MoodStyle(%v) foreground = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestSentimentStyle(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "dracula"})

	if got := theme.SentimentStyle(sentiment.Positive).GetForeground(); got != theme.Positive {
		t.Errorf("positive foreground = %v", got)
	}
	if got := theme.SentimentStyle(sentiment.Negative).GetForeground(); got != theme.Danger {
		t.Errorf("negative foreground = %v", got)
	}
	if got := theme.SentimentStyle(sentiment.Neutral).GetForeground(); got != theme.Muted {
		t.Errorf("neutral foreground = %v", got)
	}
}

func TestPaintScreenDimensions(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	output := theme.PaintScreen("line1\nline2", 40, 10, 40)

	lines := strings.Split(stripANSI(output), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) < 40 {
			t.Errorf("line %d: expected min width 40, got %d", i, len(line))
		}
	}
}

func TestPaintScreenCentering(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	// termWidth=100, contentWidth=60 => leftPad=20
	output := theme.PaintScreen("hello", 100, 5, 60)

	lines := strings.Split(stripANSI(output), "\n")
	first := lines[0]
	if !strings.HasPrefix(first, strings.Repeat(" ", 20)+"hello") {
		t.Errorf("expected 20 chars of left padding, got: %q", first)
	}
}

func TestPaintScreenIncludesClearEOL(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	output := theme.PaintScreen("hello", 40, 3, 40)

	for i, line := range strings.Split(output, "\n") {
		if !strings.HasSuffix(line, "\x1b[K") {
			t.Errorf("line %d: expected to end with \\x1b[K erase sequence", i)
		}
	}
}

func TestBgEscapeCode(t *testing.T) {
	// 256-color theme (default-dark uses "235")
	code256 := ResolveTheme(config.ThemeConfig{Preset: "default-dark"}).bgEscapeCode()
	if code256 != "\x1b[48;5;235m" {
		t.Errorf("expected 256-color escape, got %q", code256)
	}

	// True-color theme (dracula uses "#282A36")
	codeHex := ResolveTheme(config.ThemeConfig{Preset: "dracula"}).bgEscapeCode()
	if codeHex != "\x1b[48;2;40;42;54m" {
		t.Errorf("expected true-color escape, got %q", codeHex)
	}
}
