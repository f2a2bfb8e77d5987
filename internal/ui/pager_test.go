package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/wellnessctl/internal/config"
)

func TestPagerViewFillsScreen(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	m := pagerModel{
		content:  "Line 1\nLine 2\nLine 3\nLine 4\nLine 5",
		maxWidth: 0,
		theme:    theme,
	}

	// Simulate window size to make it ready
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(pagerModel)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) < 80 {
			t.Errorf("line %d: expected min width 80, got %d", i, len(line))
		}
	}
}

func TestPagerViewPreservesContent(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "calm"})
	m := pagerModel{
		content:  "Mood trend for the last 30 days",
		maxWidth: 60,
		theme:    theme,
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = sized.(pagerModel)

	stripped := stripANSI(m.View())
	if !strings.Contains(stripped, "last 30 days") {
		t.Error("expected pager content in output")
	}
	if !strings.Contains(stripped, "scroll") {
		t.Error("expected footer help text in output")
	}
}

func TestPagerQuitKeys(t *testing.T) {
	m := pagerModel{content: "x"}
	for _, key := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s: expected quit command", key)
		}
	}
}

func TestOutputOrPageWritesToNonStdout(t *testing.T) {
	var buf bytes.Buffer
	theme := ResolveTheme(config.ThemeConfig{})
	if err := OutputOrPage(&buf, "plain output\n", false, theme); err != nil {
		t.Fatalf("OutputOrPage: %v", err)
	}
	if buf.String() != "plain output\n" {
		t.Errorf("got %q", buf.String())
	}
}
