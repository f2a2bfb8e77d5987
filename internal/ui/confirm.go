package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type confirmModel struct {
	prompt    string
	detail    string
	confirmed bool
	done      bool
	theme     Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch strings.ToLower(msg.String()) {
		case "y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "enter", "esc", "ctrl+c", "q":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	promptStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	var b strings.Builder
	if m.detail != "" {
		b.WriteString(m.theme.HelpStyle().Render(m.detail))
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString(" ")
	b.WriteString(m.theme.DangerStyle().Render("[y/N]"))
	b.WriteString(" ")
	return b.String()
}

// Confirm asks a yes/no question and returns true only on an explicit "y".
// Outside a terminal it reads one answer line from stdin.
func Confirm(prompt, detail string, theme Theme) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ConfirmFrom(os.Stdin, os.Stderr, prompt)
	}
	p := tea.NewProgram(confirmModel{prompt: prompt, detail: detail, theme: theme})
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}

// ConfirmFrom reads a single answer line from r. Anything other than
// "y" or "yes" declines.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
