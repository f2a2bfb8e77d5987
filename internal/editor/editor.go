// Package editor opens an external editor to compose journal entries.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// hint is removed from the draft before it is parsed.
const hint = "<!-- The first '# ' heading becomes the title. Save an empty file to cancel. -->"

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Draft is the initial buffer for a new journal entry.
func Draft(title string) string {
	if title == "" {
		return "# \n\n" + hint + "\n"
	}
	return "# " + title + "\n\n" + hint + "\n"
}

// Parse splits an edited draft into title and body. A leading "# " heading
// is taken as the title; the hint line is dropped.
func Parse(text string) (title, body string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) == hint {
			continue
		}
		kept = append(kept, l)
	}

	// Skip leading blank lines
	i := 0
	for i < len(kept) && strings.TrimSpace(kept[i]) == "" {
		i++
	}
	if i < len(kept) && strings.HasPrefix(strings.TrimSpace(kept[i]), "#") &&
		!strings.HasPrefix(strings.TrimSpace(kept[i]), "##") {
		title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(kept[i]), "#"))
		i++
	}
	body = strings.TrimSpace(strings.Join(kept[i:], "\n"))
	return title, body
}

// StripScaffold removes from body every line left exactly as it appears in
// scaffold, such as prompt headings and unfilled list items, and collapses
// the blank runs this leaves behind.
func StripScaffold(body, scaffold string) string {
	if strings.TrimSpace(scaffold) == "" {
		return body
	}
	untouched := make(map[string]bool)
	for _, l := range strings.Split(scaffold, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			untouched[l] = true
		}
	}

	var kept []string
	blank := false
	for _, l := range strings.Split(body, "\n") {
		t := strings.TrimSpace(l)
		if untouched[t] {
			continue
		}
		if t == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Edit opens initialContent in an editor and returns the edited content.
// If the user saves unchanged content or an empty file, it returns the
// original content (or "" when emptied) and changed=false.
func Edit(ctx context.Context, editorCmd string, initialContent string) (content string, changed bool, err error) {
	tmp, err := os.CreateTemp("", "wellnessctl-journal-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("empty editor command")
	}

	cmdArgs := append(parts[1:], tmpName)
	cmd := exec.CommandContext(ctx, parts[0], cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	result := string(data)

	if strings.TrimSpace(result) == "" {
		return "", false, nil
	}
	if strings.TrimSpace(result) == strings.TrimSpace(initialContent) {
		return initialContent, false, nil
	}
	return result, true, nil
}
