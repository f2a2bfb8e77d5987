// Package template holds journaling prompts. Prompts are composed into the
// editor draft for a new journal entry.
package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chris-regnier/wellnessctl/internal/storage"
)

// Prompt is a named journaling prompt. Content may reference the variables
// produced by Vars.
type Prompt struct {
	Name        string
	Description string
	Content     string
}

// Loader looks prompts up by name.
type Loader interface {
	Prompt(name string) (Prompt, error)
}

// Set is a Loader backed by a fixed collection of prompts.
type Set map[string]Prompt

// Prompt returns the named prompt or storage.ErrNotFound.
func (s Set) Prompt(name string) (Prompt, error) {
	p, ok := s[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Prompt{}, storage.ErrNotFound
	}
	return p, nil
}

// Sorted returns the prompts ordered by name.
func (s Set) Sorted() []Prompt {
	out := make([]Prompt, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Builtin returns the prompts shipped with wellnessctl.
func Builtin() Set {
	return Set{
		"gratitude": {
			Name:        "gratitude",
			Description: "Three things you are grateful for",
			Content:     "## Grateful For\n\n1. \n2. \n3. \n\n## Highlight of {{.weekday}}\n\n",
		},
		"reflection": {
			Name:        "reflection",
			Description: "How the day went and what you learned",
			Content:     "## How I Feel\n\nMood today: {{.mood}}\n\n## What Went Well\n\n\n## What I Would Change\n\n",
		},
		"stress": {
			Name:        "stress",
			Description: "Unpack what is weighing on you",
			Content:     "## What Is On My Mind\n\n\n## What I Can Control\n\n\n## One Small Next Step\n\n",
		},
		"weekly-review": {
			Name:        "weekly-review",
			Description: "Look back on the week ending {{.date}}",
			Content:     "## Wins This Week\n\n\n## Challenges\n\n\n## Focus For Next Week\n\n",
		},
	}
}

// ParseNames splits a comma-separated prompt names string into a slice.
func ParseNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// Compose loads the named prompts, renders them with vars and joins them.
// If names is empty, returns ("", nil). If any prompt is not found, returns
// an error immediately.
func Compose(loader Loader, names []string, vars map[string]string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		p, err := loader.Prompt(name)
		if err != nil {
			return "", fmt.Errorf("prompt %q: %w", name, err)
		}
		rendered, err := Render(p.Content, vars)
		if err != nil {
			return "", fmt.Errorf("prompt %q: %w", name, err)
		}
		parts = append(parts, strings.TrimRight(rendered, "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
