package template

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/mood"
)

// Render executes a Go text/template with the provided variables.
// Missing variables render as "<no value>".
//
// Example:
//
//	content, err := Render("Hello {{.name}}", map[string]string{"name": "Alice"})
//	// content = "Hello Alice"
func Render(tmplContent string, vars map[string]string) (string, error) {
	tmpl, err := template.New("content").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Vars returns the variables available to prompts: date, weekday, name and
// mood. mood describes latest, or reads "not checked in" when latest is nil.
func Vars(now time.Time, name string, latest *mood.Sample) map[string]string {
	m := "not checked in"
	if latest != nil {
		m = fmt.Sprintf("%d/10 (%s)", latest.Mood, mood.Label(latest.Mood))
	}
	return map[string]string{
		"date":    now.Format("2006-01-02"),
		"weekday": now.Format("Monday"),
		"name":    name,
		"mood":    m,
	}
}
