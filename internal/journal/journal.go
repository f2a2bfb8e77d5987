// Package journal defines free-text journal entries and their stored sentiment.
package journal

import (
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/id"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/validation"
)

// DefaultTitle is used when an entry is submitted without a title.
const DefaultTitle = "Untitled Entry"

// Input holds a journal submission before validation.
type Input struct {
	UserID  string   `json:"user_id" validate:"required"`
	Title   string   `json:"title" validate:"max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"max=32,dive,max=64"`
	Private bool     `json:"private"`
}

// Entry is a validated journal entry. Sentiment is computed once at creation.
type Entry struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Tags      []string         `json:"tags,omitempty"`
	Private   bool             `json:"private"`
	Sentiment sentiment.Result `json:"sentiment"`
	CreatedAt time.Time        `json:"created_at"`
}

// ValidateContent checks whether content is non-empty.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return validation.Field("content", "must not be empty")
	}
	return nil
}

// New validates in and builds an Entry carrying res as its sentiment.
func New(in Input, res sentiment.Result, now time.Time) (Entry, error) {
	if err := ValidateContent(in.Content); err != nil {
		return Entry{}, err
	}
	if err := validation.Struct(in); err != nil {
		return Entry{}, err
	}
	if err := res.Validate(); err != nil {
		return Entry{}, validation.Field("sentiment", err.Error())
	}

	entryID, err := id.New()
	if err != nil {
		return Entry{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle
	}

	return Entry{
		ID:        entryID,
		UserID:    in.UserID,
		Title:     title,
		Content:   strings.TrimSpace(in.Content),
		Tags:      NormalizeTags(in.Tags),
		Private:   in.Private,
		Sentiment: res,
		CreatedAt: now.UTC(),
	}, nil
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims and lower-cases tags, dropping blanks and duplicates
// while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Preview returns a single-line, truncated preview of the content.
func (e *Entry) Preview(maxLen int) string {
	return Snippet(e.Content, maxLen)
}

// Snippet flattens s to one line of at most maxLen characters, ending in
// "..." when cut and maxLen leaves room for it.
func Snippet(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= maxLen {
		return string(r)
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// HasTag reports whether the entry carries tag.
func (e *Entry) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
