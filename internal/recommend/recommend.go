// Package recommend derives wellness suggestions from a single check-in using
// a fixed, ordered rule table. Output is a pure function of the inputs.
package recommend

import (
	"fmt"

	"github.com/chris-regnier/wellnessctl/internal/mood"
)

// MaxResults caps the number of suggestions returned per evaluation.
const MaxResults = 3

// Type categorizes a recommendation card.
type Type string

const (
	Exercise   Type = "exercise"
	Meditation Type = "meditation"
	Activity   Type = "activity"
	Tip        Type = "tip"
)

// Difficulty grades the effort of a recommendation.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Recommendation is a typed suggestion card. Completed is the only field
// that changes after creation.
type Recommendation struct {
	ID              string     `json:"id"`
	Type            Type       `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Difficulty      Difficulty `json:"difficulty"`
	Completed       bool       `json:"completed"`
}

// Complete marks the recommendation as done.
func (r *Recommendation) Complete() {
	r.Completed = true
}

type selected struct {
	id string
	suggestion
}

func evaluate(moodScore, stress, energy int, recent mood.ActivitySet) []selected {
	c := checkIn{mood: moodScore, stress: stress, energy: energy, activities: recent}

	var out []selected
	for _, r := range rules {
		if !r.cond(c) {
			continue
		}
		for i, s := range r.suggestions {
			out = append(out, selected{id: fmt.Sprintf("%s-%d", r.name, i+1), suggestion: s})
			if len(out) == MaxResults {
				return out
			}
		}
	}
	return out
}

// Recommend returns up to MaxResults suggestion texts for the check-in, in
// rule priority order. A nil or empty activity set counts as no social
// activity.
func Recommend(moodScore, stress, energy int, recent mood.ActivitySet) []string {
	sel := evaluate(moodScore, stress, energy, recent)
	out := make([]string, len(sel))
	for i, s := range sel {
		out[i] = s.text
	}
	return out
}

// Cards returns the same selection as Recommend as typed cards. IDs are stable
// per rule and position, so completion can be recorded against them.
func Cards(moodScore, stress, energy int, recent mood.ActivitySet) []Recommendation {
	sel := evaluate(moodScore, stress, energy, recent)
	out := make([]Recommendation, len(sel))
	for i, s := range sel {
		rec := Recommendation{
			ID:          s.id,
			Type:        s.kind,
			Title:       s.title,
			Description: s.text,
			Difficulty:  s.difficulty,
		}
		if s.duration > 0 {
			d := s.duration
			rec.DurationMinutes = &d
		}
		out[i] = rec
	}
	return out
}

// ApplyCompletions sets Completed on cards whose ID is marked done.
func ApplyCompletions(recs []Recommendation, done map[string]bool) []Recommendation {
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	for i := range out {
		if done[out[i].ID] {
			out[i].Complete()
		}
	}
	return out
}

// Pending returns the cards not yet completed.
func Pending(recs []Recommendation) []Recommendation {
	var out []Recommendation
	for _, r := range recs {
		if !r.Completed {
			out = append(out, r)
		}
	}
	return out
}

// CompletedCount returns how many cards are completed.
func CompletedCount(recs []Recommendation) int {
	n := 0
	for _, r := range recs {
		if r.Completed {
			n++
		}
	}
	return n
}

// Known reports whether id names a suggestion in the rule table.
func Known(id string) bool {
	for _, r := range rules {
		for i := range r.suggestions {
			if fmt.Sprintf("%s-%d", r.name, i+1) == id {
				return true
			}
		}
	}
	return false
}
