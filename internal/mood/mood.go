// Package mood defines the daily check-in sample and its activity tags.
package mood

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/id"
	"github.com/chris-regnier/wellnessctl/internal/validation"
)

// Bounds of the check-in scales.
const (
	MinMood   = 1
	MaxMood   = 10
	MinEnergy = 1
	MaxEnergy = 5
	MinStress = 1
	MaxStress = 5
)

// Activity is a tag describing something done on the day of a check-in.
type Activity string

const (
	Exercise   Activity = "exercise"
	Work       Activity = "work"
	Social     Activity = "social"
	Relaxation Activity = "relaxation"
	Hobbies    Activity = "hobbies"
	Outdoors   Activity = "outdoors"
	Creative   Activity = "creative"
	Learning   Activity = "learning"
)

// Activities lists every known tag in canonical order.
var Activities = []Activity{Exercise, Work, Social, Relaxation, Hobbies, Outdoors, Creative, Learning}

// ParseActivity converts a user supplied tag to an Activity.
func ParseActivity(s string) (Activity, error) {
	want := Activity(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Activities {
		if a == want {
			return a, nil
		}
	}
	return "", validation.Field("activities", fmt.Sprintf("unknown activity %q", s))
}

// ActivitySet is an ordered, duplicate-free set of activities.
type ActivitySet []Activity

// NewActivitySet parses and de-duplicates tags, returning them in canonical order.
func NewActivitySet(tags ...string) (ActivitySet, error) {
	present := make(map[Activity]bool, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		a, err := ParseActivity(tag)
		if err != nil {
			return nil, err
		}
		present[a] = true
	}
	set := make(ActivitySet, 0, len(present))
	for _, a := range Activities {
		if present[a] {
			set = append(set, a)
		}
	}
	return set, nil
}

// Has reports whether a is in the set.
func (s ActivitySet) Has(a Activity) bool {
	for _, x := range s {
		if x == a {
			return true
		}
	}
	return false
}

// Strings returns the tags as plain strings.
func (s ActivitySet) Strings() []string {
	out := make([]string, len(s))
	for i, a := range s {
		out[i] = string(a)
	}
	return out
}

// Label returns the description shown next to a mood score.
func Label(score int) string {
	labels := [...]string{
		"Very Sad", "Sad", "Okay", "Good", "Happy",
		"Very Happy", "Excellent", "Amazing", "Incredible", "Perfect",
	}
	if score < MinMood || score > MaxMood {
		return ""
	}
	return labels[score-1]
}

// Input holds the raw values of a check-in before validation.
type Input struct {
	UserID     string    `json:"user_id" validate:"required"`
	Date       time.Time `json:"date"`
	Mood       int       `json:"mood" validate:"gte=1,lte=10"`
	Energy     int       `json:"energy" validate:"gte=1,lte=5"`
	Stress     int       `json:"stress" validate:"gte=1,lte=5"`
	Activities []string  `json:"activities"`
	Notes      string    `json:"notes" validate:"max=2000"`
	SleepHours *float64  `json:"sleep_hours" validate:"omitnil,gte=0,lte=24"`
}

// Sample is a validated check-in. Construct it with NewSample; a Sample is
// never modified after creation.
type Sample struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Date       time.Time   `json:"date"`
	Mood       int         `json:"mood"`
	Energy     int         `json:"energy"`
	Stress     int         `json:"stress"`
	Activities ActivitySet `json:"activities"`
	Notes      string      `json:"notes,omitempty"`
	SleepHours *float64    `json:"sleep_hours,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewSample validates in and builds a Sample with a fresh ID. A zero Date
// defaults to the day of now.
func NewSample(in Input, now time.Time) (Sample, error) {
	if err := validation.Struct(in); err != nil {
		return Sample{}, err
	}
	acts, err := NewActivitySet(in.Activities...)
	if err != nil {
		return Sample{}, err
	}

	sampleID, err := id.New()
	if err != nil {
		return Sample{}, err
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}

	return Sample{
		ID:         sampleID,
		UserID:     in.UserID,
		Date:       Day(date),
		Mood:       in.Mood,
		Energy:     in.Energy,
		Stress:     in.Stress,
		Activities: acts,
		Notes:      strings.TrimSpace(in.Notes),
		SleepHours: in.SleepHours,
		CreatedAt:  now.UTC(),
	}, nil
}

// Validate re-checks the bounds of a sample loaded from storage.
func (s Sample) Validate() error {
	in := Input{
		UserID:     s.UserID,
		Mood:       s.Mood,
		Energy:     s.Energy,
		Stress:     s.Stress,
		Activities: s.Activities.Strings(),
		Notes:      s.Notes,
		SleepHours: s.SleepHours,
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	_, err := NewActivitySet(in.Activities...)
	return err
}

// Day normalizes t to local midnight of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
