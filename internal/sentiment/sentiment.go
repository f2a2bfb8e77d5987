// Package sentiment scores free text on a signed [-1, 1] scale using a fixed
// keyword lexicon. Scoring is a pure function of its input; Analyzer puts an
// asynchronous boundary around it so a model-backed implementation can be
// swapped in later.
package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Label is the coarse three-way classification of a score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

const (
	// Gain scales the raw keyword ratio before clamping.
	Gain = 5.0

	labelThreshold = 0.1
	minConfidence  = 0.3
	maxConfidence  = 0.95
)

// Result is the outcome of scoring a piece of text.
type Result struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Validate reports whether r could have been produced by a scorer. It guards
// results read back from storage.
func (r Result) Validate() error {
	if math.IsNaN(r.Score) || r.Score < -1 || r.Score > 1 {
		return fmt.Errorf("sentiment score %v out of range [-1, 1]", r.Score)
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("sentiment confidence %v out of range [0, 1]", r.Confidence)
	}
	switch r.Label {
	case Positive, Neutral, Negative:
		return nil
	default:
		return fmt.Errorf("unknown sentiment label %q", r.Label)
	}
}

// LabelFor classifies a score.
func LabelFor(score float64) Label {
	switch {
	case score > labelThreshold:
		return Positive
	case score < -labelThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Lexicon is a pair of keyword sets. Keys must be lower case.
type Lexicon struct {
	Positive map[string]struct{}
	Negative map[string]struct{}
}

// NewLexicon builds a Lexicon from word lists.
func NewLexicon(positive, negative []string) Lexicon {
	l := Lexicon{
		Positive: make(map[string]struct{}, len(positive)),
		Negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		l.Positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range negative {
		l.Negative[strings.ToLower(w)] = struct{}{}
	}
	return l
}

// DefaultLexicon is the built-in wellness vocabulary.
var DefaultLexicon = NewLexicon(
	[]string{
		"happy", "joy", "love", "excited", "grateful", "peaceful", "amazing",
		"wonderful", "great", "good", "better", "progress", "achievement",
	},
	[]string{
		"sad", "angry", "frustrated", "anxious", "worried", "depressed", "terrible",
		"awful", "bad", "worse", "difficult", "struggle", "pain",
	},
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize lower-cases text and splits it on runs of non-word characters.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Score scores text with l. Empty or whitespace-only text is neutral with the
// minimum confidence.
func (l Lexicon) Score(text string) Result {
	tokens := Tokenize(text)

	var pos, neg int
	for _, tok := range tokens {
		if _, ok := l.Positive[tok]; ok {
			pos++
		}
		if _, ok := l.Negative[tok]; ok {
			neg++
		}
	}

	raw := float64(pos-neg) / float64(max(len(tokens), 1))
	score := math.Max(-1, math.Min(1, raw*Gain))

	return Result{
		Score:      score,
		Label:      LabelFor(score),
		Confidence: math.Min(maxConfidence, math.Abs(score)+minConfidence),
	}
}

// Score scores text with DefaultLexicon.
func Score(text string) Result {
	return DefaultLexicon.Score(text)
}
