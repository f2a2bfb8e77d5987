package sentiment

import (
	"context"
	"time"
)

// Analyzer scores text, possibly by calling out to a remote model.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}

// LexiconAnalyzer adapts a Lexicon to the Analyzer interface. The zero value
// uses DefaultLexicon.
type LexiconAnalyzer struct {
	Lexicon *Lexicon
}

// Analyze scores text synchronously. It only fails if ctx is already done.
func (a LexiconAnalyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if a.Lexicon == nil {
		return Score(text), nil
	}
	return a.Lexicon.Score(text), nil
}

// DelayedAnalyzer waits Delay before delegating to Next, standing in for the
// round trip of a network-backed model.
type DelayedAnalyzer struct {
	Next  Analyzer
	Delay time.Duration
}

// Analyze waits for the configured delay or until ctx is done.
func (a DelayedAnalyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if a.Delay > 0 {
		timer := time.NewTimer(a.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	next := a.Next
	if next == nil {
		next = LexiconAnalyzer{}
	}
	return next.Analyze(ctx, text)
}

// NewAnalyzer returns the default lexicon analyzer, wrapped in a
// DelayedAnalyzer when latency is positive.
func NewAnalyzer(latency time.Duration) Analyzer {
	if latency <= 0 {
		return LexiconAnalyzer{}
	}
	return DelayedAnalyzer{Next: LexiconAnalyzer{}, Delay: latency}
}

// Outcome is the value delivered by Async.
type Outcome struct {
	Result Result
	Err    error
}

// Async runs a.Analyze in its own goroutine. The returned channel receives
// exactly one Outcome and is then closed.
func Async(ctx context.Context, a Analyzer, text string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := a.Analyze(ctx, text)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}
