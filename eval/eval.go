// Package eval provides test helpers for LLM-as-judge evaluation patterns.
package eval

import (
	"os"
	"testing"

	"github.com/mskalski/grader"
)

// Eval provides assertion helpers for LLM-based test evaluation.
type Eval struct {
	judge grader.Judge
}

// New creates a new Eval with the given judge.
func New(judge grader.Judge) *Eval {
	return &Eval{judge: judge}
}

// AssertQuality evaluates the response against the prompt and fails the test
// if the overall score falls below minScore.
func (e *Eval) AssertQuality(tb testing.TB, prompt, response string, minScore float64) {
	tb.Helper()

	evaluation, err := e.judge.Judge(tb.Context(), prompt, response)
	if err != nil {
		tb.Errorf("quality evaluation failed: %v", err)
		return
	}

	if evaluation.OverallScore < minScore {
		tb.Errorf("quality below threshold: got %.1f, want >= %.1f\nFeedback: %s",
			evaluation.OverallScore, minScore, evaluation.OverallFeedback)
	}
}

// SkipUnlessEvals skips the test unless GOEVALS environment variable is set.
// Use at the start of eval tests to make them opt-in.
func SkipUnlessEvals(tb testing.TB) {
	tb.Helper()
	if os.Getenv("GOEVALS") == "" {
		tb.Skip("GOEVALS not set")
	}
}
