package grader_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mskalski/grader"
	"github.com/mskalski/grader/mock"
)

func echoCompleter(response string) *mock.Completer {
	return &mock.Completer{
		CompleteFn: func(ctx context.Context, prompt string) (string, error) {
			return response, nil
		},
	}
}

func TestEvaluator_RunTestCase(t *testing.T) {
	t.Parallel()

	t.Run("passing case", func(t *testing.T) {
		t.Parallel()

		completer := echoCompleter(`{"greeting": "hello there my friend", "tone": "warm and welcoming today"}`)
		e := grader.NewEvaluator(completer, passingJudge(), grader.WithLanguage("json"))

		result := e.RunTestCase(t.Context(), grader.TestCase{
			Prompt: "Write a JSON greeting",
			Format: "json",
		})

		assert.True(t, result.Passed)
		assert.Empty(t, result.Error)
		require.NotNil(t, result.GradingResults)
		assert.True(t, result.GradingResults.Code.Passed)
		assert.True(t, result.GradingResults.Quality.Passed)
		require.NotNil(t, result.GradingResults.Format)
		assert.True(t, result.GradingResults.Format.Passed)
	})

	t.Run("completion failure is recorded, not returned", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("rate limited")
			},
		}
		e := grader.NewEvaluator(completer, passingJudge())

		result := e.RunTestCase(t.Context(), grader.TestCase{Prompt: "anything"})
		assert.False(t, result.Passed)
		assert.Equal(t, "completion failed: rate limited", result.Error)
		assert.Nil(t, result.GradingResults)
	})

	t.Run("per-case grading config applies", func(t *testing.T) {
		t.Parallel()

		completer := echoCompleter("a response that mentions nothing special at all really")
		e := grader.NewEvaluator(completer, passingJudge())

		result := e.RunTestCase(t.Context(), grader.TestCase{
			Prompt: "mention the magic word",
			GradingConfig: &grader.GradingConfig{
				Code: &grader.Criteria{
					RequiredWords:        []string{"abracadabra"},
					ReadabilityThreshold: 1.0,
				},
			},
		})

		assert.False(t, result.Passed)
		assert.Contains(t, result.GradingResults.Code.Feedback, "Missing required words: abracadabra")
	})

	t.Run("format grade does not gate the verdict", func(t *testing.T) {
		t.Parallel()

		// Not JSON, so the format grade fails; code and quality still pass.
		completer := echoCompleter("A perfectly fine plain sentence with plenty of readable words here.")
		e := grader.NewEvaluator(completer, passingJudge(),
			grader.WithGraderOptions(grader.WithCodeCriteria(grader.Criteria{ReadabilityThreshold: 1.0})))

		result := e.RunTestCase(t.Context(), grader.TestCase{
			Prompt: "say something",
			Format: "json",
		})

		require.NotNil(t, result.GradingResults.Format)
		assert.False(t, result.GradingResults.Format.Passed)
		assert.True(t, result.Passed)
	})
}

func TestEvaluator_RunEval(t *testing.T) {
	t.Parallel()

	t.Run("summarizes a dataset", func(t *testing.T) {
		t.Parallel()

		responses := map[string]string{
			"good": `{"status": "a fine answer with plenty of words to read"}`,
			"bad":  "",
		}
		completer := &mock.Completer{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				if r, ok := responses[prompt]; ok && r != "" {
					return r, nil
				}
				return "", errors.New("no response")
			},
		}
		e := grader.NewEvaluator(completer, passingJudge(), grader.WithLanguage("json"))

		summary := e.RunEval(t.Context(), []grader.TestCase{
			{Prompt: "good", Format: "json"},
			{Prompt: "bad"},
		})

		assert.Equal(t, 2, summary.TotalTests)
		assert.Equal(t, 1, summary.PassedTests)
		assert.Equal(t, 1, summary.FailedTests)
		assert.Equal(t, 0.5, summary.PassRate)
		assert.Len(t, summary.Results, 2)
	})

	t.Run("empty dataset yields the zero summary", func(t *testing.T) {
		t.Parallel()

		e := grader.NewEvaluator(echoCompleter("x"), passingJudge())
		summary := e.RunEval(t.Context(), nil)

		assert.Equal(t, 0, summary.TotalTests)
		assert.Equal(t, 0, summary.PassedTests)
		assert.Equal(t, 0, summary.FailedTests)
		assert.Equal(t, 0.0, summary.PassRate)
	})
}

func TestAnalyzeFailures(t *testing.T) {
	t.Parallel()

	t.Run("no failures", func(t *testing.T) {
		t.Parallel()

		summary := grader.Summarize([]grader.CaseResult{{Passed: true}})
		analysis := grader.AnalyzeFailures(summary, 5)
		assert.Equal(t, "No failures to analyze!", analysis.Message)
		assert.Zero(t, analysis.FailureCount)
	})

	t.Run("categorizes failure modes", func(t *testing.T) {
		t.Parallel()

		results := []grader.CaseResult{
			{Error: "completion failed: timeout"},
			{GradingResults: &grader.Comprehensive{
				Code:    grader.Result{Passed: false, Feedback: "too short"},
				Quality: grader.Result{Passed: true},
			}},
			{GradingResults: &grader.Comprehensive{
				Code:    grader.Result{Passed: true},
				Quality: grader.Result{Passed: false, Feedback: "unhelpful"},
			}},
			{GradingResults: &grader.Comprehensive{
				Code:    grader.Result{Passed: false},
				Quality: grader.Result{Passed: false},
			}},
		}

		analysis := grader.AnalyzeFailures(grader.Summarize(results), 2)
		assert.Equal(t, 4, analysis.FailureCount)
		assert.Equal(t, 1, analysis.ErrorFailures)
		assert.Equal(t, 1, analysis.CodeGraderFailures)
		assert.Equal(t, 1, analysis.ModelGraderFailures)
		assert.Equal(t, 1, analysis.BothGraderFailures)
		assert.Len(t, analysis.SampleFailures, 2)
		assert.Equal(t, "Error: completion failed: timeout", analysis.SampleFailures[0].FailureReason)
		assert.Equal(t, "too short", analysis.SampleFailures[1].CodeGraderFeedback)
	})

	t.Run("truncates long samples", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", 300)
		results := []grader.CaseResult{{
			TestCase:       grader.TestCase{Prompt: long},
			ActualResponse: long,
			Error:          "boom",
		}}

		analysis := grader.AnalyzeFailures(grader.Summarize(results), 1)
		require.Len(t, analysis.SampleFailures, 1)
		assert.Len(t, analysis.SampleFailures[0].Prompt, 203)
		assert.True(t, strings.HasSuffix(analysis.SampleFailures[0].Prompt, "..."))
	})
}
