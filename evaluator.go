package grader

import (
	"context"
	"fmt"
)

// Evaluator runs evaluation datasets end to end: generate a response for
// each test case with the Completer, grade it, and summarize. A fresh Grader
// is built per test case from that case's GradingConfig, so cases never
// share criteria state and callers may evaluate cases concurrently.
type Evaluator struct {
	client     Completer
	judge      Judge
	language   string
	graderOpts []Option
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLanguage sets the language used for syntax validation.
func WithLanguage(language string) EvaluatorOption {
	return func(e *Evaluator) { e.language = language }
}

// WithGraderOptions passes options (e.g. strict format validators) to every
// per-case Grader.
func WithGraderOptions(opts ...Option) EvaluatorOption {
	return func(e *Evaluator) { e.graderOpts = append(e.graderOpts, opts...) }
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(client Completer, judge Judge, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{client: client, judge: judge, language: "text"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunTestCase generates and grades a response for one test case. The case
// passes when both the structural and quality grades pass; the format grade
// informs the result but not the pass/fail verdict. Completion failures are
// recorded on the result, never returned.
func (e *Evaluator) RunTestCase(ctx context.Context, tc TestCase) CaseResult {
	result := CaseResult{
		TestCase:         tc,
		ExpectedResponse: tc.ExpectedResponse,
	}

	response, err := e.client.Complete(ctx, tc.Prompt)
	if err != nil {
		result.Error = fmt.Sprintf("completion failed: %v", err)
		return result
	}
	result.ActualResponse = response

	opts := make([]Option, 0, len(e.graderOpts)+2)
	opts = append(opts, e.graderOpts...)
	if tc.GradingConfig != nil {
		if tc.GradingConfig.Code != nil {
			opts = append(opts, WithCodeCriteria(*tc.GradingConfig.Code))
		}
		if tc.GradingConfig.Format != nil {
			opts = append(opts, WithFormatCriteria(*tc.GradingConfig.Format))
		}
	}
	g := New(e.judge, opts...)

	grading := g.GradeComprehensive(ctx, tc.Prompt, response, GradeOptions{
		Language:      e.language,
		IncludeFormat: true,
		FormatType:    tc.Format,
	})

	result.GradingResults = &grading
	result.Passed = grading.Code.Passed && grading.Quality.Passed
	return result
}

// RunEval evaluates a whole dataset sequentially and summarizes the
// outcomes. One failing case never aborts the run.
func (e *Evaluator) RunEval(ctx context.Context, dataset []TestCase) Summary {
	results := make([]CaseResult, 0, len(dataset))
	for _, tc := range dataset {
		results = append(results, e.RunTestCase(ctx, tc))
	}
	return Summarize(results)
}

// Summarize computes the pass/fail summary for a set of case results. An
// empty set yields the zero summary with a 0.0 pass rate.
func Summarize(results []CaseResult) Summary {
	summary := Summary{
		TotalTests: len(results),
		Results:    results,
	}
	for _, r := range results {
		if r.Passed {
			summary.PassedTests++
		}
	}
	summary.FailedTests = summary.TotalTests - summary.PassedTests
	if summary.TotalTests > 0 {
		summary.PassRate = float64(summary.PassedTests) / float64(summary.TotalTests)
	}
	return summary
}

// FailureAnalysis categorizes the failures of an evaluation run.
type FailureAnalysis struct {
	Message             string          `json:"message,omitempty"`
	FailureCount        int             `json:"failure_count"`
	ErrorFailures       int             `json:"error_failures"`
	CodeGraderFailures  int             `json:"code_grader_failures"`
	ModelGraderFailures int             `json:"model_grader_failures"`
	BothGraderFailures  int             `json:"both_grader_failures"`
	SampleFailures      []SampleFailure `json:"sample_failures"`
}

// SampleFailure is one truncated failure example for inspection.
type SampleFailure struct {
	Prompt              string `json:"prompt"`
	ActualResponse      string `json:"actual_response"`
	FailureReason       string `json:"failure_reason,omitempty"`
	CodeGraderFeedback  string `json:"code_grader_feedback,omitempty"`
	ModelGraderFeedback string `json:"model_grader_feedback,omitempty"`
}

// AnalyzeFailures summarizes failure patterns from an evaluation run,
// including up to maxDisplay sample failures.
func AnalyzeFailures(summary Summary, maxDisplay int) FailureAnalysis {
	var failed []CaseResult
	for _, r := range summary.Results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}

	if len(failed) == 0 {
		return FailureAnalysis{Message: "No failures to analyze!"}
	}

	analysis := FailureAnalysis{FailureCount: len(failed)}
	for _, r := range failed {
		switch {
		case r.Error != "":
			analysis.ErrorFailures++
		case r.GradingResults == nil:
			analysis.ErrorFailures++
		case !r.GradingResults.Code.Passed && !r.GradingResults.Quality.Passed:
			analysis.BothGraderFailures++
		case !r.GradingResults.Code.Passed:
			analysis.CodeGraderFailures++
		case !r.GradingResults.Quality.Passed:
			analysis.ModelGraderFailures++
		}
	}

	for _, r := range failed[:min(maxDisplay, len(failed))] {
		sample := SampleFailure{
			Prompt:         truncate(r.TestCase.Prompt, 200),
			ActualResponse: truncate(r.ActualResponse, 200),
		}
		if r.Error != "" {
			sample.FailureReason = "Error: " + r.Error
		} else if r.GradingResults != nil {
			sample.CodeGraderFeedback = r.GradingResults.Code.Feedback
			sample.ModelGraderFeedback = r.GradingResults.Quality.Feedback
		}
		analysis.SampleFailures = append(analysis.SampleFailures, sample)
	}

	return analysis
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
