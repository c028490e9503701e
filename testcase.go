package grader

import "context"

// GradingConfig carries the per-test-case criteria. Either half may be
// absent, leaving that grader on its defaults.
type GradingConfig struct {
	Code   *Criteria       `json:"code,omitempty"`
	Format *FormatCriteria `json:"format,omitempty"`
}

// TestCase is one entry of an evaluation dataset: the prompt to run, an
// optional pinned output format, and optional grading configuration.
type TestCase struct {
	Prompt           string         `json:"prompt"`
	Format           string         `json:"format,omitempty"`
	SolutionCriteria string         `json:"solution_criteria,omitempty"`
	ExpectedResponse string         `json:"expected_response,omitempty"`
	GradingConfig    *GradingConfig `json:"grading_config,omitempty"`
}

// CaseResult is the outcome of evaluating one test case end to end.
type CaseResult struct {
	TestCase         TestCase       `json:"test_case"`
	ActualResponse   string         `json:"actual_response,omitempty"`
	ExpectedResponse string         `json:"expected_response,omitempty"`
	GradingResults   *Comprehensive `json:"grading_results,omitempty"`
	Error            string         `json:"error,omitempty"`
	Passed           bool           `json:"passed"`
}

// Summary aggregates an evaluation run over a dataset.
type Summary struct {
	TotalTests  int          `json:"total_tests"`
	PassedTests int          `json:"passed_tests"`
	FailedTests int          `json:"failed_tests"`
	PassRate    float64      `json:"pass_rate"`
	Results     []CaseResult `json:"results"`
}

// Completer generates a response for a prompt. It is the chat transport
// boundary: one synchronous text completion per call. Timeouts and retries
// belong to the implementation (see the anthropic package).
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DatasetLoader loads evaluation datasets from a source.
type DatasetLoader interface {
	Load(path string) ([]TestCase, error)
}

// ResultStore persists and retrieves case results.
type ResultStore interface {
	Load(path string) ([]CaseResult, error)
	Save(path string, results []CaseResult) error
}
