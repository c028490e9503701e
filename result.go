package grader

// Result is the single unit of output produced by every grader. It is a
// terminal value: created once per grading call, never mutated afterwards.
//
// The wire shape is fixed at {score, feedback, details, passed} so saved
// evaluation artifacts round-trip.
type Result struct {
	Score    float64        `json:"score"`    // 0-10
	Feedback string         `json:"feedback"` // semicolon-joined issues, or a success message
	Details  map[string]any `json:"details"`  // sub-check name -> structured diagnostic
	Passed   bool           `json:"passed"`
}

// Validation is the outcome of one format validator. Validators accumulate
// every error; they never compute the final 0-10 score (that policy lives in
// FormatGrader.Grade).
type Validation struct {
	Passed   bool     `json:"passed"`
	Feedback string   `json:"feedback"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// LengthCheck reports whether an output met its length bounds.
type LengthCheck struct {
	Length   int    `json:"length"`
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}

// WordCheck reports required/forbidden vocabulary findings.
type WordCheck struct {
	Passed          bool     `json:"passed"`
	Feedback        string   `json:"feedback"`
	MissingRequired []string `json:"missing_required"`
	FoundForbidden  []string `json:"found_forbidden"`
}

// SyntaxCheck reports syntax parseability for a given language.
type SyntaxCheck struct {
	Passed   bool     `json:"passed"`
	Feedback string   `json:"feedback"`
	Errors   []string `json:"errors"`
}

// ReadabilityMetrics are the raw counts behind a readability score.
type ReadabilityMetrics struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

// ReadabilityCheck reports the heuristic readability score on a 1-10 scale.
type ReadabilityCheck struct {
	Score    float64            `json:"score"`
	Passed   bool               `json:"passed"`
	Feedback string             `json:"feedback"`
	Metrics  ReadabilityMetrics `json:"metrics"`
}
