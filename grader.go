// Package grader grades text outputs (typically LLM-generated) against
// configurable criteria across three dimensions: structural correctness
// (length, vocabulary, syntax, readability), free-form quality via an
// external judge, and output-format compliance (JSON, XML, Markdown, CSV,
// YAML).
//
// Every grading call returns a Result value; validation failures are never
// surfaced as errors. The only side effect anywhere in the package is the
// quality judge's network call, which sits behind the Judge interface.
package grader

import (
	"context"
	"fmt"
)

// GradeOptions controls a comprehensive grading pass.
type GradeOptions struct {
	Language      string // language for syntax validation; empty means "text"
	IncludeFormat bool   // also run format grading
	FormatType    string // pins the format; empty means detect from prompt/response
}

// Comprehensive combines the per-grader results for one prompt/response
// pair. JSON keys match the persisted artifact shape.
type Comprehensive struct {
	Code    Result  `json:"code_grader"`
	Quality Result  `json:"model_grader"`
	Format  *Result `json:"format_grader,omitempty"`
}

// BatchInput is one prompt/response pair for batch grading.
type BatchInput struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// BatchItem records the outcome of grading one batch input. Success is
// false only for unexpected failures (a panic inside a grader); judge
// failures surface as failed quality Results, not item errors.
type BatchItem struct {
	Index    int            `json:"index"`
	Prompt   string         `json:"prompt"`
	Response string         `json:"response"`
	Results  *Comprehensive `json:"results,omitempty"`
	Error    string         `json:"error,omitempty"`
	Success  bool           `json:"success"`
}

// Grader composes the structural, quality, and format graders into one
// comprehensive verdict per input. It HAS its component graders and a judge;
// it never wraps a concrete API client.
//
// A Grader carries one active Criteria and one active FormatCriteria; use a
// separate Grader (or criteria value) per concurrent test case.
type Grader struct {
	code    *CodeGrader
	quality *QualityGrader
	format  *FormatGrader
}

// Option configures a Grader.
type Option func(*Grader)

// WithCodeCriteria sets the structural grading criteria.
func WithCodeCriteria(c Criteria) Option {
	return func(g *Grader) { g.code.SetCriteria(c) }
}

// WithFormatCriteria sets the format grading criteria.
func WithFormatCriteria(c FormatCriteria) Option {
	return func(g *Grader) { g.format.SetCriteria(c) }
}

// WithFormatValidator swaps in a custom validator for the named format, e.g.
// the strict package's real parsers.
func WithFormatValidator(format string, v FormatValidator) Option {
	return func(g *Grader) { WithValidator(format, v)(g.format) }
}

// New creates a Grader with default criteria, backed by the given judge.
func New(judge Judge, opts ...Option) *Grader {
	g := &Grader{
		code:    NewCodeGrader(nil),
		quality: NewQualityGrader(judge),
		format:  NewFormatGrader(nil),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetCodeCriteria replaces the structural grading criteria.
func (g *Grader) SetCodeCriteria(c Criteria) { g.code.SetCriteria(c) }

// SetFormatCriteria replaces the format grading criteria.
func (g *Grader) SetFormatCriteria(c FormatCriteria) { g.format.SetCriteria(c) }

// GradeCode runs structural grading only.
func (g *Grader) GradeCode(output, language string) Result {
	return g.code.Grade(output, language)
}

// GradeQuality runs judge-based quality grading only.
func (g *Grader) GradeQuality(ctx context.Context, prompt, response string) Result {
	return g.quality.Grade(ctx, prompt, response)
}

// GradeFormat runs format grading only. An empty formatType falls back to
// the criteria's required format.
func (g *Grader) GradeFormat(output, formatType string) Result {
	return g.format.Grade(output, formatType)
}

// GradeComprehensive always runs the structural and quality graders; when
// opts.IncludeFormat is set it also resolves a format (opts.FormatType, or
// detection from the prompt and response) and runs the format grader.
func (g *Grader) GradeComprehensive(ctx context.Context, prompt, response string, opts GradeOptions) Comprehensive {
	language := opts.Language
	if language == "" {
		language = "text"
	}

	result := Comprehensive{
		Code:    g.GradeCode(response, language),
		Quality: g.GradeQuality(ctx, prompt, response),
	}

	if opts.IncludeFormat {
		formatType := opts.FormatType
		if formatType == "" {
			formatType = DetectFormat(prompt, response)
		}
		formatResult := g.GradeFormat(response, formatType)
		result.Format = &formatResult
	}

	return result
}

// GradeBatch grades each input independently. A panic while grading one
// item is recovered at the batch boundary and recorded on that item alone;
// the rest of the batch proceeds.
func (g *Grader) GradeBatch(ctx context.Context, inputs []BatchInput, opts GradeOptions) []BatchItem {
	items := make([]BatchItem, 0, len(inputs))

	for i, input := range inputs {
		item := BatchItem{
			Index:    i,
			Prompt:   input.Prompt,
			Response: input.Response,
		}

		results, err := g.gradeOne(ctx, input, opts)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Results = results
			item.Success = true
		}

		items = append(items, item)
	}

	return items
}

// gradeOne wraps one comprehensive grade in a panic recovery boundary.
func (g *Grader) gradeOne(ctx context.Context, input BatchInput, opts GradeOptions) (results *Comprehensive, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("grading panicked: %v", r)
		}
	}()

	opts.IncludeFormat = true
	c := g.GradeComprehensive(ctx, input.Prompt, input.Response, opts)
	return &c, nil
}
