package grader

import "strings"

// FormatValidator validates raw text against format criteria. Validators are
// pure: same text and criteria always produce the same Validation, with no
// hidden state or I/O.
type FormatValidator func(output string, criteria FormatCriteria) Validation

// FormatGrader grades output-format compliance for JSON, XML, Markdown, CSV,
// and YAML. The built-in validators are deliberately shallow heuristics;
// stricter parsers can be swapped in per format with WithValidator (see the
// strict package), which is an explicit opt-in, never the default.
//
// A FormatGrader holds one active FormatCriteria at a time; don't share an
// instance across concurrent calls with different criteria.
type FormatGrader struct {
	criteria  FormatCriteria
	overrides map[string]FormatValidator
}

// FormatGraderOption configures a FormatGrader.
type FormatGraderOption func(*FormatGrader)

// WithValidator replaces the built-in validator for the named format.
func WithValidator(format string, v FormatValidator) FormatGraderOption {
	return func(g *FormatGrader) {
		g.overrides[strings.ToLower(format)] = v
	}
}

// NewFormatGrader creates a FormatGrader. A nil criteria means no
// requirements beyond baseline format syntax.
func NewFormatGrader(criteria *FormatCriteria, opts ...FormatGraderOption) *FormatGrader {
	g := &FormatGrader{overrides: make(map[string]FormatValidator)}
	if criteria != nil {
		g.criteria = *criteria
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetCriteria replaces the active criteria, keeping validator overrides.
func (g *FormatGrader) SetCriteria(c FormatCriteria) {
	g.criteria = c
}

// builtinValidators maps format names to the default shallow validators.
var builtinValidators = map[string]FormatValidator{
	"json":     ValidateJSON,
	"xml":      ValidateXML,
	"markdown": ValidateMarkdown,
	"csv":      ValidateCSV,
	"yaml":     ValidateYAML,
}

// Grade validates the output as the given format and derives the final
// score. An empty formatType falls back to the criteria's RequiredFormat.
//
// This is the only place scoring policy lives: 10 for a clean validation,
// otherwise max(1, 10 - 2*errors).
func (g *FormatGrader) Grade(output, formatType string) Result {
	if formatType == "" {
		formatType = g.criteria.RequiredFormat
	}
	if formatType == "" {
		return Result{
			Score:    5.0,
			Feedback: "No format type specified for validation",
			Details:  map[string]any{"error": "No format type specified"},
			Passed:   false,
		}
	}

	name := strings.ToLower(formatType)
	validator, ok := g.overrides[name]
	if !ok {
		validator, ok = builtinValidators[name]
	}

	var validation Validation
	if ok {
		validation = validator(output, g.criteria)
	} else {
		validation = Validation{
			Passed:   false,
			Feedback: "Unsupported format type: " + formatType,
			Errors:   []string{"Format '" + formatType + "' is not supported"},
		}
	}

	score := 10.0
	if !validation.Passed {
		score = max(1.0, 10.0-float64(len(validation.Errors))*2)
	}

	feedback := "Format validation passed"
	if !validation.Passed {
		feedback = validation.Feedback
	}

	return Result{
		Score:    score,
		Feedback: feedback,
		Details:  map[string]any{"format_validation": validation},
		Passed:   validation.Passed,
	}
}
