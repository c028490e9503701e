package grader

import (
	"encoding/json"
	"fmt"
	"go/parser"
	"go/token"
	"regexp"
	"strings"
)

// CodeGrader performs programmatic grading of outputs: length bounds,
// required/forbidden vocabulary, syntax parseability, and a heuristic
// readability score.
//
// A CodeGrader holds one active Criteria at a time; use one grader (or one
// criteria value) per logical test case rather than sharing an instance
// across concurrent calls.
type CodeGrader struct {
	criteria Criteria
}

// NewCodeGrader creates a CodeGrader. A nil criteria means DefaultCriteria.
func NewCodeGrader(criteria *Criteria) *CodeGrader {
	c := DefaultCriteria()
	if criteria != nil {
		c = *criteria
	}
	return &CodeGrader{criteria: c}
}

// SetCriteria replaces the active criteria.
func (g *CodeGrader) SetCriteria(c Criteria) {
	g.criteria = c
}

// CheckLength verifies the trimmed output length against the configured
// bounds. Unset bounds are skipped.
func (g *CodeGrader) CheckLength(output string) LengthCheck {
	length := len(strings.TrimSpace(output))
	result := LengthCheck{Length: length, Passed: true}

	if g.criteria.MinLength != nil && length < *g.criteria.MinLength {
		result.Passed = false
		result.Feedback = fmt.Sprintf("Output too short. Minimum length: %d, got: %d", *g.criteria.MinLength, length)
	}
	if g.criteria.MaxLength != nil && length > *g.criteria.MaxLength {
		result.Passed = false
		result.Feedback = fmt.Sprintf("Output too long. Maximum length: %d, got: %d", *g.criteria.MaxLength, length)
	}

	return result
}

// VerifyWords checks required and forbidden vocabulary with case-insensitive
// substring search.
func (g *CodeGrader) VerifyWords(output string) WordCheck {
	outputLower := strings.ToLower(output)
	result := WordCheck{Passed: true}

	for _, word := range g.criteria.RequiredWords {
		if !strings.Contains(outputLower, strings.ToLower(word)) {
			result.MissingRequired = append(result.MissingRequired, word)
		}
	}
	if len(result.MissingRequired) > 0 {
		result.Passed = false
		result.Feedback = "Missing required words: " + strings.Join(result.MissingRequired, ", ")
	}

	for _, word := range g.criteria.ForbiddenWords {
		if strings.Contains(outputLower, strings.ToLower(word)) {
			result.FoundForbidden = append(result.FoundForbidden, word)
		}
	}
	if len(result.FoundForbidden) > 0 {
		result.Passed = false
		result.Feedback = "Contains forbidden words: " + strings.Join(result.FoundForbidden, ", ")
	}

	return result
}

// ValidateSyntax checks that the output parses as the given language.
// Supported languages: go (a complete source file), json, regex. Any other
// name is reported as unsupported when syntax checking is enabled -- a caller
// misconfiguration, distinct from a content defect.
func (g *CodeGrader) ValidateSyntax(output, language string) SyntaxCheck {
	result := SyntaxCheck{Passed: true}

	if !g.criteria.SyntaxCheck {
		return result
	}

	switch strings.ToLower(language) {
	case "go":
		fset := token.NewFileSet()
		if _, err := parser.ParseFile(fset, "", output, parser.SkipObjectResolution); err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("Syntax error: %v", err))
		}
	case "json":
		var v any
		if err := json.Unmarshal([]byte(output), &v); err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("JSON error: %v", err))
		}
	case "regex":
		if _, err := regexp.Compile(output); err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("Regex error: %v", err))
		}
	default:
		result.Passed = false
		result.Feedback = "Unsupported language: " + language
		return result
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	}

	return result
}

var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

// Readability computes a heuristic readability score on a 1-10 scale:
// base 5, +2 for a word count in [10,100] (else +1 above 100), +2 for an
// average of 5-20 words per sentence (else +1 below 5), +1 for a line break.
func (g *CodeGrader) Readability(output string) ReadabilityCheck {
	words := strings.Fields(output)

	if len(words) == 0 {
		passed := 1 >= g.criteria.ReadabilityThreshold
		return ReadabilityCheck{
			Score:    1,
			Passed:   passed,
			Feedback: "No readable content found",
		}
	}

	var sentences []string
	for _, s := range sentenceSplitRE.Split(output, -1) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}

	wordCount := len(words)
	sentenceCount := len(sentences)
	avgWordsPerSentence := 0.0
	if sentenceCount > 0 {
		avgWordsPerSentence = float64(wordCount) / float64(sentenceCount)
	}

	score := 5.0

	switch {
	case wordCount >= 10 && wordCount <= 100:
		score += 2
	case wordCount > 100:
		score++
	}

	switch {
	case avgWordsPerSentence >= 5 && avgWordsPerSentence <= 20:
		score += 2
	case avgWordsPerSentence < 5:
		score++
	}

	if strings.Contains(output, "\n") {
		score++
	}

	score = min(10, max(1, score))

	return ReadabilityCheck{
		Score:    score,
		Passed:   score >= g.criteria.ReadabilityThreshold,
		Feedback: fmt.Sprintf("Readability score: %g/10", score),
		Metrics: ReadabilityMetrics{
			WordCount:           wordCount,
			SentenceCount:       sentenceCount,
			AvgWordsPerSentence: avgWordsPerSentence,
		},
	}
}

// Grade runs all four sub-checks and combines them into one Result.
//
// The overall score is the readability score alone; the other sub-checks
// contribute to feedback and to passed but not to the number. Overall passed
// is the AND of all four sub-checks.
func (g *CodeGrader) Grade(output, language string) Result {
	details := make(map[string]any)
	allPassed := true
	var feedbackParts []string

	length := g.CheckLength(output)
	details["length"] = length
	if !length.Passed {
		allPassed = false
		feedbackParts = append(feedbackParts, length.Feedback)
	}

	words := g.VerifyWords(output)
	details["words"] = words
	if !words.Passed {
		allPassed = false
		feedbackParts = append(feedbackParts, words.Feedback)
	}

	syntax := g.ValidateSyntax(output, language)
	details["syntax"] = syntax
	if !syntax.Passed {
		allPassed = false
		feedbackParts = append(feedbackParts, syntax.Feedback)
	}

	readability := g.Readability(output)
	details["readability"] = readability
	if !readability.Passed {
		allPassed = false
		feedbackParts = append(feedbackParts, readability.Feedback)
	}

	feedback := "All checks passed"
	if len(feedbackParts) > 0 {
		feedback = strings.Join(feedbackParts, "; ")
	}

	return Result{
		Score:    readability.Score,
		Feedback: feedback,
		Details:  details,
		Passed:   allPassed,
	}
}
