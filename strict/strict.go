// Package strict provides format validators backed by real parsers: JSON
// Schema compilation, a full YAML decode, a Markdown AST walk, XML token
// streaming, and RFC 4180 CSV reading.
//
// The root package's built-in validators are shallow heuristics and stay
// that way; these validators are an explicit opt-in via
// grader.WithValidator or grader.WithFormatValidator. They keep the same
// Validation shape and error-accumulation behavior but reject anything a
// real parser would.
package strict

import "github.com/mskalski/grader"

// Options returns the FormatGrader options that replace every built-in
// validator with its strict counterpart.
func Options() []grader.FormatGraderOption {
	return []grader.FormatGraderOption{
		grader.WithValidator("json", JSON),
		grader.WithValidator("xml", XML),
		grader.WithValidator("markdown", Markdown),
		grader.WithValidator("csv", CSV),
		grader.WithValidator("yaml", YAML),
	}
}

// GraderOptions returns the Grader-level options that replace every
// built-in validator with its strict counterpart.
func GraderOptions() []grader.Option {
	return []grader.Option{
		grader.WithFormatValidator("json", JSON),
		grader.WithFormatValidator("xml", XML),
		grader.WithFormatValidator("markdown", Markdown),
		grader.WithFormatValidator("csv", CSV),
		grader.WithFormatValidator("yaml", YAML),
	}
}
