package strict

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mskalski/grader"
)

// Markdown parses the output into a goldmark AST and checks the criteria
// against real document structure: headings instead of "# " substrings,
// fenced code blocks instead of backtick counting, list nodes instead of
// line regexes, and GFM table nodes instead of a lone '|'.
func Markdown(output string, criteria grader.FormatCriteria) grader.Validation {
	result := grader.Validation{Passed: true}

	source := []byte(output)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))

	var (
		headings      []string
		hasCodeBlock  bool
		hasBulletList bool
		hasNumbering  bool
		hasTable      bool
	)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			headings = append(headings, headingText(node, source))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			hasCodeBlock = true
		case *ast.List:
			if node.IsOrdered() {
				hasNumbering = true
			} else {
				hasBulletList = true
			}
		case *east.Table:
			hasTable = true
		}
		return ast.WalkContinue, nil
	})

	if criteria.RequiredHeaders != nil {
		var missing []string
		for _, header := range criteria.RequiredHeaders {
			if !containsHeading(headings, header) {
				missing = append(missing, header)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required headers: "+strings.Join(missing, ", "))
		}
	}

	if criteria.RequiredSections != nil {
		outputLower := strings.ToLower(output)
		var missing []string
		for _, section := range criteria.RequiredSections {
			if !strings.Contains(outputLower, strings.ToLower(section)) {
				missing = append(missing, section)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required sections: "+strings.Join(missing, ", "))
		}
	}

	if criteria.RequireCodeBlocks && !hasCodeBlock {
		result.Passed = false
		result.Errors = append(result.Errors, "Code blocks are required but not found")
	}

	if criteria.RequireBulletPoints && !hasBulletList {
		result.Passed = false
		result.Errors = append(result.Errors, "Bullet points are required but not found")
	}

	if criteria.RequireNumbering && !hasNumbering {
		result.Passed = false
		result.Errors = append(result.Errors, "Numbered lists are required but not found")
	}

	if criteria.RequireTables && !hasTable {
		result.Passed = false
		result.Errors = append(result.Errors, "Tables are required but not found")
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "Markdown format validation passed"
	}

	return result
}

// headingText extracts the plain text of a heading node.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// containsHeading reports whether any heading's text starts with the
// required header, case-insensitively. Prefix matching keeps "Summary"
// satisfied by "Summary of Results" the way the substring check did.
func containsHeading(headings []string, header string) bool {
	want := strings.ToLower(header)
	for _, h := range headings {
		if strings.HasPrefix(strings.ToLower(h), want) {
			return true
		}
	}
	return false
}
