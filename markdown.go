package grader

import (
	"regexp"
	"strings"
)

var (
	bulletPointRE = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberingRE   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
)

// ValidateMarkdown checks each enabled criterion independently: required
// headers (H1/H2 literal forms only), required sections (case-insensitive
// substring), fenced code blocks, bullet points, numbered lists, and tables.
// The table check is presence of a '|' character; see the strict package for
// a separator-row-aware check.
func ValidateMarkdown(output string, criteria FormatCriteria) Validation {
	result := Validation{Passed: true}

	if criteria.RequiredHeaders != nil {
		var missing []string
		for _, header := range criteria.RequiredHeaders {
			if !strings.Contains(output, "# "+header) && !strings.Contains(output, "## "+header) {
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

	if criteria.RequireCodeBlocks && !strings.Contains(output, "```") {
		result.Passed = false
		result.Errors = append(result.Errors, "Code blocks are required but not found")
	}

	if criteria.RequireBulletPoints && !bulletPointRE.MatchString(output) {
		result.Passed = false
		result.Errors = append(result.Errors, "Bullet points are required but not found")
	}

	if criteria.RequireNumbering && !numberingRE.MatchString(output) {
		result.Passed = false
		result.Errors = append(result.Errors, "Numbered lists are required but not found")
	}

	if criteria.RequireTables && !strings.Contains(output, "|") {
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
