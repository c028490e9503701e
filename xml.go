package grader

import (
	"regexp"
	"strings"
)

var (
	xmlOpenTagRE  = regexp.MustCompile(`<([^/][^>]*)>`)
	xmlCloseTagRE = regexp.MustCompile(`</([^>]*)>`)
)

// ValidateXML performs heuristic XML validation: it is not a real parser.
// Opening and closing tags are counted by regex and compared; this does not
// verify nesting order and will false-positive on self-closing tags. That is
// a known limitation kept for compatibility -- use the strict package for a
// real well-formedness check.
func ValidateXML(output string, criteria FormatCriteria) Validation {
	result := Validation{Passed: true}

	if !strings.HasPrefix(strings.TrimSpace(output), "<") {
		result.Passed = false
		result.Errors = append(result.Errors, "Output does not start with XML tag")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	openTags := xmlOpenTagRE.FindAllString(output, -1)
	closeTags := xmlCloseTagRE.FindAllString(output, -1)
	if len(openTags) != len(closeTags) {
		result.Passed = false
		result.Errors = append(result.Errors, "Unbalanced XML tags")
	}

	if criteria.RequiredSections != nil {
		var missing []string
		for _, section := range criteria.RequiredSections {
			if !strings.Contains(output, "<"+section+">") {
				missing = append(missing, section)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required sections: "+strings.Join(missing, ", "))
		}
	}

	// Schema validation is declared unsupported: warning only, never
	// affects pass/fail.
	if criteria.XMLValidation && criteria.XMLSchema != "" {
		result.Warnings = append(result.Warnings, "XML schema validation not implemented in this version")
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "XML format validation passed"
	}

	return result
}
