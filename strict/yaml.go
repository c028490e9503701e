package strict

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mskalski/grader"
)

// YAML decodes the output with a real YAML parser and checks required and
// forbidden fields against the actual top-level mapping keys, not
// substrings. Non-mapping documents (bare scalars, sequences) fail any
// required-field check.
func YAML(output string, criteria grader.FormatCriteria) grader.Validation {
	result := grader.Validation{Passed: true}

	if strings.TrimSpace(output) == "" {
		result.Passed = false
		result.Errors = append(result.Errors, "Empty YAML content")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(output), &parsed); err != nil {
		result.Passed = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid YAML format: %v", err))
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	mapping, isMapping := parsed.(map[string]any)

	if criteria.RequiredFields != nil {
		var missing []string
		for _, field := range criteria.RequiredFields {
			if !isMapping {
				missing = append(missing, field)
				continue
			}
			if _, ok := mapping[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required fields: "+strings.Join(missing, ", "))
		}
	}

	if criteria.ForbiddenFields != nil && isMapping {
		var found []string
		for _, field := range criteria.ForbiddenFields {
			if _, ok := mapping[field]; ok {
				found = append(found, field)
			}
		}
		if len(found) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Contains forbidden fields: "+strings.Join(found, ", "))
		}
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "YAML format validation passed"
	}

	return result
}
