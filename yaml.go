package grader

import "strings"

// ValidateYAML performs heuristic YAML validation: it is not a real parser.
// Required and forbidden fields are matched as the literal substring
// "field:" anywhere in the text, not key-scoped and not indentation-aware,
// so a field name appearing inside a value will false-positive. This shallow
// behavior is deliberate and kept for compatibility; the strict package has
// a real parser.
func ValidateYAML(output string, criteria FormatCriteria) Validation {
	result := Validation{Passed: true}

	if strings.TrimSpace(output) == "" {
		result.Passed = false
		result.Errors = append(result.Errors, "Empty YAML content")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	if !strings.Contains(output, ":") {
		result.Passed = false
		result.Errors = append(result.Errors, "YAML must contain key-value pairs with ':' separator")
	}

	if criteria.RequiredFields != nil {
		var missing []string
		for _, field := range criteria.RequiredFields {
			if !strings.Contains(output, field+":") {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required fields: "+strings.Join(missing, ", "))
		}
	}

	if criteria.ForbiddenFields != nil {
		var found []string
		for _, field := range criteria.ForbiddenFields {
			if strings.Contains(output, field+":") {
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
