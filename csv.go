package grader

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateCSV checks that the output has a header plus at least one data
// row, that required columns appear in the header, and that every data row
// has the header's column count. Splitting is a plain comma split with no
// quoting support -- a comma inside a quoted field will miscount columns.
// Only the first inconsistent row is reported. Both behaviors are kept for
// compatibility; the strict package offers a real CSV reader.
func ValidateCSV(output string, criteria FormatCriteria) Validation {
	result := Validation{Passed: true}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		result.Passed = false
		result.Errors = append(result.Errors, "CSV must have at least header and one data row")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	header := strings.Split(lines[0], ",")
	if criteria.RequiredFields != nil {
		var missing []string
		for _, field := range criteria.RequiredFields {
			if !slices.Contains(header, field) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required columns: "+strings.Join(missing, ", "))
		}
	}

	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		columns := strings.Split(line, ",")
		if len(columns) != len(header) {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d has %d columns, expected %d", i+1, len(columns), len(header)))
			break
		}
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "CSV format validation passed"
	}

	return result
}
