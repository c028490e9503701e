package strict

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mskalski/grader"
)

// CSV reads the output with a real CSV reader, so quoted fields containing
// commas count as single columns. Every inconsistent row is reported, not
// just the first.
func CSV(output string, criteria grader.FormatCriteria) grader.Validation {
	result := grader.Validation{Passed: true}

	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(output)))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV format: %v", err))
			result.Feedback = strings.Join(result.Errors, "; ")
			return result
		}
		records = append(records, record)
	}

	if len(records) < 2 {
		result.Passed = false
		result.Errors = append(result.Errors, "CSV must have at least header and one data row")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	header := records[0]
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

	for i, record := range records[1:] {
		if len(record) != len(header) {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d has %d columns, expected %d", i+1, len(record), len(header)))
		}
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "CSV format validation passed"
	}

	return result
}
