package strict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mskalski/grader"
)

// XML runs the output through a real XML token stream, so mismatched
// nesting and malformed tags fail here even when tag counts balance.
// Required sections are matched against element names seen in the stream,
// which accepts attributes and self-closing forms the shallow validator
// rejects.
func XML(output string, criteria grader.FormatCriteria) grader.Validation {
	result := grader.Validation{Passed: true}

	if !strings.HasPrefix(strings.TrimSpace(output), "<") {
		result.Passed = false
		result.Errors = append(result.Errors, "Output does not start with XML tag")
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	seen := make(map[string]bool)
	dec := xml.NewDecoder(strings.NewReader(output))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid XML: %v", err))
			break
		}
		if start, ok := tok.(xml.StartElement); ok {
			seen[start.Name.Local] = true
		}
	}

	if criteria.RequiredSections != nil {
		var missing []string
		for _, section := range criteria.RequiredSections {
			if !seen[section] {
				missing = append(missing, section)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required sections: "+strings.Join(missing, ", "))
		}
	}

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
