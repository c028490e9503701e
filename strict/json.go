package strict

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mskalski/grader"
)

// JSON validates output as JSON with a compiled JSON Schema. The criteria's
// Schema subset is marshaled and compiled with full draft semantics, so
// nested required properties are enforced even when the parent is absent
// from the instance. Required/forbidden fields and RequiredStructure keep
// their shallow meanings.
func JSON(output string, criteria grader.FormatCriteria) grader.Validation {
	result := grader.Validation{Passed: true}

	var parsed any
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		result.Passed = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON format: %v", err))
		result.Feedback = strings.Join(result.Errors, "; ")
		return result
	}

	obj, isObject := parsed.(map[string]any)

	if criteria.RequiredFields != nil {
		var missing []string
		for _, field := range criteria.RequiredFields {
			if !isObject {
				missing = append(missing, field)
				continue
			}
			if _, ok := obj[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Missing required fields: "+strings.Join(missing, ", "))
		}
	}

	if criteria.ForbiddenFields != nil && isObject {
		var found []string
		for _, field := range criteria.ForbiddenFields {
			if _, ok := obj[field]; ok {
				found = append(found, field)
			}
		}
		if len(found) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, "Contains forbidden fields: "+strings.Join(found, ", "))
		}
	}

	if criteria.ValidateJSONSchema && criteria.JSONSchema != nil {
		if errs := validateCompiledSchema(parsed, criteria.JSONSchema); len(errs) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, errs...)
		}
	}

	if criteria.RequiredStructure != nil {
		if errs := validateStructureStrict(parsed, criteria.RequiredStructure); len(errs) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, errs...)
		}
	}

	if len(result.Errors) > 0 {
		result.Feedback = strings.Join(result.Errors, "; ")
	} else {
		result.Feedback = "JSON format validation passed"
	}

	return result
}

// validateCompiledSchema compiles the schema subset into a real JSON Schema
// and runs it against the instance, flattening leaf causes into messages.
func validateCompiledSchema(data any, schema *grader.Schema) []string {
	raw, err := json.Marshal(schema)
	if err != nil {
		return []string{fmt.Sprintf("Invalid schema: %v", err)}
	}

	compiled, err := jsonschema.CompileString("criteria.schema.json", string(raw))
	if err != nil {
		return []string{fmt.Sprintf("Invalid schema: %v", err)}
	}

	if err := compiled.Validate(data); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return flattenCauses(ve)
		}
		return []string{err.Error()}
	}

	return nil
}

// flattenCauses collects the leaf validation errors, each prefixed with its
// instance location.
func flattenCauses(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}

	var errs []string
	for _, cause := range ve.Causes {
		errs = append(errs, flattenCauses(cause)...)
	}
	return errs
}

// validateStructureStrict mirrors the shallow RequiredStructure check over
// the decoded document.
func validateStructureStrict(data any, structure map[string]string) []string {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"Data must be an object"}
	}

	keys := make([]string, 0, len(structure))
	for k := range structure {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []string
	for _, key := range keys {
		value, present := obj[key]
		if !present {
			errs = append(errs, "Missing required key: "+key)
			continue
		}
		expected := structure[key]
		if actual := jsonValueType(value); actual != expected {
			errs = append(errs, fmt.Sprintf("Key '%s' should be %s, got %s", key, expected, actual))
		}
	}

	return errs
}

func jsonValueType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
