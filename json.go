package grader

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidateJSON parses the output as JSON and checks it against the criteria:
// top-level required/forbidden fields, the supported JSON Schema subset, and
// the direct key->type RequiredStructure mapping. Every error accumulates
// into one list; a parse failure short-circuits the remaining checks.
func ValidateJSON(output string, criteria FormatCriteria) Validation {
	result := Validation{Passed: true}

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
		if errs := validateSchema(parsed, criteria.JSONSchema); len(errs) > 0 {
			result.Passed = false
			result.Errors = append(result.Errors, errs...)
		}
	}

	if criteria.RequiredStructure != nil {
		if errs := validateStructure(parsed, criteria.RequiredStructure); len(errs) > 0 {
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

// jsonTypeName maps a decoded JSON value to its schema type name.
func jsonTypeName(v any) string {
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

// validateSchema recursively checks data against the supported schema
// subset: type compatibility, required-property presence, and nested
// properties. Nested errors are prefixed with the property path segment.
func validateSchema(data any, schema *Schema) []string {
	var errs []string

	if schema.Type != "" {
		actual := jsonTypeName(data)
		if actual != schema.Type {
			errs = append(errs, fmt.Sprintf("Expected %s, got %s", schema.Type, actual))
		}
	}

	obj, isObject := data.(map[string]any)

	if len(schema.Required) > 0 && isObject {
		for _, prop := range schema.Required {
			if _, ok := obj[prop]; !ok {
				errs = append(errs, "Missing required property: "+prop)
			}
		}
	}

	if len(schema.Properties) > 0 && isObject {
		// Sorted iteration keeps error order deterministic.
		for _, name := range sortedKeys(schema.Properties) {
			value, ok := obj[name]
			if !ok {
				continue
			}
			for _, err := range validateSchema(value, schema.Properties[name]) {
				errs = append(errs, name+": "+err)
			}
		}
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

// validateStructure checks each key's concrete value type against an
// expected type name. Unlike validateSchema this is a flat dictionary, not
// a recursive schema.
func validateStructure(data any, structure map[string]string) []string {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"Data must be an object"}
	}

	var errs []string
	for _, key := range sortedKeys(structure) {
		value, present := obj[key]
		if !present {
			errs = append(errs, "Missing required key: "+key)
			continue
		}
		expected := structure[key]
		if actual := jsonTypeName(value); actual != expected {
			errs = append(errs, fmt.Sprintf("Key '%s' should be %s, got %s", key, expected, actual))
		}
	}

	return errs
}
