package grader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mskalski/grader"
)

func TestValidateJSON(t *testing.T) {
	t.Parallel()

	t.Run("invalid JSON short-circuits remaining checks", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{broken`, grader.FormatCriteria{
			RequiredFields: []string{"a"},
		})
		require.False(t, v.Passed)
		require.Len(t, v.Errors, 1)
		assert.Contains(t, v.Errors[0], "Invalid JSON format:")
	})

	t.Run("required and forbidden top-level fields", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{"name": "x", "debug": true}`, grader.FormatCriteria{
			RequiredFields:  []string{"name", "version"},
			ForbiddenFields: []string{"debug"},
		})
		require.False(t, v.Passed)
		require.Len(t, v.Errors, 2)
		assert.Equal(t, "Missing required fields: version", v.Errors[0])
		assert.Equal(t, "Contains forbidden fields: debug", v.Errors[1])
		assert.Equal(t, "Missing required fields: version; Contains forbidden fields: debug", v.Feedback)
	})

	t.Run("non-object misses every required field", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`[1, 2]`, grader.FormatCriteria{
			RequiredFields: []string{"a", "b"},
		})
		require.False(t, v.Passed)
		assert.Equal(t, "Missing required fields: a, b", v.Errors[0])
	})

	t.Run("schema validation is gated on the flag", func(t *testing.T) {
		t.Parallel()

		schema := &grader.Schema{Type: "object", Required: []string{"id"}}

		v := grader.ValidateJSON(`{}`, grader.FormatCriteria{JSONSchema: schema})
		assert.True(t, v.Passed)

		v = grader.ValidateJSON(`{}`, grader.FormatCriteria{
			ValidateJSONSchema: true,
			JSONSchema:         schema,
		})
		require.False(t, v.Passed)
		assert.Equal(t, "Missing required property: id", v.Errors[0])
	})

	t.Run("schema type mismatch", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`[1]`, grader.FormatCriteria{
			ValidateJSONSchema: true,
			JSONSchema:         &grader.Schema{Type: "object"},
		})
		require.False(t, v.Passed)
		assert.Equal(t, "Expected object, got array", v.Errors[0])
	})

	t.Run("nested schema errors carry the property path", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{"user": {"id": "abc"}}`, grader.FormatCriteria{
			ValidateJSONSchema: true,
			JSONSchema: &grader.Schema{
				Type: "object",
				Properties: map[string]*grader.Schema{
					"user": {
						Type: "object",
						Properties: map[string]*grader.Schema{
							"id": {Type: "number"},
						},
					},
				},
			},
		})
		require.False(t, v.Passed)
		assert.Equal(t, "user: id: Expected number, got string", v.Errors[0])
	})

	t.Run("absent properties are not checked by the schema", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{}`, grader.FormatCriteria{
			ValidateJSONSchema: true,
			JSONSchema: &grader.Schema{
				Type: "object",
				Properties: map[string]*grader.Schema{
					"name": {Type: "string"},
				},
			},
		})
		assert.True(t, v.Passed)
	})

	t.Run("required structure checks key types", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{"count": "three", "tags": []}`, grader.FormatCriteria{
			RequiredStructure: map[string]string{
				"count": "number",
				"tags":  "array",
				"name":  "string",
			},
		})
		require.False(t, v.Passed)
		assert.Contains(t, v.Errors, "Key 'count' should be number, got string")
		assert.Contains(t, v.Errors, "Missing required key: name")
	})

	t.Run("required structure on a non-object", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`"scalar"`, grader.FormatCriteria{
			RequiredStructure: map[string]string{"a": "string"},
		})
		require.False(t, v.Passed)
		assert.Equal(t, "Data must be an object", v.Errors[0])
	})

	t.Run("clean document passes", func(t *testing.T) {
		t.Parallel()

		v := grader.ValidateJSON(`{"a": 1}`, grader.FormatCriteria{})
		assert.True(t, v.Passed)
		assert.Equal(t, "JSON format validation passed", v.Feedback)
		assert.Empty(t, v.Errors)
	})
}
