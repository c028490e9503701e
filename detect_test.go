package grader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mskalski/grader"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	t.Run("prompt keywords win over response shape", func(t *testing.T) {
		t.Parallel()

		// Response looks like JSON, but the prompt asks for YAML.
		format := grader.DetectFormat("Return the config as YAML", `{"a": 1}`)
		assert.Equal(t, "yaml", format)
	})

	t.Run("keyword priority order", func(t *testing.T) {
		t.Parallel()

		// Both "json" and "csv" appear; json is checked first.
		format := grader.DetectFormat("convert this csv to json", "")
		assert.Equal(t, "json", format)
	})

	t.Run("response shape heuristics", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			response string
			want     string
		}{
			{"braces", `{"a": 1}`, "json"},
			{"angle brackets", "<root><a/></root>", "xml"},
			{"heading with code fence", "# Title\n```go\n```", "markdown"},
			{"comma rows", "a,b,c\n1,2,3", "csv"},
			{"colon pairs", "name: x\nitems:\n- one", "yaml"},
			{"plain prose", "Just a sentence", "text"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tt.want, grader.DetectFormat("describe it", tt.response))
			})
		}
	})
}
