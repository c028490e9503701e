package jsonl_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mskalski/grader"
	"github.com/mskalski/grader/jsonl"
)

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	t.Run("round-trips case results", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "results", "run.jsonl")

		results := []grader.CaseResult{
			{
				TestCase:       grader.TestCase{Prompt: "Write JSON", Format: "json"},
				ActualResponse: `{"greeting": "hi"}`,
				Passed:         true,
			},
			{
				TestCase:       grader.TestCase{Prompt: "Write CSV", Format: "csv"},
				ActualResponse: "a,b\n1,2",
				Passed:         false,
				Error:          "completion failed: timeout",
			},
		}

		store := jsonl.NewStore()
		require.NoError(t, store.Save(path, results))

		loaded, err := store.Load(path)
		require.NoError(t, err)

		require.Len(t, loaded, 2)
		assert.Equal(t, "Write JSON", loaded[0].TestCase.Prompt)
		assert.True(t, loaded[0].Passed)
		assert.Equal(t, "completion failed: timeout", loaded[1].Error)
	})

	t.Run("load returns nil for missing file", func(t *testing.T) {
		t.Parallel()

		store := jsonl.NewStore()
		loaded, err := store.Load(filepath.Join(t.TempDir(), "missing.jsonl"))
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("append accumulates results", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "run.jsonl")

		store := jsonl.NewStore()
		require.NoError(t, store.Append(path, grader.CaseResult{ActualResponse: "first", Passed: true}))
		require.NoError(t, store.Append(path, grader.CaseResult{ActualResponse: "second"}))

		loaded, err := store.Load(path)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "first", loaded[0].ActualResponse)
		assert.Equal(t, "second", loaded[1].ActualResponse)
	})

	t.Run("save creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "deep", "nested", "run.jsonl")

		store := jsonl.NewStore()
		require.NoError(t, store.Save(path, []grader.CaseResult{{Passed: true}}))

		loaded, err := store.Load(path)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})
}
