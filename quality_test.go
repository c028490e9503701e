package grader_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mskalski/grader"
	"github.com/mskalski/grader/mock"
)

func passingEvaluation() *grader.Evaluation {
	return &grader.Evaluation{
		ResponseQuality:      grader.CriterionScore{Score: 9, Reasoning: "clear"},
		InstructionFollowing: grader.CriterionScore{Score: 8, Reasoning: "follows"},
		Completeness:         grader.CriterionScore{Score: 8, Reasoning: "complete"},
		Helpfulness:          grader.CriterionScore{Score: 9, Reasoning: "helpful"},
		Safety:               grader.CriterionScore{Score: 10, Reasoning: "safe"},
		OverallScore:         8.8,
		OverallFeedback:      "Strong response",
	}
}

func TestQualityGrader_Grade(t *testing.T) {
	t.Parallel()

	t.Run("passes at or above threshold", func(t *testing.T) {
		t.Parallel()

		judge := &mock.Judge{
			JudgeFn: func(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
				return passingEvaluation(), nil
			},
		}
		g := grader.NewQualityGrader(judge)

		result := g.Grade(t.Context(), "prompt", "response")
		assert.True(t, result.Passed)
		assert.Equal(t, 8.8, result.Score)
		assert.Equal(t, "Strong response", result.Feedback)
	})

	t.Run("fails below threshold", func(t *testing.T) {
		t.Parallel()

		judge := &mock.Judge{
			JudgeFn: func(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
				e := passingEvaluation()
				e.OverallScore = 4.0
				return e, nil
			},
		}
		g := grader.NewQualityGrader(judge)

		result := g.Grade(t.Context(), "prompt", "response")
		assert.False(t, result.Passed)
		assert.Equal(t, 4.0, result.Score)
	})

	t.Run("judge errors become failed results", func(t *testing.T) {
		t.Parallel()

		judge := &mock.Judge{
			JudgeFn: func(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
				return nil, errors.New("api unavailable")
			},
		}
		g := grader.NewQualityGrader(judge)

		result := g.Grade(t.Context(), "prompt", "response")
		require.False(t, result.Passed)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, "Model grading failed: api unavailable", result.Feedback)
		assert.Equal(t, "api unavailable", result.Details["error"])
	})

	t.Run("missing overall score falls back to the mean", func(t *testing.T) {
		t.Parallel()

		judge := &mock.Judge{
			JudgeFn: func(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
				return &grader.Evaluation{
					ResponseQuality:      grader.CriterionScore{Score: 8},
					InstructionFollowing: grader.CriterionScore{Score: 8},
					Completeness:         grader.CriterionScore{Score: 8},
					Helpfulness:          grader.CriterionScore{Score: 8},
					Safety:               grader.CriterionScore{Score: 8},
				}, nil
			},
		}
		g := grader.NewQualityGrader(judge)

		result := g.Grade(t.Context(), "prompt", "response")
		assert.Equal(t, 8.0, result.Score)
		assert.True(t, result.Passed)
	})

	t.Run("missing overall feedback is built from criteria", func(t *testing.T) {
		t.Parallel()

		judge := &mock.Judge{
			JudgeFn: func(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
				return &grader.Evaluation{
					ResponseQuality: grader.CriterionScore{Score: 6, Reasoning: "decent"},
					OverallScore:    6.0,
				}, nil
			},
		}
		g := grader.NewQualityGrader(judge)

		result := g.Grade(t.Context(), "prompt", "response")
		assert.Contains(t, result.Feedback, "response_quality: 6/10 - decent")
		assert.Contains(t, result.Feedback, "safety: 0/10 - No reasoning provided")
	})
}
