package anthropic_test

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mskalski/grader/anthropic"
)

// fakeMessageClient is a scriptable MessageClient.
type fakeMessageClient struct {
	NewFn func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error)
}

func (f *fakeMessageClient) New(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
	return f.NewFn(ctx, params)
}

func textMessage(body string) *sdk.Message {
	return &sdk.Message{
		Content: []sdk.ContentBlockUnion{{Type: "text", Text: body}},
	}
}

const verdictJSON = `{
	"response_quality": {"score": 9, "reasoning": "clear"},
	"instruction_following": {"score": 8, "reasoning": "follows"},
	"completeness": {"score": 8, "reasoning": "complete"},
	"helpfulness": {"score": 9, "reasoning": "helpful"},
	"safety": {"score": 10, "reasoning": "safe"},
	"overall_score": 8.8,
	"overall_feedback": "Strong response"
}`

func TestJudge_Judge(t *testing.T) {
	t.Parallel()

	t.Run("parses the structured verdict", func(t *testing.T) {
		t.Parallel()

		var captured sdk.MessageNewParams
		client := &fakeMessageClient{
			NewFn: func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
				captured = params
				return textMessage(verdictJSON), nil
			},
		}
		judge := anthropic.NewJudge(client)

		evaluation, err := judge.Judge(t.Context(), "the prompt", "the response")
		require.NoError(t, err)

		assert.Equal(t, 8.8, evaluation.OverallScore)
		assert.Equal(t, "Strong response", evaluation.OverallFeedback)
		assert.Equal(t, 9.0, evaluation.ResponseQuality.Score)

		assert.Equal(t, sdk.Model(anthropic.DefaultModel), captured.Model)
		require.Len(t, captured.Messages, 1)
		rubric := captured.Messages[0].Content[0].OfText.Text
		assert.Contains(t, rubric, "ORIGINAL PROMPT: the prompt")
		assert.Contains(t, rubric, "RESPONSE TO EVALUATE: the response")
	})

	t.Run("retries when the model wraps JSON in prose", func(t *testing.T) {
		t.Parallel()

		calls := 0
		client := &fakeMessageClient{
			NewFn: func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
				calls++
				if calls == 1 {
					return textMessage("Here is my evaluation: it is good."), nil
				}
				return textMessage(verdictJSON), nil
			},
		}
		judge := anthropic.NewJudge(client)

		evaluation, err := judge.Judge(t.Context(), "p", "r")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 8.8, evaluation.OverallScore)
	})

	t.Run("gives up after repeated non-JSON output", func(t *testing.T) {
		t.Parallel()

		calls := 0
		client := &fakeMessageClient{
			NewFn: func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
				calls++
				return textMessage("still not JSON"), nil
			},
		}
		judge := anthropic.NewJudge(client)

		_, err := judge.Judge(t.Context(), "p", "r")
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "failed to parse evaluation response as JSON")
	})

	t.Run("non-retryable errors return immediately", func(t *testing.T) {
		t.Parallel()

		calls := 0
		client := &fakeMessageClient{
			NewFn: func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
				calls++
				return nil, errors.New("invalid request")
			},
		}
		judge := anthropic.NewJudge(client)

		_, err := judge.Judge(t.Context(), "p", "r")
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Contains(t, err.Error(), "judge call failed")
	})

	t.Run("custom model option", func(t *testing.T) {
		t.Parallel()

		var captured sdk.MessageNewParams
		client := &fakeMessageClient{
			NewFn: func(ctx context.Context, params sdk.MessageNewParams) (*sdk.Message, error) {
				captured = params
				return textMessage(verdictJSON), nil
			},
		}
		judge := anthropic.NewJudge(client, anthropic.WithModel("claude-sonnet-4-5"))

		_, err := judge.Judge(t.Context(), "p", "r")
		require.NoError(t, err)
		assert.Equal(t, sdk.Model("claude-sonnet-4-5"), captured.Model)
	})
}
