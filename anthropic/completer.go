package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mskalski/grader"
)

// Compile-time interface verification.
var _ grader.Completer = (*Completer)(nil)

const defaultCompletionMaxTokens = 2048

// Completer implements grader.Completer: one user message in, the text of
// the reply out. It carries no conversation state.
type Completer struct {
	client    MessageClient
	model     string
	maxTokens int64
	system    string
}

// CompleterOption configures a Completer.
type CompleterOption func(*Completer)

// WithCompleterModel sets the model used for completions.
func WithCompleterModel(model string) CompleterOption {
	return func(c *Completer) { c.model = model }
}

// WithMaxTokens sets the completion token budget.
func WithMaxTokens(n int64) CompleterOption {
	return func(c *Completer) { c.maxTokens = n }
}

// WithSystem sets a system prompt for all completions.
func WithSystem(system string) CompleterOption {
	return func(c *Completer) { c.system = system }
}

// NewCompleter creates a Completer.
func NewCompleter(client MessageClient, opts ...CompleterOption) *Completer {
	c := &Completer{
		client:    client,
		model:     DefaultModel,
		maxTokens: defaultCompletionMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the prompt as a single user message and returns the text
// of the reply.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	}
	if c.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.system}}
	}

	msg, err := c.client.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: completion failed: %w", err)
	}

	return messageText(msg), nil
}
