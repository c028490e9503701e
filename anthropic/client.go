// Package anthropic implements grader.Judge and grader.Completer over the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is the default model for judging and completion.
const DefaultModel = "claude-3-5-haiku-latest"

// MessageClient abstracts the Anthropic Messages API for testing.
type MessageClient interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// Client wraps the Anthropic SDK client.
type Client struct {
	client anthropic.Client
}

// NewClient creates a Client. With no options the SDK reads
// ANTHROPIC_API_KEY from the environment.
func NewClient(opts ...option.RequestOption) *Client {
	return &Client{client: anthropic.NewClient(opts...)}
}

// New implements MessageClient by delegating to the SDK.
func (c *Client) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return c.client.Messages.New(ctx, params)
}

// Compile-time check that Client implements MessageClient.
var _ MessageClient = (*Client)(nil)

// messageText concatenates the text blocks of a message.
func messageText(msg *anthropic.Message) string {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text
}

// isRetryable reports whether an API error is worth retrying: rate limits,
// overloaded, and transient server errors.
func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case 429, 503, 504, 529:
		return true
	}
	return false
}
