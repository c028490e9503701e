package mock

import (
	"context"

	"github.com/mskalski/grader"
)

// Compile-time interface verification.
var _ grader.Completer = (*Completer)(nil)

// Completer is a mock implementation of grader.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}
