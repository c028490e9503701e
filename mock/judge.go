package mock

import (
	"context"

	"github.com/mskalski/grader"
)

// Compile-time interface verification.
var _ grader.Judge = (*Judge)(nil)

// Judge is a mock implementation of grader.Judge.
type Judge struct {
	JudgeFn func(ctx context.Context, prompt, response string) (*grader.Evaluation, error)
}

func (j *Judge) Judge(ctx context.Context, prompt, response string) (*grader.Evaluation, error) {
	return j.JudgeFn(ctx, prompt, response)
}
