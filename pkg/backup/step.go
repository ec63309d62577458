package backup

import (
	"context"
	"strings"
)

// Step is one independent unit of backup or verification work.
//
// Run must not return an error: any underlying failure (API error, timeout,
// permission problem) is translated into a StepResult with StatusFailed and
// the error text under detail["error"]. One step's failure never aborts the
// steps that follow it. Steps receive the report built so far; apart from
// steps that explicitly serialize it, they should treat it as read-only.
type Step interface {
	Name() string
	Run(ctx context.Context, rep *Report) StepResult
}

// StepFunc adapts a plain function to the Step interface.
type StepFunc struct {
	name string
	fn   func(context.Context, *Report) StepResult
}

// NewStepFunc creates a function-backed step.
func NewStepFunc(name string, fn func(context.Context, *Report) StepResult) Step {
	sanitized := strings.TrimSpace(name)
	if sanitized == "" {
		panic("step name cannot be empty")
	}
	if fn == nil {
		panic("step func cannot be nil")
	}
	return &StepFunc{name: sanitized, fn: fn}
}

// Name returns the step name.
func (s *StepFunc) Name() string { return s.name }

// Run executes the wrapped function.
func (s *StepFunc) Run(ctx context.Context, rep *Report) StepResult {
	return s.fn(ctx, rep)
}
