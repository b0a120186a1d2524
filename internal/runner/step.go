package runner

import "context"

// Step is one named unit of work of a pipeline run.
type Step interface {
	Name() string
	Run(ctx context.Context, rc *Context) error
}

// StepFunc adapts a function into a Step.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, rc *Context) error
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Run(ctx context.Context, rc *Context) error {
	return s.Fn(ctx, rc)
}

// NewStep is a shorthand for StepFunc{name, fn}.
func NewStep(name string, fn func(ctx context.Context, rc *Context) error) Step {
	return StepFunc{StepName: name, Fn: fn}
}
