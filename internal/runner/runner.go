package runner

import (
	"context"
	"fmt"
	"time"

	"strat_bot/internal/modules/config"
	"strat_bot/pkg/logger"
	"strat_bot/pkg/metrics"
	"strat_bot/pkg/tracing"
)

// StepError is returned by Run when a step fails; the remaining steps are skipped.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes steps in order against one Context per run.
type Runner struct {
	metrics *metrics.Recorder
}

func New(rec *metrics.Recorder) *Runner {
	return &Runner{metrics: rec}
}

// Run executes steps sequentially and stops at the first failure. The returned
// Context is never nil; its store handle is released before Run returns.
func (r *Runner) Run(ctx context.Context, steps []Step, args config.Args) (rc *Context, err error) {
	rc = NewContext(args)

	span, ctx := tracing.StartSpan(ctx, "pipeline.run")
	defer func() {
		if cerr := rc.Release(); cerr != nil {
			logger.Warn("[RUNNER] %v", cerr)
		}
		tracing.FinishSpan(span, err)
		r.metrics.RecordRun(err == nil)
	}()

	start := time.Now()
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return rc, &StepError{Step: step.Name(), Err: err}
		}
		if err := r.runStep(ctx, step, rc); err != nil {
			logger.Error("[RUNNER] step %s failed: %v", step.Name(), err)
			return rc, &StepError{Step: step.Name(), Err: err}
		}
	}
	logger.Info("[RUNNER] %d steps done in %s", len(steps), time.Since(start).Round(time.Millisecond))
	return rc, nil
}

func (r *Runner) runStep(ctx context.Context, step Step, rc *Context) (err error) {
	name := step.Name()
	span, ctx := tracing.StartSpan(ctx, "step."+name)
	start := time.Now()
	logger.Debug("[RUNNER] step %s started", name)
	defer func() {
		took := time.Since(start)
		tracing.FinishSpan(span, err)
		r.metrics.RecordStep(name, took.Seconds(), err == nil)
		if err == nil {
			logger.Debug("[RUNNER] step %s done in %s", name, took.Round(time.Millisecond))
		}
	}()
	return step.Run(ctx, rc)
}
