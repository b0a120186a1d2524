package runner

import (
	"context"
	"errors"
	"time"

	"strat_bot/internal/models"
	"strat_bot/internal/modules/config"
	"strat_bot/pkg/logger"
)

// CandleCloses delivers the start time of every confirmed candle.
type CandleCloses <-chan time.Time

// Observer is told about every finished run.
type Observer interface {
	RunFinished(at time.Time, signal models.Signal, err error)
}

// Loop runs the procedure once or repeatedly; runs never overlap.
type Loop struct {
	runner   *Runner
	steps    []Step
	args     config.Args
	interval time.Duration
	closes   CandleCloses
	observer Observer
}

type LoopOption func(*Loop)

// WithCandleCloses switches the loop from the fixed interval to candle closes.
func WithCandleCloses(ch CandleCloses) LoopOption {
	return func(l *Loop) { l.closes = ch }
}

func WithObserver(o Observer) LoopOption {
	return func(l *Loop) { l.observer = o }
}

func NewLoop(r *Runner, steps []Step, args config.Args, opts ...LoopOption) *Loop {
	l := &Loop{
		runner:   r,
		steps:    steps,
		args:     args,
		interval: time.Duration(args.WaitInMinutes) * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.interval <= 0 {
		l.interval = 5 * time.Minute
	}
	return l
}

// Run returns the run error in run-once mode. Otherwise it keeps going until ctx
// is done, logging failed runs, and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.args.RunOnce {
		return l.once(ctx)
	}

	for {
		if err := l.once(ctx); err != nil {
			logger.Error("[LOOP] run failed: %v", err)
		}
		if !l.wait(ctx) {
			logger.Info("[LOOP] stopped")
			return nil
		}
	}
}

func (l *Loop) once(ctx context.Context) error {
	rc, err := l.runner.Run(ctx, l.steps, l.args)
	if l.observer != nil {
		signal := models.SignalNoSignal
		if rc != nil {
			signal = rc.Signal
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			err = nil
		}
		l.observer.RunFinished(time.Now(), signal, err)
	}
	return err
}

func (l *Loop) wait(ctx context.Context) bool {
	if l.closes != nil {
		select {
		case <-ctx.Done():
			return false
		case start, ok := <-l.closes:
			if !ok {
				return false
			}
			logger.Info("[LOOP] candle %s closed", start.UTC().Format(time.RFC3339))
			return true
		}
	}

	logger.Info("[LOOP] waiting %s for next run", l.interval)
	t := time.NewTimer(l.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
