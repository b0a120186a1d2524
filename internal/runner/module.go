package runner

import (
	"context"

	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	"strat_bot/pkg/logger"
	"strat_bot/pkg/metrics"
)

type LoopParams struct {
	fx.In

	Runner   *Runner
	Steps    []Step
	Args     config.Args
	Config   *config.Config
	Observer Observer     `optional:"true"`
	Closes   CandleCloses `optional:"true"`
}

func NewLoopFromParams(p LoopParams) *Loop {
	opts := []LoopOption{}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Config.Pipeline.Trigger == config.TriggerCandleClose && p.Closes != nil {
		opts = append(opts, WithCandleCloses(p.Closes))
	}
	return NewLoop(p.Runner, p.Steps, p.Args, opts...)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(rec *metrics.Recorder) *Runner { return New(rec) },
			NewLoopFromParams,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			sd fx.Shutdowner,
			loop *Loop,
			args config.Args,
		) {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer close(done)
						err := loop.Run(ctx)
						if !args.RunOnce {
							return
						}
						code := 0
						if err != nil {
							logger.Error("[RUNNER] run-once failed: %v", err)
							code = 1
						}
						_ = sd.Shutdown(fx.ExitCode(code))
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-stopCtx.Done():
					}
					return nil
				},
			})
		}),
	)
}
