package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	okx "strat_bot/internal/modules/okx_client/service"
	"strat_bot/pkg/logger"
	"strat_bot/pkg/tracing"
)

// Module sets up logging and tracing from config and checks the traded
// instrument once the app is up.
func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if cfg.Service.Name != "" {
				logger.SetServiceName(cfg.Service.Name)
				tracing.SetServiceName(cfg.Service.Name)
			}
			if err := logger.Init(cfg.Log.Level, cfg.Log.Dev); err != nil {
				return err
			}
			_, closeTracer, err := tracing.InitTracer(cfg.Tracing)
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					logger.Sync()
					return nil
				},
			})
			return nil
		}),
		fx.Invoke(func(lc fx.Lifecycle, args config.Args, client *okx.Client) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						inst, err := client.Instrument(ctx, args.Symbol())
						if err != nil {
							logger.Warn("[BOOT] instrument check for %s failed: %v", args.Symbol(), err)
							return
						}
						logger.Info("[BOOT] %s live, lot %g min %g tick %g", inst.InstID, inst.LotSz, inst.MinSz, inst.TickSz)
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
