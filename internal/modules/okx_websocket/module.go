package okx_websocket

import (
	"context"

	"go.uber.org/fx"

	"strat_bot/internal/helper"
	"strat_bot/internal/modules/config"
	healthsvc "strat_bot/internal/modules/health/service"
	"strat_bot/internal/modules/okx_websocket/service"
	"strat_bot/internal/runner"
	"strat_bot/pkg/logger"
)

func NewClient(cfg *config.Config, state *healthsvc.State) *service.Client {
	return service.NewClient(cfg.Exchange.WSURL, state)
}

// NewCandleCloses streams closes of the traded market when pipeline.trigger is
// candle_close; otherwise it provides nil and the loop runs on the interval.
// A run-once process never waits for a close, so nothing is dialed.
func NewCandleCloses(lc fx.Lifecycle, cfg *config.Config, args config.Args, c *service.Client) (runner.CandleCloses, error) {
	if cfg.Pipeline.Trigger != config.TriggerCandleClose || args.RunOnce {
		return nil, nil
	}
	bar, err := helper.OKXBar(args.TimeFrame)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})

	logger.Info("[WS] pipeline follows %s %s candle closes", args.Symbol(), bar)
	return c.CandleCloses(ctx, args.Symbol(), bar), nil
}

// Module wires the OKX candle stream used as the loop trigger.
func Module() fx.Option {
	return fx.Module("okx_websocket",
		fx.Provide(
			NewClient,
			NewCandleCloses,
		),
	)
}
