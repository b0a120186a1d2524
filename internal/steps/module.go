package steps

import (
	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	okx "strat_bot/internal/modules/okx_client/service"
	"strat_bot/internal/notify"
	"strat_bot/internal/runner"
	"strat_bot/internal/store"
	"strat_bot/internal/strategy"
	"strat_bot/pkg/metrics"
)

type Params struct {
	fx.In

	Config   *config.Config
	Opener   store.Opener
	Candles  okx.CandleSource
	Client   *okx.Client
	Notifier notify.Notifier
	Metrics  *metrics.Recorder
	Rules    strategy.Rules
}

func NewProcedure(p Params) []runner.Step {
	return Procedure(
		Deps{
			Opener:   p.Opener,
			Candles:  p.Candles,
			Account:  p.Client,
			Notifier: p.Notifier,
			Metrics:  p.Metrics,
			Rules:    p.Rules,
		},
		Options{
			Trading:      p.Config.Pipeline.Trading,
			PrintContext: p.Config.Pipeline.PrintContext,
			CandleLimit:  p.Config.Exchange.CandleLimit,
			ChartDir:     p.Config.Chart.Dir,
			ChartWidth:   p.Config.Chart.Width,
			ChartHeight:  p.Config.Chart.Height,
		},
	)
}

func Module() fx.Option {
	return fx.Module("steps",
		fx.Provide(
			notify.New,
			NewProcedure,
		),
	)
}
