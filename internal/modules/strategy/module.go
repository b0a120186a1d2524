package strategy

import (
	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	"strat_bot/internal/strategy"
	"strat_bot/pkg/logger"
)

// NewRules takes the signal rules from config.
func NewRules(cfg *config.Config) strategy.Rules {
	r := cfg.Rules
	logger.Info("[STRATEGY] buy on %s %s", r.Buy.Suffix, r.Buy.Direction)
	if r.Sell.Suffix == "" {
		logger.Info("[STRATEGY] sell rule off")
	} else {
		logger.Info("[STRATEGY] sell on %s %s", r.Sell.Suffix, r.Sell.Direction)
	}
	return r
}

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(NewRules),
	)
}
