package steps

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"strat_bot/internal/notify"
	"strat_bot/internal/runner"
	"strat_bot/pkg/logger"
)

type PublishTransactionOnTelegram struct {
	Notifier notify.Notifier
}

func (PublishTransactionOnTelegram) Name() string { return "PublishTransactionOnTelegram" }

func (s PublishTransactionOnTelegram) Run(ctx context.Context, rc *runner.Context) error {
	o := rc.Order
	if o == nil {
		return nil
	}
	mode := ""
	if o.DryRun {
		mode = " (dry run)"
	}
	msg := fmt.Sprintf("%s %s%s\nAmount: %s\nPrice: %g\nOrder: %s\nStrat 15m: %s %s\nStrat 60m: %s %s",
		o.Side, o.InstID, mode, rc.TradeAmount(), o.Price, o.ID,
		rc.Indicators.Strat15m, rc.Indicators.Strat15mDirection,
		rc.Indicators.Strat60m, rc.Indicators.Strat60mDirection,
	)
	if err := s.Notifier.SendText(ctx, msg); err != nil {
		return errors.Wrap(err, "publish transaction")
	}
	return nil
}

// PublishStrategyChartOnTelegram sends the chart only when a trade signal fired.
type PublishStrategyChartOnTelegram struct {
	Notifier notify.Notifier
}

func (PublishStrategyChartOnTelegram) Name() string { return "PublishStrategyChartOnTelegram" }

func (s PublishStrategyChartOnTelegram) Run(ctx context.Context, rc *runner.Context) error {
	if !rc.TradeDone {
		return nil
	}
	if rc.ChartFilePath == "" {
		return errors.New("no chart to publish")
	}
	caption := fmt.Sprintf("Strat %s %s", rc.ChartName, rc.Signal)
	if err := s.Notifier.SendFile(ctx, rc.ChartFilePath, caption); err != nil {
		return errors.Wrap(err, "publish chart")
	}
	return nil
}

type PrintContext struct{}

func (PrintContext) Name() string { return "PrintContext" }

func (PrintContext) Run(_ context.Context, rc *runner.Context) error {
	logger.Info("context: %s", rc.Summary())
	return nil
}
