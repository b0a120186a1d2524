package steps

import (
	"context"

	"github.com/pkg/errors"

	"strat_bot/internal/models"
	"strat_bot/internal/runner"
	"strat_bot/internal/strategy"
	"strat_bot/pkg/logger"
	"strat_bot/pkg/metrics"
)

// CalculateIndicators classifies the 15m and 1h series and records the last close.
type CalculateIndicators struct {
	Metrics *metrics.Recorder
}

func (CalculateIndicators) Name() string { return "CalculateIndicators" }

func (s CalculateIndicators) Run(_ context.Context, rc *runner.Context) error {
	last, ok := rc.DF.Last()
	if !ok {
		return errors.New("no candles loaded")
	}
	rc.Close = last.Close

	p15 := strategy.ClassifySeries(rc.FifteenMinDF)
	p60 := strategy.ClassifySeries(rc.HourlyDF)
	rc.Indicators = models.Indicators{
		Strat15m:          p15.Sequence,
		Strat15mDirection: p15.Direction,
		Strat60m:          p60.Sequence,
		Strat60mDirection: p60.Direction,
	}
	s.Metrics.RecordLastClose(rc.Market.InstID, rc.Close)
	logger.Info("Close %g -> Indicators => %+v", rc.Close, rc.Indicators)
	return nil
}

type IdentifyBuySellSignal struct {
	Rules   strategy.Rules
	Metrics *metrics.Recorder
}

func (IdentifyBuySellSignal) Name() string { return "IdentifyBuySellSignal" }

func (s IdentifyBuySellSignal) Run(_ context.Context, rc *runner.Context) error {
	ind := rc.Indicators
	rc.Signal = s.Rules.Evaluate(ind.Strat15m, ind.Strat15mDirection, ind.Strat60m)
	rc.TradeDone = rc.Signal.Tradable()
	s.Metrics.RecordSignal(rc.Market.InstID, rc.Signal.String())
	return nil
}

// CheckIfIsANewSignal marks a tradable signal as new unless the last recorded
// transaction already acted on the same side.
type CheckIfIsANewSignal struct{}

func (CheckIfIsANewSignal) Name() string { return "CheckIfIsANewSignal" }

func (CheckIfIsANewSignal) Run(_ context.Context, rc *runner.Context) error {
	rc.IsNewSignal = rc.Signal.Tradable() &&
		(rc.LastTransaction == nil || rc.LastTransaction.Signal != rc.Signal)
	if rc.Signal.Tradable() && !rc.IsNewSignal {
		logger.Info("signal %s repeats the last transaction, skipping", rc.Signal)
	}
	return nil
}
