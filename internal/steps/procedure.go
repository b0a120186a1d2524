package steps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"strat_bot/internal/models"
	"strat_bot/internal/notify"
	"strat_bot/internal/runner"
	"strat_bot/internal/store"
	"strat_bot/internal/strategy"
	"strat_bot/pkg/metrics"
)

type CandleSource interface {
	CandleRows(ctx context.Context, instID, bar string, limit int) ([][]string, error)
}

type Account interface {
	HasCredentials() bool
	Balances(ctx context.Context, ccys ...string) (map[string]float64, error)
	Instrument(ctx context.Context, instID string) (models.Instrument, error)
	PlaceMarketOrder(ctx context.Context, instID string, side models.Signal, size float64) (string, error)
}

// Deps are the collaborators the steps call.
type Deps struct {
	Opener   store.Opener
	Candles  CandleSource
	Account  Account
	Notifier notify.Notifier
	Metrics  *metrics.Recorder
	Rules    strategy.Rules

	Now   func() time.Time
	NewID func() string
}

type Options struct {
	Trading      bool
	PrintContext bool
	CandleLimit  int
	ChartDir     string
	ChartWidth   int
	ChartHeight  int
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

func (d Deps) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

// Procedure is the ordered step list of one run. Trading steps are included
// only with o.Trading, PrintContext only with o.PrintContext.
func Procedure(d Deps, o Options) []runner.Step {
	steps := []runner.Step{
		SetupDatabase{Opener: d.Opener},
		ReadConfiguration{},
		FetchDataFromExchange{Candles: d.Candles, Limit: o.CandleLimit},
		LoadDataInDataFrame{},
		ReSampleData{},
		CalculateIndicators{Metrics: d.Metrics},
		GenerateChart{Dir: o.ChartDir, Width: o.ChartWidth, Height: o.ChartHeight},
		IdentifyBuySellSignal{Rules: d.Rules, Metrics: d.Metrics},
	}
	if o.Trading {
		steps = append(steps,
			LoadLastTransactionFromDatabase{},
			CheckIfIsANewSignal{},
			FetchAccountInfoFromExchange{Account: d.Account},
			CalculateBuySellAmountBasedOnAllocatedPot{Account: d.Account},
			ExecuteBuyTradeIfSignaled{Account: d.Account, NewID: d.newID},
			ExecuteSellTradeIfSignaled{Account: d.Account, NewID: d.newID},
			RecordTransactionInDatabase{Now: d.now, NewID: d.newID},
			PublishTransactionOnTelegram{Notifier: d.Notifier},
		)
	}
	steps = append(steps, PublishStrategyChartOnTelegram{Notifier: d.Notifier})
	if o.PrintContext {
		steps = append(steps, PrintContext{})
	}
	return steps
}
