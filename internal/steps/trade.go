package steps

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"strat_bot/internal/models"
	"strat_bot/internal/runner"
	"strat_bot/pkg/logger"
)

// FetchAccountInfoFromExchange reads available coin and stable coin balances.
// A dry run without API credentials simulates a wallet holding the budget and
// whatever the last recorded buy bought.
type FetchAccountInfoFromExchange struct {
	Account Account
}

func (FetchAccountInfoFromExchange) Name() string { return "FetchAccountInfoFromExchange" }

func (s FetchAccountInfoFromExchange) Run(ctx context.Context, rc *runner.Context) error {
	coin, stable := rc.Market.Coin, rc.Market.StableCoin
	if rc.Args.DryRun && !s.Account.HasCredentials() {
		held := 0.0
		if last := rc.LastTransaction; last != nil && last.Signal == models.SignalBuy {
			held = last.Amount
		}
		rc.Balances = map[string]float64{coin: held, stable: rc.Args.BuyingBudget}
		logger.Info("dry run without credentials, simulated balances %v", rc.Balances)
		return nil
	}

	bal, err := s.Account.Balances(ctx, coin, stable)
	if err != nil {
		return errors.Wrap(err, "fetch balances")
	}
	rc.Balances = bal
	logger.Info("balances %s=%g %s=%g", coin, bal[coin], stable, bal[stable])
	return nil
}

// CalculateBuySellAmountBasedOnAllocatedPot sizes both sides: buy spends
// min(budget, stable balance) at the last close, sell liquidates the coin
// balance. Both are floored to the lot size; amounts under the minimum are 0.
type CalculateBuySellAmountBasedOnAllocatedPot struct {
	Account Account
}

func (CalculateBuySellAmountBasedOnAllocatedPot) Name() string {
	return "CalculateBuySellAmountBasedOnAllocatedPot"
}

func (s CalculateBuySellAmountBasedOnAllocatedPot) Run(ctx context.Context, rc *runner.Context) error {
	if rc.Close <= 0 {
		return errors.Errorf("invalid close price %g", rc.Close)
	}
	inst, err := s.Account.Instrument(ctx, rc.Market.InstID)
	if err != nil {
		return errors.Wrap(err, "load instrument")
	}

	pot := decimal.Min(
		decimal.NewFromFloat(rc.Args.BuyingBudget),
		decimal.NewFromFloat(rc.Balances[rc.Market.StableCoin]),
	)
	buy := pot.Div(decimal.NewFromFloat(rc.Close))
	sell := decimal.NewFromFloat(rc.Balances[rc.Market.Coin])

	rc.BuyTradeAmount = toLot(buy, inst)
	rc.SellTradeAmount = toLot(sell, inst)
	logger.Info("trade amounts buy=%g sell=%g (lot %g)", rc.BuyTradeAmount, rc.SellTradeAmount, inst.LotSz)
	return nil
}

func toLot(amount decimal.Decimal, inst models.Instrument) float64 {
	if amount.Sign() <= 0 {
		return 0
	}
	if inst.LotSz > 0 {
		lot := decimal.NewFromFloat(inst.LotSz)
		amount = amount.Div(lot).Floor().Mul(lot)
	}
	if amount.LessThan(decimal.NewFromFloat(inst.MinSz)) {
		return 0
	}
	return amount.InexactFloat64()
}

type ExecuteBuyTradeIfSignaled struct {
	Account Account
	NewID   func() string
}

func (ExecuteBuyTradeIfSignaled) Name() string { return "ExecuteBuyTradeIfSignaled" }

func (s ExecuteBuyTradeIfSignaled) Run(ctx context.Context, rc *runner.Context) error {
	return execute(ctx, rc, s.Account, s.NewID, models.SignalBuy, rc.BuyTradeAmount)
}

type ExecuteSellTradeIfSignaled struct {
	Account Account
	NewID   func() string
}

func (ExecuteSellTradeIfSignaled) Name() string { return "ExecuteSellTradeIfSignaled" }

func (s ExecuteSellTradeIfSignaled) Run(ctx context.Context, rc *runner.Context) error {
	return execute(ctx, rc, s.Account, s.NewID, models.SignalSell, rc.SellTradeAmount)
}

// execute places a market order when the run holds a new signal for side.
func execute(ctx context.Context, rc *runner.Context, acc Account, newID func() string, side models.Signal, amount float64) error {
	if rc.Signal != side || !rc.IsNewSignal {
		return nil
	}
	if amount <= 0 {
		logger.Warn("%s signal for %s but trade amount is 0, skipping", side, rc.Market.InstID)
		return nil
	}

	order := &models.Order{
		InstID: rc.Market.InstID,
		Side:   side,
		Amount: amount,
		Price:  rc.Close,
		DryRun: rc.Args.DryRun,
	}
	if rc.Args.DryRun {
		order.ID = "dry-" + newID()
		logger.Info("dry run: %s %g %s at %g", side, amount, rc.Market.InstID, rc.Close)
	} else {
		id, err := acc.PlaceMarketOrder(ctx, rc.Market.InstID, side, amount)
		if err != nil {
			return errors.Wrapf(err, "place %s order", side)
		}
		order.ID = id
		logger.Info("placed %s order %s: %g %s", side, id, amount, rc.Market.InstID)
	}
	rc.Order = order
	return nil
}
