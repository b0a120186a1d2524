package runner

import (
	"fmt"
	"strconv"

	"strat_bot/internal/models"
	"strat_bot/internal/modules/config"
	"strat_bot/internal/store"
)

// Context is the state shared by the steps of one run. It lives for a single
// run and is only touched from the run goroutine.
type Context struct {
	Args   config.Args
	DB     store.Store
	Market models.Market

	CandleRows   [][]string
	DF           models.Series
	FifteenMinDF models.Series
	HourlyDF     models.Series

	Close      float64
	Indicators models.Indicators
	Signal     models.Signal
	TradeDone  bool

	ChartName     string
	ChartFilePath string

	LastTransaction *models.Transaction
	IsNewSignal     bool

	Balances        map[string]float64
	BuyTradeAmount  float64
	SellTradeAmount float64
	Order           *models.Order
}

func NewContext(args config.Args) *Context {
	return &Context{
		Args:   args,
		Signal: models.SignalNoSignal,
	}
}

// TradeAmount is the amount for the current signal, "N/A" when nothing trades.
func (c *Context) TradeAmount() string {
	switch c.Signal {
	case models.SignalBuy:
		return strconv.FormatFloat(c.BuyTradeAmount, 'f', -1, 64)
	case models.SignalSell:
		return strconv.FormatFloat(c.SellTradeAmount, 'f', -1, 64)
	default:
		return "N/A"
	}
}

// Release closes the run's store handle.
func (c *Context) Release() error {
	if c.DB == nil {
		return nil
	}
	err := c.DB.Close()
	c.DB = nil
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Summary is a one-line view of the run for logs and notifications.
func (c *Context) Summary() string {
	return fmt.Sprintf(
		"symbol=%s close=%g strat15m=%s(%s) strat60m=%s(%s) signal=%s new=%t trade_done=%t amount=%s chart=%s",
		c.Market.InstID, c.Close,
		c.Indicators.Strat15m, c.Indicators.Strat15mDirection,
		c.Indicators.Strat60m, c.Indicators.Strat60mDirection,
		c.Signal, c.IsNewSignal, c.TradeDone, c.TradeAmount(), c.ChartFilePath,
	)
}
