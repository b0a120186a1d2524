package steps

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"strat_bot/internal/helper"
	"strat_bot/internal/models"
	"strat_bot/internal/runner"
	"strat_bot/internal/strategy"
	"strat_bot/pkg/logger"
)

// ReadConfiguration validates the run arguments and derives the market.
type ReadConfiguration struct{}

func (ReadConfiguration) Name() string { return "ReadConfiguration" }

func (ReadConfiguration) Run(_ context.Context, rc *runner.Context) error {
	if err := rc.Args.Validate(); err != nil {
		return err
	}
	bar, err := helper.OKXBar(rc.Args.TimeFrame)
	if err != nil {
		return err
	}
	if d := helper.TimeframeDuration(rc.Args.TimeFrame); d > 15*time.Minute {
		logger.Warn("time frame %s is longer than 15m, 15m candles will repeat the source bars", rc.Args.TimeFrame)
	}
	rc.Market = models.Market{
		Coin:       strings.ToUpper(rc.Args.Coin),
		StableCoin: strings.ToUpper(rc.Args.StableCoin),
		InstID:     rc.Args.Symbol(),
		Bar:        bar,
	}
	return nil
}

type FetchDataFromExchange struct {
	Candles CandleSource
	Limit   int
}

func (FetchDataFromExchange) Name() string { return "FetchDataFromExchange" }

func (s FetchDataFromExchange) Run(ctx context.Context, rc *runner.Context) error {
	if rc.Market.InstID == "" {
		return errors.New("market is not configured")
	}
	rows, err := s.Candles.CandleRows(ctx, rc.Market.InstID, rc.Market.Bar, s.Limit)
	if err != nil {
		return errors.Wrapf(err, "fetch %s %s candles", rc.Market.InstID, rc.Market.Bar)
	}
	if len(rows) == 0 {
		return errors.Errorf("exchange returned no %s candles for %s", rc.Market.Bar, rc.Market.InstID)
	}
	rc.CandleRows = rows
	return nil
}

// LoadDataInDataFrame turns raw rows into an oldest-first series. The forming
// candle and duplicate timestamps are dropped.
type LoadDataInDataFrame struct{}

func (LoadDataInDataFrame) Name() string { return "LoadDataInDataFrame" }

func (LoadDataInDataFrame) Run(_ context.Context, rc *runner.Context) error {
	series := make(models.Series, 0, len(rc.CandleRows))
	for i, row := range rc.CandleRows {
		c, confirmed, err := models.ParseCandleRow(row)
		if err != nil {
			return errors.Wrapf(err, "candle row %d", i)
		}
		if !confirmed {
			continue
		}
		series = append(series, c)
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Start.Before(series[j].Start) })

	out := series[:0]
	for _, c := range series {
		if n := len(out); n > 0 && out[n-1].Start.Equal(c.Start) {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return errors.New("no confirmed candles to load")
	}
	rc.DF = out
	logger.Info("loaded %d %s candles for %s, last close %g", len(out), rc.Market.Bar, rc.Market.InstID, out[len(out)-1].Close)
	return nil
}

type ReSampleData struct{}

func (ReSampleData) Name() string { return "ReSampleData" }

func (ReSampleData) Run(_ context.Context, rc *runner.Context) error {
	if len(rc.DF) == 0 {
		return errors.New("no candles loaded")
	}
	m15, err := strategy.Resample(rc.DF, 15*time.Minute)
	if err != nil {
		return errors.Wrap(err, "resample 15m")
	}
	h1, err := strategy.Resample(rc.DF, time.Hour)
	if err != nil {
		return errors.Wrap(err, "resample 1h")
	}
	rc.FifteenMinDF = m15
	rc.HourlyDF = h1
	return nil
}
