package steps

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"strat_bot/internal/chart"
	"strat_bot/internal/runner"
)

const (
	chartCandles15m = 80
	chartCandles60m = 20
)

// GenerateChart renders the last 80 15m and 20 1h candles side by side to
// <Dir>/_<coin>_<stable>_15m-strat.png.
type GenerateChart struct {
	Dir    string
	Width  int
	Height int
}

func (GenerateChart) Name() string { return "GenerateChart" }

func (s GenerateChart) Run(_ context.Context, rc *runner.Context) error {
	name := fmt.Sprintf("_%s_%s_15m", rc.Market.Coin, rc.Market.StableCoin)
	path := filepath.Join(s.Dir, strings.ToLower(name)+"-strat.png")

	err := chart.Render(path, s.Width, s.Height,
		chart.Panel{Title: "15m", Series: rc.FifteenMinDF, Limit: chartCandles15m},
		chart.Panel{Title: "60m", Series: rc.HourlyDF, Limit: chartCandles60m},
	)
	if err != nil {
		return errors.Wrap(err, "render chart")
	}
	rc.ChartName = name
	rc.ChartFilePath = path
	return nil
}
