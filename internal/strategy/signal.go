package strategy

import (
	"strings"

	"strat_bot/internal/models"
	"strat_bot/pkg/logger"
)

// Rule fires when the 15m sequence ends with Suffix and the newest 15m candle has Direction.
type Rule struct {
	Suffix    string           `yaml:"suffix"`
	Direction models.Direction `yaml:"direction"`
}

func (r Rule) match(pattern string, direction models.Direction) bool {
	if r.Suffix == "" {
		return false
	}
	return strings.HasSuffix(pattern, r.Suffix) && direction == r.Direction
}

// Rules is the decision table of the evaluator.
type Rules struct {
	Buy  Rule `yaml:"buy"`
	Sell Rule `yaml:"sell"`
}

// DefaultRules buys a green candle after two directional-down bars. The sell
// rule is empty and never fires until configured.
func DefaultRules() Rules {
	return Rules{
		Buy: Rule{Suffix: "2d-2d", Direction: models.DirectionGreen},
	}
}

// Evaluate is a pure function of its inputs. The BUY rule wins and returns at once;
// earlier revisions reset BUY to NO_SIGNAL right after setting it, which is not kept.
// With DefaultRules only the buy rule exists and everything else is NO_SIGNAL; SELL
// is reachable through a configured sell rule, the mirror "2u-2u" + red in the
// shipped config. pattern60 is traced only; no default rule reads it.
func (r Rules) Evaluate(pattern15 string, direction15 models.Direction, pattern60 string) models.Signal {
	signal := models.SignalNoSignal
	switch {
	case r.Buy.match(pattern15, direction15):
		signal = models.SignalBuy
	case r.Sell.match(pattern15, direction15):
		signal = models.SignalSell
	}
	logger.Info("identified signal => %s (15m=%s %s, 60m=%s)", signal, pattern15, direction15, pattern60)
	return signal
}

// Evaluate applies DefaultRules.
func Evaluate(pattern15 string, direction15 models.Direction, pattern60 string) models.Signal {
	return DefaultRules().Evaluate(pattern15, direction15, pattern60)
}
