package strategy

import (
	"fmt"

	"strat_bot/internal/models"
	"strat_bot/pkg/logger"
)

// MinCandles is how many trailing candles ClassifySeries needs.
const MinCandles = 4

// Pattern is the result of classifying the tail of a series.
// Valid is false when the series was too short; Sequence and Direction then hold "na".
type Pattern struct {
	Sequence  string
	Direction models.Direction
	Valid     bool
}

// InsufficientData is the sentinel pattern for short histories.
var InsufficientData = Pattern{
	Sequence:  string(models.PatternUnavailable),
	Direction: models.DirectionUnavailable,
}

// ClassifyPair compares current against prior. Equal bounds match no case and yield "0".
func ClassifyPair(prior, current models.Candle) models.PatternCode {
	switch {
	case current.High < prior.High && current.Low > prior.Low:
		return models.PatternInside
	case current.High > prior.High && current.Low < prior.Low:
		return models.PatternOutside
	case current.High > prior.High && current.Low > prior.Low:
		return models.PatternUp
	case current.High < prior.High && current.Low < prior.Low:
		return models.PatternDown
	default:
		return models.PatternUndefined
	}
}

// ClassifySeries encodes the last four candles as "{third}-{second}-{first}",
// oldest pair first, plus the colour of the newest candle.
func ClassifySeries(series models.Series) Pattern {
	if len(series) < MinCandles {
		logger.Warn("unable to calculate strat: %d candles, need %d", len(series), MinCandles)
		return InsufficientData
	}

	n := len(series)
	last, c2, c3, c4 := series[n-1], series[n-2], series[n-3], series[n-4]

	first := ClassifyPair(c2, last)
	second := ClassifyPair(c3, c2)
	third := ClassifyPair(c4, c3)

	direction := models.DirectionRed
	if last.Green() {
		direction = models.DirectionGreen
	}

	return Pattern{
		Sequence:  fmt.Sprintf("%s-%s-%s", third, second, first),
		Direction: direction,
		Valid:     true,
	}
}
