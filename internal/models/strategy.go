package models

// Signal is the trade decision of one pipeline run.
type Signal string

const (
	SignalBuy      Signal = "BUY"
	SignalSell     Signal = "SELL"
	SignalNoSignal Signal = "NO_SIGNAL"
)

func (s Signal) String() string { return string(s) }

// Tradable reports whether the signal asks for an order.
func (s Signal) Tradable() bool { return s == SignalBuy || s == SignalSell }

// PatternCode classifies one candle against the one before it.
type PatternCode string

const (
	PatternInside      PatternCode = "1"
	PatternUp          PatternCode = "2u"
	PatternDown        PatternCode = "2d"
	PatternOutside     PatternCode = "3"
	PatternUndefined   PatternCode = "0"
	PatternUnavailable PatternCode = "na"
)

// Direction is the colour of the most recent candle.
type Direction string

const (
	DirectionGreen       Direction = "green"
	DirectionRed         Direction = "red"
	DirectionUnavailable Direction = "na"
)

// Indicators is what CalculateIndicators hands to the signal step.
type Indicators struct {
	Strat15m          string    `json:"strat_15m"`
	Strat15mDirection Direction `json:"strat_candle_15m_direction"`
	Strat60m          string    `json:"strat_60m"`
	Strat60mDirection Direction `json:"strat_candle_60m_direction"`
}
