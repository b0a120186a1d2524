package models

import "time"

// Candle is one OHLCV bar; Start is the open time of its bucket.
type Candle struct {
	Start  time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Green reports close above open.
func (c Candle) Green() bool { return c.Close > c.Open }

// Series is an oldest-first run of candles with unique start times.
type Series []Candle

// Last returns the newest candle.
func (s Series) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// Tail returns at most the n newest candles.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
