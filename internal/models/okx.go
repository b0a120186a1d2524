package models

import (
	"fmt"
	"strconv"
	"time"
)

// Instrument holds the spot trading rules used to size orders.
type Instrument struct {
	InstID string
	LotSz  float64
	MinSz  float64
	TickSz float64
}

// ParseCandleRow decodes one OKX candle row
// [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm]. confirmed is false for
// the still-forming candle; rows without a confirm column count as confirmed.
func ParseCandleRow(row []string) (c Candle, confirmed bool, err error) {
	if len(row) < 5 {
		return Candle{}, false, fmt.Errorf("candle row has %d columns, need at least 5", len(row))
	}
	tsMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Candle{}, false, fmt.Errorf("candle ts %q: %w", row[0], err)
	}

	var px [4]float64
	for i := range px {
		px[i], err = strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return Candle{}, false, fmt.Errorf("candle price %q: %w", row[i+1], err)
		}
	}

	c = Candle{
		Start: time.UnixMilli(tsMs).UTC(),
		Open:  px[0],
		High:  px[1],
		Low:   px[2],
		Close: px[3],
	}
	if len(row) >= 6 {
		c.Volume, err = strconv.ParseFloat(row[5], 64)
		if err != nil {
			return Candle{}, false, fmt.Errorf("candle volume %q: %w", row[5], err)
		}
	}

	confirmed = true
	if len(row) >= 9 {
		confirmed = row[len(row)-1] == "1"
	}
	return c, confirmed, nil
}
