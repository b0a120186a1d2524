package strategy

import (
	"fmt"
	"time"

	"strat_bot/internal/helper"
	"strat_bot/internal/models"
)

// Resample aggregates an oldest-first series into epoch-aligned buckets of the given
// length: open=first, high=max, low=min, close=last, volume=sum. Empty buckets are skipped.
func Resample(series models.Series, bucket time.Duration) (models.Series, error) {
	if bucket < time.Second {
		return nil, fmt.Errorf("resample: bucket %v too small", bucket)
	}
	out := make(models.Series, 0, len(series))
	for i, c := range series {
		if i > 0 && !c.Start.After(series[i-1].Start) {
			return nil, fmt.Errorf("resample: candle %d at %s is not after %s",
				i, c.Start.Format(time.RFC3339), series[i-1].Start.Format(time.RFC3339))
		}
		slot := helper.Slot(c.Start, bucket)
		if n := len(out); n > 0 && out[n-1].Start.Equal(slot) {
			agg := &out[n-1]
			agg.High = max(agg.High, c.High)
			agg.Low = min(agg.Low, c.Low)
			agg.Close = c.Close
			agg.Volume += c.Volume
			continue
		}
		out = append(out, models.Candle{
			Start:  slot,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}
	return out, nil
}
