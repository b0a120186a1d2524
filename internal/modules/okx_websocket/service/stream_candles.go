package service

import (
	"context"
	"time"
)

// CandleCloses emits the start time of every confirmed candle of instID.
// A single instrument wrapper over the batch stream.
func (c *Client) CandleCloses(ctx context.Context, instID, bar string) <-chan time.Time {
	out := make(chan time.Time, 1)
	go func() {
		defer close(out)
		ch := c.StreamCandlesBatch(ctx, []string{instID}, bar)
		var last time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case tick, ok := <-ch:
				if !ok {
					return
				}
				if tick.InstID != instID || !tick.Candle.Start.After(last) {
					continue
				}
				last = tick.Candle.Start
				select {
				case out <- tick.Candle.Start:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
