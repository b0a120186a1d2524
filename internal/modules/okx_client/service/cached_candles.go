package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"strat_bot/pkg/logger"
)

type CandleSource interface {
	CandleRows(ctx context.Context, instID, bar string, limit int) ([][]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
}

// CachedCandles keeps the last candle page per instrument in a shared cache so
// several bot processes on the same market hit OKX once per TTL. Cache failures
// fall through to the source.
type CachedCandles struct {
	src   CandleSource
	cache Cache
	ttl   time.Duration
}

func NewCachedCandles(src CandleSource, cache Cache, ttl time.Duration) *CachedCandles {
	return &CachedCandles{src: src, cache: cache, ttl: ttl}
}

func (c *CachedCandles) CandleRows(ctx context.Context, instID, bar string, limit int) ([][]string, error) {
	key := fmt.Sprintf("candles:%s:%s:%d", instID, bar, limit)

	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		logger.Warn("candle cache get %s: %v", key, err)
	} else if ok {
		var rows [][]string
		if err := sonic.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
		logger.Warn("candle cache entry %s is corrupt, refetching", key)
	}

	rows, err := c.src.CandleRows(ctx, instID, bar, limit)
	if err != nil {
		return nil, err
	}

	raw, err := sonic.Marshal(rows)
	if err == nil {
		err = c.cache.Set(ctx, key, raw, c.ttl)
	}
	if err != nil {
		logger.Warn("candle cache set %s: %v", key, err)
	}
	return rows, nil
}
