package okx_client

import (
	"context"

	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	"strat_bot/internal/modules/okx_client/service"
	"strat_bot/pkg/cache"
	"strat_bot/pkg/logger"
)

func NewClient(cfg *config.Config) *service.Client {
	return service.NewClient(service.Config{
		BaseURL:    cfg.Exchange.BaseURL,
		APIKey:     cfg.Exchange.APIKey,
		APISecret:  cfg.Exchange.APISecret,
		Passphrase: cfg.Exchange.Passphrase,
		Simulated:  cfg.Exchange.Simulated,
		RateLimit:  cfg.Exchange.RateLimit,
		Timeout:    cfg.Exchange.Timeout,
	})
}

// NewCandleSource puts the Redis candle cache in front of the client when redis.addr is set.
func NewCandleSource(lc fx.Lifecycle, cfg *config.Config, client *service.Client) (service.CandleSource, error) {
	if cfg.Redis.Addr == "" {
		return client, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Redis.Addr),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return rc.Close() },
	})
	logger.Info("candle cache enabled at %s, ttl %s", cfg.Redis.Addr, cfg.Redis.CandleTTL)
	return service.NewCachedCandles(client, rc, cfg.Redis.CandleTTL), nil
}

func Module() fx.Option {
	return fx.Module("okx_client",
		fx.Provide(
			NewClient,
			NewCandleSource,
		),
	)
}
