package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"strat_bot/internal/modules/config"
	"strat_bot/internal/store"
	"strat_bot/pkg/db"
	"strat_bot/pkg/logger"
)

// NewTxManager connects to db_dsn. Without a DSN it returns nil and the diary
// falls back to SQLite.
func NewTxManager(lc fx.Lifecycle, cfg *config.Config) (db.TxManager, error) {
	if cfg.DB == "" {
		logger.Info("db_dsn is empty, trade diary uses sqlite")
		return nil, nil
	}

	ctx := context.Background()
	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN:      cfg.DB,
		MaxConns: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create poolMaster: %w", err)
	}

	err = poolMaster.Ping(ctx)
	if err != nil {
		poolMaster.Close()
		return nil, err
	}

	tm := db.NewPgTxManager(poolMaster)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tm.Close()
			return nil
		},
	})
	return tm, nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			NewTxManager,
			fx.Annotate(store.NewOpener, fx.As(new(store.Opener))),
		),
	)
}
