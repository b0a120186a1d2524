package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"strat_bot/internal/models"
	"strat_bot/pkg/db"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id         TEXT PRIMARY KEY,
	symbol     TEXT NOT NULL,
	signal     TEXT NOT NULL,
	order_id   TEXT NOT NULL DEFAULT '',
	price      DOUBLE PRECISION NOT NULL DEFAULT 0,
	amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
	dry_run    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_symbol_created ON %[1]s(symbol, created_at DESC);
`

// Postgres writes the diary through the shared transaction manager. The pool
// belongs to the process, so Close is a no-op.
type Postgres struct {
	db    db.TxManager
	table string
}

func OpenPostgres(ctx context.Context, tm db.TxManager, table string) (*Postgres, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	err := tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, fmt.Sprintf(postgresSchema, table))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pg.CreateTable %s: %w", table, err)
	}
	return &Postgres{db: tm, table: table}, nil
}

func (p *Postgres) LastTransaction(ctx context.Context, symbol string) (tx *models.Transaction, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.LastTransaction: %w", err)
		}
	}()

	row := p.db.Conn().QueryRow(ctx, fmt.Sprintf(`
		SELECT id, symbol, signal, order_id, price, amount, dry_run, created_at
		FROM %s
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT 1`, p.table), symbol)

	var (
		out    models.Transaction
		signal string
	)
	err = row.Scan(&out.ID, &out.Symbol, &signal, &out.OrderID, &out.Price, &out.Amount, &out.DryRun, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out.Signal = models.Signal(signal)
	return &out, nil
}

func (p *Postgres) SaveTransaction(ctx context.Context, t *models.Transaction) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.SaveTransaction: %w", err)
		}
	}()
	if t == nil {
		return errors.New("nil transaction")
	}

	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, fmt.Sprintf(`
			INSERT INTO %s (id, symbol, signal, order_id, price, amount, dry_run, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, p.table),
			t.ID, t.Symbol, string(t.Signal), t.OrderID, t.Price, t.Amount, t.DryRun, t.CreatedAt)
		return err
	})
}

func (p *Postgres) Close() error { return nil }
