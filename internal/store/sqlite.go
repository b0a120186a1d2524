package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"strat_bot/internal/models"
	"strat_bot/pkg/db"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id         TEXT PRIMARY KEY,
	symbol     TEXT NOT NULL,
	signal     TEXT NOT NULL,
	order_id   TEXT NOT NULL DEFAULT '',
	price      REAL NOT NULL DEFAULT 0,
	amount     REAL NOT NULL DEFAULT 0,
	dry_run    INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_symbol_created ON %[1]s(symbol, created_at);
`

// SQLite keeps the diary in a local file; created_at is stored as unix milliseconds.
type SQLite struct {
	db    *sql.DB
	table string
}

func OpenSQLite(ctx context.Context, path, table string) (*SQLite, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	conn, err := db.NewSQLite(path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, fmt.Sprintf(sqliteSchema, table)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	return &SQLite{db: conn, table: table}, nil
}

func (s *SQLite) LastTransaction(ctx context.Context, symbol string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, symbol, signal, order_id, price, amount, dry_run, created_at
		FROM %s
		WHERE symbol = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`, s.table), symbol)

	var (
		tx        models.Transaction
		signal    string
		dryRun    int
		createdAt int64
	)
	err := row.Scan(&tx.ID, &tx.Symbol, &signal, &tx.OrderID, &tx.Price, &tx.Amount, &dryRun, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last transaction: %w", err)
	}
	tx.Signal = models.Signal(signal)
	tx.DryRun = dryRun != 0
	tx.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &tx, nil
}

func (s *SQLite) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return errors.New("save transaction: nil transaction")
	}
	dryRun := 0
	if tx.DryRun {
		dryRun = 1
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, symbol, signal, order_id, price, amount, dry_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.table),
		tx.ID, tx.Symbol, string(tx.Signal), tx.OrderID, tx.Price, tx.Amount, dryRun, tx.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
