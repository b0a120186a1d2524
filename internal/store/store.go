package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"strat_bot/internal/models"
	"strat_bot/pkg/db"
)

// Store is the trade diary of one run.
type Store interface {
	// LastTransaction returns the newest transaction for symbol, nil when there is none.
	LastTransaction(ctx context.Context, symbol string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	Close() error
}

// Opener hands out a Store bound to one table.
type Opener interface {
	Open(ctx context.Context, dbFile, table string) (Store, error)
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateTable rejects names that cannot be used as a bare SQL identifier.
func ValidateTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

// DiaryOpener picks Postgres when a transaction manager is configured and
// falls back to a SQLite file under the home directory.
type DiaryOpener struct {
	pg   db.TxManager
	home func() (string, error)
}

func NewOpener(pg db.TxManager) *DiaryOpener {
	return &DiaryOpener{pg: pg, home: os.UserHomeDir}
}

func (o *DiaryOpener) Open(ctx context.Context, dbFile, table string) (Store, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	if o.pg != nil {
		return OpenPostgres(ctx, o.pg, table)
	}

	path := dbFile
	if path != ":memory:" && !filepath.IsAbs(path) {
		home, err := o.home()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, dbFile)
	}
	return OpenSQLite(ctx, path, table)
}
