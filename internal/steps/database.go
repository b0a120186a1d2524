package steps

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"strat_bot/internal/models"
	"strat_bot/internal/runner"
	"strat_bot/internal/store"
	"strat_bot/pkg/logger"
)

var errNoStore = errors.New("trade diary is not open")

// SetupDatabase opens the trade diary table named by the run arguments.
type SetupDatabase struct {
	Opener store.Opener
}

func (SetupDatabase) Name() string { return "SetupDatabase" }

func (s SetupDatabase) Run(ctx context.Context, rc *runner.Context) error {
	db, err := s.Opener.Open(ctx, rc.Args.DBFile, rc.Args.TableName)
	if err != nil {
		return errors.Wrapf(err, "open trade diary %s/%s", rc.Args.DBFile, rc.Args.TableName)
	}
	rc.DB = db
	return nil
}

type LoadLastTransactionFromDatabase struct{}

func (LoadLastTransactionFromDatabase) Name() string { return "LoadLastTransactionFromDatabase" }

func (LoadLastTransactionFromDatabase) Run(ctx context.Context, rc *runner.Context) error {
	if rc.DB == nil {
		return errNoStore
	}
	tx, err := rc.DB.LastTransaction(ctx, rc.Market.InstID)
	if err != nil {
		return errors.Wrap(err, "load last transaction")
	}
	rc.LastTransaction = tx
	if tx != nil {
		logger.Info("last transaction %s %s amount=%g at %s", tx.Signal, tx.Symbol, tx.Amount, tx.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// RecordTransactionInDatabase stores the order placed in this run, if any.
type RecordTransactionInDatabase struct {
	Now   func() time.Time
	NewID func() string
}

func (RecordTransactionInDatabase) Name() string { return "RecordTransactionInDatabase" }

func (s RecordTransactionInDatabase) Run(ctx context.Context, rc *runner.Context) error {
	if rc.Order == nil {
		return nil
	}
	if rc.DB == nil {
		return errNoStore
	}
	tx := &models.Transaction{
		ID:        s.NewID(),
		Symbol:    rc.Order.InstID,
		Signal:    rc.Order.Side,
		OrderID:   rc.Order.ID,
		Price:     rc.Order.Price,
		Amount:    rc.Order.Amount,
		DryRun:    rc.Order.DryRun,
		CreatedAt: s.Now(),
	}
	if err := rc.DB.SaveTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "record transaction")
	}
	rc.LastTransaction = tx
	return nil
}
