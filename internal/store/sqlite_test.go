package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"strat_bot/internal/models"
)

func TestSQLiteLastTransaction(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:", "strat_trades")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	got, err := s.LastTransaction(ctx, "BTC-USDT")
	if err != nil {
		t.Fatalf("LastTransaction on empty table: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on empty table, got %+v", got)
	}

	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		{ID: "a", Symbol: "BTC-USDT", Signal: models.SignalBuy, OrderID: "o1", Price: 100, Amount: 0.5, CreatedAt: base},
		{ID: "b", Symbol: "BTC-USDT", Signal: models.SignalSell, OrderID: "o2", Price: 110, Amount: 0.5, DryRun: true, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Symbol: "ETH-USDT", Signal: models.SignalBuy, Price: 10, Amount: 2, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		if err := s.SaveTransaction(ctx, &rows[i]); err != nil {
			t.Fatalf("SaveTransaction %s: %v", rows[i].ID, err)
		}
	}

	got, err = s.LastTransaction(ctx, "BTC-USDT")
	if err != nil {
		t.Fatalf("LastTransaction: %v", err)
	}
	if got == nil || got.ID != "b" {
		t.Fatalf("expected transaction b, got %+v", got)
	}
	if got.Signal != models.SignalSell || !got.DryRun || got.OrderID != "o2" {
		t.Errorf("fields not round-tripped: %+v", got)
	}
	if !got.CreatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("created_at = %v", got.CreatedAt)
	}

	if err := s.SaveTransaction(ctx, &rows[0]); err == nil {
		t.Error("expected duplicate id to fail")
	}
	if err := s.SaveTransaction(ctx, nil); err == nil {
		t.Error("expected nil transaction to fail")
	}
}

func TestValidateTable(t *testing.T) {
	for _, ok := range []string{"strat_trades", "_t", "Trades2024"} {
		if err := ValidateTable(ok); err != nil {
			t.Errorf("ValidateTable(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "1trades", "trades;drop table x", "a-b", "a b"} {
		if err := ValidateTable(bad); err == nil {
			t.Errorf("ValidateTable(%q) should fail", bad)
		}
	}
}

func TestDiaryOpenerUsesHomeDir(t *testing.T) {
	dir := t.TempDir()
	o := NewOpener(nil)
	o.home = func() (string, error) { return dir, nil }

	s, err := o.Open(context.Background(), "diary.db", "strat_trades")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	sq, ok := s.(*SQLite)
	if !ok {
		t.Fatalf("expected *SQLite, got %T", s)
	}
	if sq.table != "strat_trades" {
		t.Errorf("table = %q", sq.table)
	}
	if _, err := os.Stat(filepath.Join(dir, "diary.db")); err != nil {
		t.Errorf("diary file not created under home: %v", err)
	}

	if _, err := o.Open(context.Background(), "diary.db", "bad-name"); err == nil {
		t.Error("expected invalid table error")
	}
}
