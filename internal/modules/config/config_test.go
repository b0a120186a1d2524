package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"strat_bot/internal/models"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exchange.BaseURL != "https://www.okx.com" {
		t.Errorf("base url = %q", cfg.Exchange.BaseURL)
	}
	if cfg.Exchange.CandleLimit != 300 {
		t.Errorf("candle limit = %d", cfg.Exchange.CandleLimit)
	}
	if cfg.Exchange.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Exchange.Timeout)
	}
	if cfg.Pipeline.Trigger != TriggerInterval {
		t.Errorf("trigger = %q", cfg.Pipeline.Trigger)
	}
	if !cfg.Pipeline.PrintContext {
		t.Error("print_context should default to true")
	}
	if cfg.Tracing.Port != 6831 {
		t.Errorf("tracing port = %d", cfg.Tracing.Port)
	}
	if cfg.Rules.Buy.Suffix != "2d-2d" || cfg.Rules.Buy.Direction != models.DirectionGreen || cfg.Rules.Sell.Suffix != "" {
		t.Errorf("rules = %+v", cfg.Rules)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	body := `
db_dsn: postgres://file
exchange:
  candle_limit: 100
  timeout: 3s
pipeline:
  trading: true
  trigger: candle_close
rules:
  buy:
    suffix: 1-2u
    direction: green
  sell:
    suffix: 2u-2u
    direction: red
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("OKX_API_KEY", "key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB != "postgres://env" {
		t.Errorf("env should override dsn, got %q", cfg.DB)
	}
	if cfg.Telegram.ChatID != 42 {
		t.Errorf("chat id = %d", cfg.Telegram.ChatID)
	}
	if cfg.Exchange.APIKey != "key" {
		t.Errorf("api key = %q", cfg.Exchange.APIKey)
	}
	if cfg.Exchange.CandleLimit != 100 || cfg.Exchange.Timeout != 3*time.Second {
		t.Errorf("exchange = %+v", cfg.Exchange)
	}
	if !cfg.Pipeline.Trading || cfg.Pipeline.Trigger != TriggerCandleClose {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
	if cfg.Rules.Buy.Suffix != "1-2u" {
		t.Errorf("buy rule = %+v", cfg.Rules.Buy)
	}
	if cfg.Rules.Sell.Suffix != "2u-2u" || cfg.Rules.Sell.Direction != models.DirectionRed {
		t.Errorf("sell rule = %+v", cfg.Rules.Sell)
	}
}

func TestLoadRejectsUnknownTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  trigger: cron\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown trigger")
	}
}

func TestShippedConfigEnablesSell(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "values_local.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Rules.Evaluate("1-2u-2u", models.DirectionRed, "na"); got != models.SignalSell {
		t.Errorf("2u-2u red = %s, want SELL", got)
	}
	if got := cfg.Rules.Evaluate("1-2d-2d", models.DirectionGreen, "na"); got != models.SignalBuy {
		t.Errorf("2d-2d green = %s, want BUY", got)
	}
}
