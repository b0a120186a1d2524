package config

import (
	"strings"
	"testing"
)

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"-c", "btc", "--stable-coin", "usdt", "-t", "5m", "-r", "-d", "-b", "120.5"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.Coin != "btc" || args.StableCoin != "usdt" || args.TimeFrame != "5m" {
		t.Errorf("args = %+v", args)
	}
	if !args.RunOnce || !args.DryRun {
		t.Errorf("bool flags not set: %+v", args)
	}
	if args.BuyingBudget != 120.5 {
		t.Errorf("budget = %v", args.BuyingBudget)
	}
	if args.DBFile != "crypto_trade_diary.db" || args.TableName != "strat_trades" || args.WaitInMinutes != 5 {
		t.Errorf("defaults = %+v", args)
	}
	if args.Symbol() != "BTC-USDT" {
		t.Errorf("symbol = %q", args.Symbol())
	}
}

func TestParseArgsFromEnv(t *testing.T) {
	t.Setenv("STRAT_COIN", "eth")
	t.Setenv("STRAT_STABLE_COIN", "usdc")
	t.Setenv("STRAT_TIME_FRAME", "15m")
	t.Setenv("STRAT_WAIT_IN_MINUTES", "2")

	args, err := ParseArgs([]string{"--coin", "sol"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.Coin != "sol" {
		t.Errorf("flag should win over env, got %q", args.Coin)
	}
	if args.StableCoin != "usdc" || args.TimeFrame != "15m" || args.WaitInMinutes != 2 {
		t.Errorf("env not applied: %+v", args)
	}
}

func TestParseArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"missing coin", []string{"-m", "usdt", "-t", "5m"}, "Coin is required"},
		{"bad budget", []string{"-c", "btc", "-m", "usdt", "-t", "5m", "-b", "0"}, "BuyingBudget must be greater than 0"},
		{"bad wait", []string{"-c", "btc", "-m", "usdt", "-t", "5m", "-w", "0"}, "WaitInMinutes"},
		{"bad symbol", []string{"-c", "btc/", "-m", "usdt", "-t", "5m"}, "Coin must be alphanumeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.argv)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
