package helper

import (
	"testing"
	"time"
)

func TestNormTF(t *testing.T) {
	cases := map[string]string{
		"60m":       "1h",
		"1H":        "1h",
		"candle15m": "15m",
		" 5m ":      "5m",
		"4H":        "4h",
	}
	for in, want := range cases {
		if got := NormTF(in); got != want {
			t.Errorf("NormTF(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOKXBar(t *testing.T) {
	cases := map[string]string{
		"5m":  "5m",
		"1h":  "1H",
		"60m": "1H",
		"4h":  "4H",
		"1d":  "1D",
	}
	for in, want := range cases {
		got, err := OKXBar(in)
		if err != nil {
			t.Fatalf("OKXBar(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("OKXBar(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := OKXBar("7m"); err == nil {
		t.Error("expected error for unsupported timeframe")
	}
}

func TestTimeframeDuration(t *testing.T) {
	if d := TimeframeDuration("15m"); d != 15*time.Minute {
		t.Errorf("15m = %v", d)
	}
	if d := TimeframeDuration("1H"); d != time.Hour {
		t.Errorf("1H = %v", d)
	}
	if d := TimeframeDuration("weird"); d != 0 {
		t.Errorf("unknown timeframe = %v, want 0", d)
	}
}

func TestSlot(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 44, 59, 0, time.UTC)
	if got := Slot(ts, 15*time.Minute); !got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("15m slot = %v", got)
	}
	if got := Slot(ts, time.Hour); !got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("1h slot = %v", got)
	}
	if got := Slot(ts, 0); !got.Equal(ts) {
		t.Errorf("zero bucket should return input, got %v", got)
	}
}
