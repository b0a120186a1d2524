package helper

import (
	"fmt"
	"strings"
	"time"
)

// NormTF brings user timeframes ("60m", "1H", "candle15m") to one spelling.
func NormTF(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "candle")
	switch s {
	case "60m", "1h":
		return "1h"
	case "240m", "4h":
		return "4h"
	case "1440m", "1d":
		return "1d"
	default:
		return s
	}
}

// TimeframeDuration returns the bar length, 0 for unknown timeframes.
func TimeframeDuration(tf string) time.Duration {
	switch NormTF(tf) {
	case "1m":
		return time.Minute
	case "3m":
		return 3 * time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "2h":
		return 2 * time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	default:
		return 0
	}
}

// OKXBar maps a timeframe to the bar name of the OKX candles API.
func OKXBar(tf string) (string, error) {
	switch s := NormTF(tf); s {
	case "1m", "3m", "5m", "15m", "30m":
		return s, nil
	case "1h", "2h", "4h":
		return strings.ToUpper(s), nil
	case "1d":
		return "1D", nil
	}
	return "", fmt.Errorf("unsupported timeframe for OKX bar: %q", tf)
}

// Slot floors t to the start of its d-long bucket counted from the Unix epoch.
func Slot(t time.Time, d time.Duration) time.Time {
	step := int64(d / time.Second)
	if step <= 0 {
		return t
	}
	sec := t.Unix()
	rem := sec % step
	if rem < 0 {
		rem += step
	}
	return time.Unix(sec-rem, 0).In(t.Location())
}
