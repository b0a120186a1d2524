package strategy

import (
	"testing"
	"time"

	"strat_bot/internal/models"
)

func bar(h, l float64) models.Candle {
	return models.Candle{High: h, Low: l, Open: l, Close: h}
}

func TestClassifyPair(t *testing.T) {
	prior := bar(10, 5)
	tests := []struct {
		name    string
		current models.Candle
		want    models.PatternCode
	}{
		{"inside", bar(9, 6), models.PatternInside},
		{"outside", bar(11, 4), models.PatternOutside},
		{"up", bar(11, 6), models.PatternUp},
		{"down", bar(9, 4), models.PatternDown},
		{"equal high", bar(10, 6), models.PatternUndefined},
		{"equal low", bar(9, 5), models.PatternUndefined},
		{"identical", bar(10, 5), models.PatternUndefined},
		{"equal high lower low", bar(10, 4), models.PatternUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPair(prior, tt.current); got != tt.want {
				t.Errorf("ClassifyPair = %q, want %q", got, tt.want)
			}
		})
	}
}

func seriesOf(candles ...models.Candle) models.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(models.Series, len(candles))
	for i, c := range candles {
		c.Start = start.Add(time.Duration(i) * 15 * time.Minute)
		out[i] = c
	}
	return out
}

func TestClassifySeries(t *testing.T) {
	t.Run("down down green", func(t *testing.T) {
		s := seriesOf(
			bar(10, 5),
			bar(11, 6), // 2u vs first
			bar(10, 5), // 2d
			models.Candle{High: 9, Low: 4, Open: 5, Close: 8}, // 2d, green
		)
		p := ClassifySeries(s)
		if !p.Valid {
			t.Fatal("expected valid pattern")
		}
		if p.Sequence != "2u-2d-2d" {
			t.Errorf("sequence = %q", p.Sequence)
		}
		if p.Direction != models.DirectionGreen {
			t.Errorf("direction = %q", p.Direction)
		}
	})

	t.Run("uses only the last four", func(t *testing.T) {
		s := seriesOf(
			bar(100, 1),
			bar(10, 5),
			bar(9, 6),  // 1
			bar(12, 3), // 3
			models.Candle{High: 12, Low: 3, Open: 8, Close: 8}, // 0, doji is red
		)
		p := ClassifySeries(s)
		if p.Sequence != "1-3-0" {
			t.Errorf("sequence = %q", p.Sequence)
		}
		if p.Direction != models.DirectionRed {
			t.Errorf("direction = %q", p.Direction)
		}
	})

	for n := 0; n < MinCandles; n++ {
		s := make(models.Series, n)
		p := ClassifySeries(s)
		if p != InsufficientData {
			t.Errorf("len %d: got %+v, want sentinel", n, p)
		}
		if p.Sequence != "na" || p.Direction != "na" || p.Valid {
			t.Errorf("len %d: sentinel fields wrong: %+v", n, p)
		}
	}
}
