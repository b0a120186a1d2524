package okx_websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/fx/fxtest"

	"strat_bot/internal/modules/config"
	"strat_bot/internal/modules/okx_websocket/service"
)

func TestNewCandleClosesTrigger(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "no upgrade", http.StatusBadRequest)
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	tests := []struct {
		name    string
		trigger string
		runOnce bool
		stream  bool
	}{
		{"interval", config.TriggerInterval, false, false},
		{"candle close run once", config.TriggerCandleClose, true, false},
		{"candle close loop", config.TriggerCandleClose, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dials.Store(0)
			cfg := &config.Config{}
			cfg.Pipeline.Trigger = tt.trigger
			args := config.Args{Coin: "btc", StableCoin: "usdt", TimeFrame: "5m", RunOnce: tt.runOnce}

			lc := fxtest.NewLifecycle(t)
			closes, err := NewCandleCloses(lc, cfg, args, service.NewClient(url, nil))
			if err != nil {
				t.Fatalf("NewCandleCloses: %v", err)
			}
			if (closes != nil) != tt.stream {
				t.Errorf("stream = %t, want %t", closes != nil, tt.stream)
			}
			lc.RequireStart().RequireStop()
			if !tt.stream && dials.Load() != 0 {
				t.Errorf("dialed %d times without a stream", dials.Load())
			}
		})
	}
}
