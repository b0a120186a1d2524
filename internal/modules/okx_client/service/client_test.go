package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"strat_bot/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		BaseURL:    srv.URL,
		APIKey:     "key",
		APISecret:  "secret",
		Passphrase: "pass",
		Timeout:    time.Second,
	})
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestCandleRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v5/market/candles" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("instId") != "BTC-USDT" || q.Get("bar") != "5m" || q.Get("limit") != "300" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("OK-ACCESS-SIGN") != "" {
			t.Error("public endpoint should not be signed")
		}
		_, _ = io.WriteString(w, `{"code":"0","msg":"","data":[["1700000300000","2","3","1","2.5","10","0","0","0"],["1700000000000","1","2","0.5","2","5","0","0","1"]]}`)
	})

	rows, err := c.CandleRows(context.Background(), "BTC-USDT", "5m", 1000)
	if err != nil {
		t.Fatalf("CandleRows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "1700000300000" || rows[1][8] != "1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestCandleRowsTruncatedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = io.WriteString(w, `{"code":"0","msg":"","data":[["1700000000000"`)
	})

	_, err := c.CandleRows(context.Background(), "BTC-USDT", "5m", 10)
	if err == nil {
		t.Fatal("expected error for truncated body")
	}
	if !strings.Contains(err.Error(), "read body") || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v", err)
	}
}

func TestCandleRowsErrorCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":"51001","msg":"Instrument ID does not exist","data":[]}`)
	})
	_, err := c.CandleRows(context.Background(), "NOPE-USDT", "5m", 10)
	if err == nil || !strings.Contains(err.Error(), "51001") {
		t.Fatalf("err = %v", err)
	}
}

func TestBalancesSigned(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ccy") != "BTC,USDT" {
			t.Errorf("ccy = %q", r.URL.Query().Get("ccy"))
		}
		ts := r.Header.Get("OK-ACCESS-TIMESTAMP")
		if ts != "2024-01-02T03:04:05.000Z" {
			t.Errorf("timestamp = %q", ts)
		}
		want := (&Client{apiSecret: "secret"}).sign(ts, http.MethodGet, "/api/v5/account/balance?ccy=BTC%2CUSDT", "")
		if got := r.Header.Get("OK-ACCESS-SIGN"); got != want {
			t.Errorf("sign = %q, want %q", got, want)
		}
		if r.Header.Get("OK-ACCESS-KEY") != "key" || r.Header.Get("OK-ACCESS-PASSPHRASE") != "pass" {
			t.Error("auth headers missing")
		}
		_, _ = io.WriteString(w, `{"code":"0","msg":"","data":[{"details":[{"ccy":"USDT","availBal":"123.45"}]}]}`)
	})

	bal, err := c.Balances(context.Background(), "BTC", "USDT")
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if bal["USDT"] != 123.45 || bal["BTC"] != 0 {
		t.Errorf("balances = %v", bal)
	}
}

func TestPrivateCallNeedsCredentials(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	if _, err := c.Balances(context.Background(), "BTC"); err == nil {
		t.Fatal("expected credentials error")
	}
}

func TestPlaceMarketOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v5/trade/order" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		if err := sonic.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["side"] != "buy" || body["ordType"] != "market" || body["tdMode"] != "cash" || body["sz"] != "0.0125" {
			t.Errorf("body = %v", body)
		}
		_, _ = io.WriteString(w, `{"code":"0","msg":"","data":[{"ordId":"312269865356374016","sCode":"0","sMsg":""}]}`)
	})

	id, err := c.PlaceMarketOrder(context.Background(), "BTC-USDT", models.SignalBuy, 0.0125)
	if err != nil {
		t.Fatalf("PlaceMarketOrder: %v", err)
	}
	if id != "312269865356374016" {
		t.Errorf("ordId = %q", id)
	}

	if _, err := c.PlaceMarketOrder(context.Background(), "BTC-USDT", models.SignalNoSignal, 1); err == nil {
		t.Error("expected error for NO_SIGNAL side")
	}
}

func TestPlaceMarketOrderRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":"1","msg":"","data":[{"ordId":"","sCode":"51008","sMsg":"Insufficient balance"}]}`)
	})
	_, err := c.PlaceMarketOrder(context.Background(), "BTC-USDT", models.SignalSell, 1)
	if err == nil || !strings.Contains(err.Error(), "51008") {
		t.Fatalf("err = %v", err)
	}
}

func TestInstrument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("instType") != "SPOT" {
			t.Errorf("instType = %q", r.URL.Query().Get("instType"))
		}
		_, _ = io.WriteString(w, `{"code":"0","msg":"","data":[{"instId":"BTC-USDT","tickSz":"0.1","lotSz":"0.00000001","minSz":"0.00001","state":"live"}]}`)
	})
	inst, err := c.Instrument(context.Background(), "BTC-USDT")
	if err != nil {
		t.Fatalf("Instrument: %v", err)
	}
	if inst.LotSz != 0.00000001 || inst.MinSz != 0.00001 || inst.TickSz != 0.1 {
		t.Errorf("instrument = %+v", inst)
	}
}

type mapCache struct {
	data map[string][]byte
	err  error
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

type countingSource struct {
	calls int
}

func (s *countingSource) CandleRows(context.Context, string, string, int) ([][]string, error) {
	s.calls++
	return [][]string{{"1700000000000", "1", "2", "0.5", "1.5", "1", "0", "0", "1"}}, nil
}

func TestCachedCandles(t *testing.T) {
	src := &countingSource{}
	cache := &mapCache{data: map[string][]byte{}}
	cc := NewCachedCandles(src, cache, time.Minute)

	for i := 0; i < 3; i++ {
		rows, err := cc.CandleRows(context.Background(), "BTC-USDT", "5m", 300)
		if err != nil {
			t.Fatalf("CandleRows: %v", err)
		}
		if len(rows) != 1 || rows[0][4] != "1.5" {
			t.Fatalf("rows = %v", rows)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	// a broken cache must not break the fetch
	cache.err = errors.New("redis down")
	if _, err := cc.CandleRows(context.Background(), "BTC-USDT", "5m", 300); err != nil {
		t.Fatalf("CandleRows with broken cache: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}
