package health

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"strat_bot/internal/models"
	"strat_bot/internal/modules/health/service"
	"strat_bot/pkg/metrics"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHealthEndpoints(t *testing.T) {
	state := service.NewState()
	reg := NewRegistry()
	rec := metrics.New(reg)
	srv := httptest.NewServer(NewMux(state, reg))
	defer srv.Close()

	if code, _ := get(t, srv, "/livez"); code != http.StatusOK {
		t.Errorf("/livez = %d", code)
	}
	if code, _ := get(t, srv, "/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("/readyz before first run = %d", code)
	}

	state.RunFinished(time.Unix(1700000000, 0), models.SignalBuy, nil)
	state.RunFinished(time.Unix(1700000300, 0), models.SignalNoSignal, errors.New("okx timeout"))
	rec.RecordRun(true)

	if code, _ := get(t, srv, "/readyz"); code != http.StatusOK {
		t.Errorf("/readyz after run = %d", code)
	}

	code, body := get(t, srv, "/healthz")
	if code != http.StatusOK {
		t.Fatalf("/healthz = %d", code)
	}
	var snap service.Snapshot
	if err := sonic.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("decode /healthz: %v", err)
	}
	if snap.Runs != 2 || snap.FailedRuns != 1 {
		t.Errorf("runs = %d failed = %d", snap.Runs, snap.FailedRuns)
	}
	if snap.LastSignal != "NO_SIGNAL" || snap.LastError != "okx timeout" || snap.LastRunUnix != 1700000300 {
		t.Errorf("snapshot = %+v", snap)
	}

	code, body = get(t, srv, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("/metrics = %d", code)
	}
	if !strings.Contains(body, `stratbot_pipeline_runs_total{outcome="ok"} 1`) {
		t.Errorf("/metrics missing run counter:\n%s", body)
	}
}
