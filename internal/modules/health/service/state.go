package service

import (
	"sync"
	"sync/atomic"
	"time"

	"strat_bot/internal/models"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected  atomic.Bool
	lastTickUnix atomic.Int64 // unix seconds

	runs   atomic.Int64
	failed atomic.Int64

	mu         sync.RWMutex
	lastRun    time.Time
	lastSignal models.Signal
	lastError  string
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchTick(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

// RunFinished records the outcome of a pipeline run. The first finished run
// marks the service ready.
func (s *State) RunFinished(at time.Time, signal models.Signal, err error) {
	s.runs.Add(1)
	s.mu.Lock()
	s.lastRun = at
	s.lastSignal = signal
	s.lastError = ""
	if err != nil {
		s.failed.Add(1)
		s.lastError = err.Error()
	}
	s.mu.Unlock()
	s.SetReady(true)
}

// Snapshot is the /healthz payload.
type Snapshot struct {
	Ready        bool   `json:"ready"`
	WSConnected  bool   `json:"wsConnected"`
	UptimeSec    int64  `json:"uptimeSec"`
	LastTickUnix int64  `json:"lastTickUnix"`
	LastRunUnix  int64  `json:"lastRunUnix"`
	LastSignal   string `json:"lastSignal"`
	LastError    string `json:"lastError,omitempty"`
	Runs         int64  `json:"runs"`
	FailedRuns   int64  `json:"failedRuns"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Ready:        s.Ready(),
		WSConnected:  s.WSConnected(),
		UptimeSec:    int64(s.Uptime().Seconds()),
		LastTickUnix: s.lastTickUnix.Load(),
		LastSignal:   string(s.lastSignal),
		LastError:    s.lastError,
		Runs:         s.runs.Load(),
		FailedRuns:   s.failed.Load(),
	}
	if !s.lastRun.IsZero() {
		snap.LastRunUnix = s.lastRun.Unix()
	}
	return snap
}
