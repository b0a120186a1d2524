package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects pipeline metrics. A nil *Recorder drops everything.
type Recorder struct {
	runsTotal    *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	signalsTotal *prometheus.CounterVec
	lastClose    *prometheus.GaugeVec
}

// New registers the pipeline collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratbot_pipeline_runs_total",
				Help: "Total number of pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		stepDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stratbot_step_duration_seconds",
				Help:    "Duration of pipeline steps in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step", "outcome"},
		),
		signalsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratbot_signals_total",
				Help: "Signals identified per symbol",
			},
			[]string{"symbol", "signal"},
		),
		lastClose: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stratbot_last_close",
				Help: "Last close price seen by the pipeline",
			},
			[]string{"symbol"},
		),
	}
}

// RecordRun counts a finished pipeline run.
func (r *Recorder) RecordRun(ok bool) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(outcome(ok)).Inc()
}

// RecordStep observes one step duration.
func (r *Recorder) RecordStep(step string, seconds float64, ok bool) {
	if r == nil {
		return
	}
	r.stepDuration.WithLabelValues(step, outcome(ok)).Observe(seconds)
}

func (r *Recorder) RecordSignal(symbol, signal string) {
	if r == nil {
		return
	}
	r.signalsTotal.WithLabelValues(symbol, signal).Inc()
}

func (r *Recorder) RecordLastClose(symbol string, price float64) {
	if r == nil {
		return
	}
	r.lastClose.WithLabelValues(symbol).Set(price)
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
