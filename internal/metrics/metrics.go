// Package metrics exposes the service counters on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"braintrainer/internal/results"
)

type Metrics struct {
	Registry        *prometheus.Registry
	ResultsRecorded *prometheus.CounterVec
	PersistFailures prometheus.Counter
	SessionsActive  prometheus.Gauge
	StreamClients   prometheus.Gauge
}

// New registers every collector on a fresh registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ResultsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brain_results_recorded_total",
			Help: "Finished sessions appended to the result log.",
		}, []string{"game_type"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brain_result_persist_failures_total",
			Help: "Result log rewrites that failed and are held in memory.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brain_sessions_active",
			Help: "Player sessions currently held.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brain_stream_clients",
			Help: "Open SSE and websocket connections.",
		}),
	}
	m.Registry.MustRegister(m.ResultsRecorded, m.PersistFailures, m.SessionsActive, m.StreamClients)
	for _, gt := range results.GameTypes {
		m.ResultsRecorded.WithLabelValues(string(gt))
	}
	return m
}

// ObserveResult matches results.WithObserver.
func (m *Metrics) ObserveResult(r results.Result, err error) {
	m.ResultsRecorded.WithLabelValues(string(r.GameType)).Inc()
	if err != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) SetSessions(n int) { m.SessionsActive.Set(float64(n)) }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
