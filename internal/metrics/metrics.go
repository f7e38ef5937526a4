// Package metrics provides Prometheus metrics for the draft service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector on a private registry.
type Metrics struct {
	PoolRefreshes       *prometheus.CounterVec
	PoolSize            prometheus.Gauge
	PicksRecorded       prometheus.Counter
	PickEvaluations     *prometheus.CounterVec
	CandidatesEvaluated prometheus.Counter
	EvaluationDuration  prometheus.Histogram

	registry *prometheus.Registry
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ffp"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		PoolRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_refreshes_total",
			Help:      "Player pool refreshes by outcome",
		}, []string{"status"}),
		PoolSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_players",
			Help:      "Players in the current pool snapshot",
		}),
		PicksRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "picks_recorded_total",
			Help:      "Draft picks recorded",
		}),
		PickEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pick_evaluations_total",
			Help:      "Best-pick evaluations by outcome",
		}, []string{"result"}),
		CandidatesEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_evaluated_total",
			Help:      "Candidate picks simulated to completion",
		}),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pick_evaluation_duration_seconds",
			Help:      "Wall time of one best-pick evaluation",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		registry: reg,
	}
}

func (m *Metrics) RecordRefresh(players int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.PoolRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.PoolRefreshes.WithLabelValues("ok").Inc()
	m.PoolSize.Set(float64(players))
}

func (m *Metrics) RecordPick() {
	if m == nil {
		return
	}
	m.PicksRecorded.Inc()
}

func (m *Metrics) RecordEvaluation(found bool, candidates int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.PickEvaluations.WithLabelValues("error").Inc()
	case found:
		m.PickEvaluations.WithLabelValues("found").Inc()
	default:
		m.PickEvaluations.WithLabelValues("none").Inc()
	}
	m.CandidatesEvaluated.Add(float64(candidates))
	m.EvaluationDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
