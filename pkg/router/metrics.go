package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcomes recorded by Metrics.
const (
	OutcomeEmpty       = "empty"
	OutcomeStatic      = "static"
	OutcomeDynamic     = "dynamic"
	OutcomeDecodeError = "decode_error"
	OutcomeNotFound    = "not_found"
)

// Metrics records dispatch counts and handler latency.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the dispatch metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hashview",
			Subsystem: "router",
			Name:      "dispatches_total",
			Help:      "Route dispatches by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hashview",
			Subsystem: "router",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent in route handlers",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
