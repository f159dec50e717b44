package build

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records build counts, latency and page size.
type Metrics struct {
	builds   *prometheus.CounterVec
	duration prometheus.Histogram
	sources  prometheus.Gauge
}

// NewMetrics registers the build metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hashview",
			Subsystem: "build",
			Name:      "builds_total",
			Help:      "Page builds by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hashview",
			Subsystem: "build",
			Name:      "duration_seconds",
			Help:      "Time spent building the page",
			Buckets:   prometheus.DefBuckets,
		}),
		sources: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hashview",
			Subsystem: "build",
			Name:      "source_files",
			Help:      "Module files in the last successful build",
		}),
	}
}

func (m *Metrics) observe(err error, sources int, start time.Time) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.builds.WithLabelValues("failure").Inc()
		return
	}
	m.builds.WithLabelValues("success").Inc()
	m.sources.Set(float64(sources))
}
