package client

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coingaming/gremlex/metric"
)

// Metrics holds Prometheus metrics for the client connection layer
type Metrics struct {
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	reconnectsTotal prometheus.Counter
	framesDiscarded prometheus.Counter
	workersBusy     prometheus.Gauge
	overflowWorkers prometheus.Counter
}

// newMetrics creates and registers client metrics. A nil registry disables
// metrics entirely (nil input = nil feature pattern).
func newMetrics(registry *metric.MetricsRegistry) *Metrics {
	if registry == nil {
		return nil
	}

	metrics := &Metrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "queries_total",
			Help:      "Total queries submitted, by outcome",
		}, []string{"status"}),

		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "query_duration_seconds",
			Help:      "Time from request frame write to assembled response",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"status"}),

		reconnectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "reconnects_total",
			Help:      "Total websocket reconnects across all workers",
		}),

		framesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "frames_discarded_total",
			Help:      "Unsolicited or stale text frames discarded",
		}),

		workersBusy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "workers_busy",
			Help:      "Workers currently serving a query",
		}),

		overflowWorkers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gremlex",
			Subsystem: "client",
			Name:      "overflow_workers_total",
			Help:      "Transient overflow workers created under load",
		}),
	}

	registry.MustRegister("client", map[string]prometheus.Collector{
		"queries_total":          metrics.queriesTotal,
		"query_duration_seconds": metrics.queryDuration,
		"reconnects_total":       metrics.reconnectsTotal,
		"frames_discarded_total": metrics.framesDiscarded,
		"workers_busy":           metrics.workersBusy,
		"overflow_workers_total": metrics.overflowWorkers,
	})

	return metrics
}
