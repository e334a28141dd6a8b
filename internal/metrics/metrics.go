package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CandidatesProcessed *prometheus.CounterVec
	BatchesTotal        prometheus.Counter
	APIErrors           prometheus.Counter
	RequestSeconds      *prometheus.HistogramVec
	ActiveWorkers       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CandidatesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hermes_candidates_processed_total",
			Help: "Total number of processed candidate addresses by result status.",
		}, []string{"status"}),
		BatchesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hermes_batches_total",
			Help: "Total number of batch runs started.",
		}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hermes_provider_api_errors_total",
			Help: "Total number of errors received from the routing provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hermes_provider_request_duration_seconds",
			Help:    "Duration of requests to the routing provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hermes_active_workers",
			Help: "Current number of active workers resolving candidates.",
		}),
	}
}
