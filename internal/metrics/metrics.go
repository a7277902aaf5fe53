package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency of API calls by route pattern
	RequestDuration *prometheus.HistogramVec

	// Traffic
	TotalRequests *prometheus.CounterVec

	// Generated telemetry volume
	SnapshotsGenerated *prometheus.CounterVec
	EventsGenerated    prometheus.Counter

	// Feed: publish failures and breaker state (0 closed, 1 half-open, 2 open)
	FeedPublishErrors   prometheus.Counter
	FeedPublished       prometheus.Counter
	CircuitBreakerState *prometheus.GaugeVec

	// Dataset rows seen by the last successful load or import
	DatasetRows *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	// unregistered fallback keeps callers nil-safe
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "netsec_request_duration_seconds",
			Help:    "Histogram of API request latencies.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"route", "status"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "netsec_requests_total",
			Help: "Total number of API requests.",
		}, []string{"route"}),

		SnapshotsGenerated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "netsec_snapshots_generated_total",
			Help: "Snapshots generated, by threat level.",
		}, []string{"threat_level"}),

		EventsGenerated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "netsec_threat_events_generated_total",
			Help: "Simulated threat events generated.",
		}),

		FeedPublishErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "netsec_feed_publish_errors_total",
			Help: "Snapshot publishes that failed after retries.",
		}),

		FeedPublished: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "netsec_feed_published_total",
			Help: "Snapshots published to the live feed.",
		}),

		CircuitBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "netsec_circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),

		DatasetRows: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "netsec_dataset_rows",
			Help: "Rows in the most recently loaded dataset split.",
		}, []string{"kind"}),
	}
}
