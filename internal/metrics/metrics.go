package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "findmymess",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findmymess",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "findmymess",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	messSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findmymess",
			Subsystem: "messes",
			Name:      "submissions_total",
			Help:      "Messes created, by initial status.",
		},
		[]string{"status"},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findmymess",
			Subsystem: "messes",
			Name:      "status_transitions_total",
			Help:      "Moderation decisions applied, by target status.",
		},
		[]string{"status"},
	)

	reviewSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findmymess",
			Subsystem: "reviews",
			Name:      "submissions_total",
			Help:      "Review submissions, by outcome.",
		},
		[]string{"outcome"},
	)

	logoUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findmymess",
			Subsystem: "uploads",
			Name:      "logos_total",
			Help:      "Logo uploads to the blob store, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		messSubmissions,
		statusTransitions,
		reviewSubmissions,
		logoUploads,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordSubmission(status string) {
	messSubmissions.WithLabelValues(status).Inc()
}

func RecordStatusTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}

func RecordReview(outcome string) {
	reviewSubmissions.WithLabelValues(outcome).Inc()
}

func RecordUpload(outcome string) {
	logoUploads.WithLabelValues(outcome).Inc()
}
