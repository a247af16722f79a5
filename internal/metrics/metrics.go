package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "legalplatform"

// Recorder owns the service's Prometheus collectors. A nil *Recorder is a
// valid no-op recorder.
type Recorder struct {
	registry             *prometheus.Registry
	identityEvents       *prometheus.CounterVec
	contentEvents        *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		identityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_events_total",
			Help:      "Identity lifecycle operations by outcome.",
		}, []string{"operation", "outcome"}),
		contentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_events_total",
			Help:      "Secure content operations by outcome.",
		}, []string{"operation", "outcome"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Emails that could not be delivered.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.identityEvents,
		r.contentEvents,
		r.notificationFailures,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) IdentityEvent(operation string, outcome string) {
	if r == nil {
		return
	}
	r.identityEvents.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) ContentEvent(operation string, outcome string) {
	if r == nil {
		return
	}
	r.contentEvents.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) NotificationFailed(kind string) {
	if r == nil {
		return
	}
	r.notificationFailures.WithLabelValues(kind).Inc()
}

func (r *Recorder) ObserveRequest(method string, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
