// Package metrics holds the Prometheus collectors of the content service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics groups the collectors. Each instance registers on its own registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	ContentMutations *prometheus.CounterVec
	StorageFailures  *prometheus.CounterVec
	LoginAttempts    *prometheus.CounterVec
	EventsPublished  *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ContentMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_mutations_total",
			Help:      "Content store mutations by collection and operation.",
		}, []string{"collection", "operation"}),
		StorageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_failures_total",
			Help:      "Failed content or session storage calls by operation.",
		}, []string{"operation"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_login_attempts_total",
			Help:      "Admin gate login attempts by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_events_published_total",
			Help:      "Content events handed to the broker by result.",
		}, []string{"result"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.ContentMutations,
		m.StorageFailures,
		m.LoginAttempts,
		m.EventsPublished,
		m.HTTPDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware records request latency keyed by the matched route pattern.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncMutation(collection, operation string) {
	if m == nil {
		return
	}
	m.ContentMutations.WithLabelValues(collection, operation).Inc()
}

func (m *Metrics) IncStorageFailure(operation string) {
	if m == nil {
		return
	}
	m.StorageFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncLogin(success bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if success {
		result = "accepted"
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) IncEvent(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(result).Inc()
}
