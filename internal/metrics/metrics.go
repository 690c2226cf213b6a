// Package metrics holds the Prometheus collectors of the web server
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// Registry is dedicated so tests and the /metrics endpoint only see our collectors.
	Registry = prometheus.NewRegistry()

	// RequestsTotal counts served requests by matched route and final status.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cuillere",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests served, labeled by route and status code.",
	}, []string{"route", "status"})

	// RequestDurationSeconds is the handler time per request.
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cuillere",
		Subsystem: "web",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving an HTTP request, labeled by route.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route"})

	// DebatesTotal counts answered debates by surface (page or api).
	DebatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cuillere",
		Subsystem: "web",
		Name:      "debates_total",
		Help:      "Total number of debates answered, labeled by surface.",
	}, []string{"surface"})

	// RewrittenErrorsTotal counts bodies replaced by the error page.
	RewrittenErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cuillere",
		Subsystem: "web",
		Name:      "rewritten_errors_total",
		Help:      "Total number of responses whose body was replaced by the error page, labeled by status code.",
	}, []string{"status"})
)

// MustRegister registers all collectors once.
func MustRegister() {
	once.Do(func() {
		Registry.MustRegister(
			RequestsTotal,
			RequestDurationSeconds,
			DebatesTotal,
			RewrittenErrorsTotal,
		)
	})
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	MustRegister()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request.
func ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	RequestDurationSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveDebate records one answered debate.
func ObserveDebate(surface string) {
	DebatesTotal.WithLabelValues(surface).Inc()
}

// ObserveRewrite records one error page substitution.
func ObserveRewrite(status int) {
	RewrittenErrorsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}
