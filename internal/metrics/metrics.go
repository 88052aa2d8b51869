// Package metrics holds the Prometheus collectors for the API. They live on
// a private registry so tests and multiple app instances do not collide with
// the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellness"

var (
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// HTTPRequests counts finished requests.
	// Labels: method, route (mux pattern), status
	HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPDuration measures handler latency.
	// Labels: method, route
	HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// GoalLogs counts appended goal log entries.
	// Labels: type (steps, water, sleep, custom)
	GoalLogs = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goal_logs_total",
		Help:      "Total goal log entries appended",
	}, []string{"type"})

	// Registrations counts created accounts.
	// Labels: role
	Registrations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total registered accounts by role",
	}, []string{"role"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
