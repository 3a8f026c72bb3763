// Package metrics provides Prometheus instrumentation for sentinel.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled bool

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Audit domain metrics
	auditRequestsTotal   *prometheus.CounterVec
	explorerLookupTotal  *prometheus.CounterVec
	completionCallsTotal *prometheus.CounterVec
)

// Init initializes the metrics system.
func Init(enabledFlag bool) {
	enabled = enabledFlag

	if !enabled {
		return
	}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	auditRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_requests_total",
			Help: "Total number of audit requests by outcome",
		},
		[]string{"outcome"},
	)

	explorerLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_lookup_total",
			Help: "Total number of explorer source lookups by result",
		},
		[]string{"result"},
	)

	completionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_request_total",
			Help: "Total number of completion service calls by status",
		},
		[]string{"status"},
	)

	// Go runtime metrics (goroutines, memory, GC) are collected by
	// prometheus/client_golang automatically.
}

// AuditRequest records one audit request outcome.
func AuditRequest(outcome string) {
	if !enabled {
		return
	}
	auditRequestsTotal.WithLabelValues(outcome).Inc()
}

// ExplorerLookup records one explorer lookup result.
func ExplorerLookup(result string) {
	if !enabled {
		return
	}
	explorerLookupTotal.WithLabelValues(result).Inc()
}

// CompletionCall records one completion service call.
func CompletionCall(status string) {
	if !enabled {
		return
	}
	completionCallsTotal.WithLabelValues(status).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	if !enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return promhttp.Handler()
}

// Enabled returns whether metrics are enabled.
func Enabled() bool {
	return enabled
}
