// Package metrics exposes Prometheus collectors for simulation runs and the HTTP API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	runScore      prometheus.Histogram
	delivered     prometheus.Counter
	missing       prometheus.Counter
	planningTime  prometheus.Histogram
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "drone_runs_total", Help: "Simulation runs by final status."},
			[]string{"status"},
		),
		runScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "drone_run_score",
				Help:    "Score of completed simulation runs.",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
		delivered: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "drone_packets_delivered_total", Help: "Packets delivered by completed runs."},
		),
		missing: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "drone_packets_missing_total", Help: "Packets no route could reach."},
		),
		planningTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "drone_run_duration_seconds",
				Help:    "Time spent planning and simulating a run.",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.runs,
		m.runScore,
		m.delivered,
		m.missing,
		m.planningTime,
		m.httpRequests,
		m.httpDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide instance used by the service binary.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRun records one processed run. Score and packet counters only move for
// completed runs.
func (m *Metrics) ObserveRun(status string, score, delivered, missing int, elapsed time.Duration) {
	m.runs.WithLabelValues(status).Inc()
	m.planningTime.Observe(elapsed.Seconds())

	if status != "Completed" {
		return
	}
	m.runScore.Observe(float64(score))
	m.delivered.Add(float64(delivered))
	m.missing.Add(float64(missing))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDurations.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
