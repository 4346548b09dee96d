// Package metrics provides Prometheus metric collection for the
// matchmaking service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Join outcome labels
const (
	OutcomeWon      = "won"
	OutcomeRejected = "rejected"
)

// Recorder is the interface the service layer records against
type Recorder interface {
	RecordSessionCreated()
	RecordJoin(outcome string)
	RecordHTTPRequest(method string, status int, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder implementation
type Collector struct {
	registry        *prometheus.Registry
	sessionsCreated prometheus.Counter
	joins           *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    prometheus.Histogram
}

// NewCollector creates a Collector with its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gammon_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		joins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gammon_joins_total",
			Help: "Join attempts by outcome",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gammon_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gammon_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		c.sessionsCreated,
		c.joins,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// RecordSessionCreated counts a successful session creation
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordJoin counts a join attempt by outcome
func (c *Collector) RecordJoin(outcome string) {
	c.joins.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts a completed HTTP request
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// Handler returns the /metrics HTTP handler for this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything, for tests and wiring
// without a collector
type Nop struct{}

func (Nop) RecordSessionCreated()                        {}
func (Nop) RecordJoin(string)                            {}
func (Nop) RecordHTTPRequest(string, int, time.Duration) {}

var _ Recorder = (*Collector)(nil)
var _ Recorder = Nop{}
