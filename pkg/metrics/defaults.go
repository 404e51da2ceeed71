package metrics

import (
	"context"
	"sync"
	"time"
)

// Default metrics. Initialized by Init().
//
// Labels never carry session or request identifiers: those are unbounded
// and belong in log lines, not in metric series.
var (
	// SessionsCreatedTotal counts sessions issued a new identifier.
	SessionsCreatedTotal *Counter

	// ActiveSessions is the number of unexpired sessions in the store.
	ActiveSessions *Gauge

	// RequestsTotal counts served requests.
	// Labels: method, status
	RequestsTotal *Counter

	// RequestDuration tracks request handling time in seconds.
	// Labels: method
	RequestDuration *Histogram

	// PanicsTotal counts handler panics recovered into 500 responses.
	PanicsTotal *Counter

	// UptimeSeconds is the process uptime in seconds.
	UptimeSeconds *Gauge

	// RuntimeCollectorInstance is the Go runtime metrics collector.
	RuntimeCollectorInstance *RuntimeCollector

	defaultRegistry *Registry
	initOnce        sync.Once
	collectorCancel context.CancelFunc
)

// Init initializes the default metrics and returns the registry.
// It is idempotent and safe to call from multiple goroutines.
func Init() *Registry {
	initOnce.Do(func() {
		defaultRegistry = NewRegistry()

		SessionsCreatedTotal = defaultRegistry.NewCounter(
			"sessiontrace_sessions_created_total",
			"Total number of sessions issued a new identifier",
		)
		ActiveSessions = defaultRegistry.NewGauge(
			"sessiontrace_active_sessions",
			"Number of unexpired sessions held in the session store",
		)
		RequestsTotal = defaultRegistry.NewCounter(
			"sessiontrace_requests_total",
			"Total number of HTTP requests served",
			"method", "status",
		)
		RequestDuration = defaultRegistry.NewHistogram(
			"sessiontrace_request_duration_seconds",
			"Duration of HTTP requests in seconds",
			DefaultBuckets,
			"method",
		)
		PanicsTotal = defaultRegistry.NewCounter(
			"sessiontrace_panics_total",
			"Total number of recovered handler panics",
		)
		UptimeSeconds = defaultRegistry.NewGauge(
			"sessiontrace_uptime_seconds",
			"Server uptime in seconds",
		)

		RuntimeCollectorInstance = NewRuntimeCollector(defaultRegistry, UptimeSeconds)
		var ctx context.Context
		ctx, collectorCancel = context.WithCancel(context.Background())
		go RuntimeCollectorInstance.Run(ctx, 10*time.Second)
	})

	return defaultRegistry
}

// DefaultRegistry returns the default metrics registry, or nil before Init.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Reset clears the default metrics so Init can run again. Used by tests.
func Reset() {
	if collectorCancel != nil {
		collectorCancel()
		collectorCancel = nil
	}

	initOnce = sync.Once{}
	defaultRegistry = nil
	SessionsCreatedTotal = nil
	ActiveSessions = nil
	RequestsTotal = nil
	RequestDuration = nil
	PanicsTotal = nil
	UptimeSeconds = nil
	RuntimeCollectorInstance = nil
}
