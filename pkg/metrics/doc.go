// Package metrics provides Prometheus-compatible metrics collection.
//
// This package implements the Prometheus text exposition format (text/plain; version=0.0.4)
// without any external dependencies.
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., sessions created)
//   - Gauge: value that can go up or down (e.g., active sessions)
//   - Histogram: distribution of values with configurable buckets (e.g., latencies)
//
// All metrics are safe for concurrent use.
//
// # Default Metrics
//
//   - sessiontrace_sessions_created_total: sessions issued a new identifier
//   - sessiontrace_active_sessions: unexpired sessions in the store
//   - sessiontrace_requests_total: requests served (labels: method, status)
//   - sessiontrace_request_duration_seconds: request latency (labels: method)
//   - sessiontrace_panics_total: recovered handler panics
//   - sessiontrace_uptime_seconds and go_* runtime gauges
//
// Session and request identifiers are never used as label values; they are
// unbounded and are correlated through logs instead.
//
// # Usage
//
//	registry := metrics.Init()
//	_ = metrics.SessionsCreatedTotal.Inc()
//	http.Handle("/metrics", registry.Handler())
package metrics
