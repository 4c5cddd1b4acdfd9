// Package metric provides Prometheus metrics for memkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Custom collector for keyspace size
//
// Metrics include:
//
//   - Active and total connections
//   - Command counts by name and status
//   - Command latency histograms
//   - Storage operation counts
//
// Metrics are exposed at /metrics in Prometheus format when the admin
// HTTP endpoint is enabled.
package metric
