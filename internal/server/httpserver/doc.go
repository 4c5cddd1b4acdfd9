// Package httpserver provides the optional admin HTTP endpoint for memkv.
//
// Routes:
//
//   - GET /health: liveness with run ID and version
//   - GET /ready: readiness
//   - GET /metrics: Prometheus exposition
//
// Other methods on these paths get 405.
package httpserver
