// Package main provides the entry point for memkv-server.
//
// The server holds string keys and values in memory and serves GET and
// SET over a plain-text TCP protocol. An optional admin HTTP listener
// exposes health, readiness and Prometheus metrics.
//
// Usage:
//
//	memkv-server [--config FILE]
//	memkv-server version
//	memkv-server config [--config FILE]
//
// Configuration is read from defaults, then the YAML file, then MEMKV_*
// environment variables.
package main
