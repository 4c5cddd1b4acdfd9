// Package logger provides structured logging for memkv.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, handler setup and the global default
//   - context.go: Context-aware logging with connection IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Context propagation of the connection ID
package logger
