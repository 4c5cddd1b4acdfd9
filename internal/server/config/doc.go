// Package config provides server configuration for memkv.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of addresses, limits and log settings
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: defaults, a YAML file and environment variables.
package config
