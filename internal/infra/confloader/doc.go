// Package confloader provides the configuration loading mechanism.
//
// It uses koanf to layer configuration sources onto a typed struct that
// already holds the defaults:
//
//  1. Default values (pre-filled target struct)
//  2. YAML configuration file
//  3. Environment variables
//  4. Maps (flags, tests)
//
// Later sources override earlier ones. A Watcher built on fsnotify reports
// changes to the configuration file so callers can re-apply the settings
// that support hot reload.
package confloader
