// Package command implements request parsing and command dispatch for memkv.
//
// A request is one line of client input. ParseRequest tokenizes it into
// an uppercased command name and its arguments, and Execute resolves the
// name in a Registry and runs the matching Command against a Store.
//
// Supported commands:
//   - GET key
//   - SET key value
//
// New commands implement Command and are passed to NewRegistry; the
// transport and storage layers do not change.
package command
