// Package command provides the memkv-cli command tree.
//
// It uses urfave/cli/v2. Single-shot commands (get, set, exec) open a
// connection, send one request and print the reply; repl keeps the
// connection open for interactive use.
package command
