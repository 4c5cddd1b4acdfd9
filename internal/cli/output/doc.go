// Package output renders server replies for memkv-cli.
//
// Two formats are supported: text, which mirrors redis-cli
// (OK, "value", (nil), (error) ERR ...), and json for scripting.
package output
