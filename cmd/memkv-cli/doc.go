// Package main provides the entry point for memkv-cli.
//
// memkv-cli sends GET and SET requests to a memkv server, either one
// command per invocation or interactively with the repl subcommand.
package main
