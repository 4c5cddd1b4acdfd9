// Package repl provides the interactive mode for memkv-cli.
//
// Each non-empty line is sent to the server as one request and the reply
// is printed. "exit" and "quit" leave the loop; "help" lists commands.
// History is kept in ~/.memkv/history.
package repl
