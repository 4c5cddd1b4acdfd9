// Package kvserver serves the memkv text protocol over TCP.
//
// Each accepted connection runs in its own goroutine. One read from the
// socket is one request: the bytes are tokenized, dispatched through a
// command.Registry against a shared command.Store, and the reply is
// written back before the next read. Requests longer than the read
// buffer are not reassembled.
package kvserver
