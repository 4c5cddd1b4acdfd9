// Package connection provides the memkv-cli client for the KV protocol.
//
// Requests are sent as a single inline text line; replies are decoded
// with a RESP reader.
package connection
