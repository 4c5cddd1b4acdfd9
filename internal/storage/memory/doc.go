// Package memory provides the in-memory key-value storage engine for memkv.
//
// The engine is a single map guarded by one exclusive lock. Every Get and
// Set holds the lock for its whole duration, which gives all operations a
// single total order across connections:
//
//   - a Get concurrent with a Set on the same key observes either the old
//     or the new value, never a partial one
//   - concurrent Sets on the same key resolve last-writer-wins
//
// Write throughput under contention is bounded by that one lock. There is
// no sharding, expiration or persistence; state lives for the process
// lifetime.
package memory
