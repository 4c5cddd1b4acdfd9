package benchmark

import (
	"context"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/yndnr/memkv/internal/core/command"
	"github.com/yndnr/memkv/internal/server/kvserver"
	"github.com/yndnr/memkv/internal/storage/memory"
	"github.com/yndnr/memkv/internal/telemetry/logger"
)

// KeyCounts defines the keyspace sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

func keyName(i int) string {
	return fmt.Sprintf("key-%d", i)
}

// prefillStore writes count keys into store.
func prefillStore(store *memory.Store, count int) {
	for i := 0; i < count; i++ {
		store.Set(keyName(i), "value")
	}
}

// startServer runs a kv server on an ephemeral port for the benchmark.
func startServer(b *testing.B, store command.Store) string {
	b.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		b.Fatal(err)
	}
	srv := kvserver.New(kvserver.DefaultConfig(), store, command.DefaultRegistry(),
		kvserver.WithLogger(logger.Discard()))
	go srv.Serve(context.Background(), ln)

	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return ln.Addr().String()
}

// roundTrip sends req and reads exactly len(reply) bytes into reply.
func roundTrip(conn net.Conn, req []byte, reply []byte) error {
	if _, err := conn.Write(req); err != nil {
		return err
	}
	_, err := io.ReadFull(conn, reply)
	return err
}
