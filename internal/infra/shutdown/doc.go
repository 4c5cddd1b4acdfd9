// Package shutdown coordinates process termination for memkv.
//
// A Handler waits for SIGINT/SIGTERM (or context cancellation), then runs
// the registered hooks in reverse order of registration under a shared
// timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
