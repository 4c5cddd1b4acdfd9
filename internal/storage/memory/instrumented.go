package memory

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/memkv/internal/telemetry/metric"
)

// Backend is the storage contract the instrumented wrapper delegates to.
// *Store satisfies it.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Instrumented wraps a Backend and counts operations into Prometheus.
// It does not change the semantics of the wrapped store.
type Instrumented struct {
	backend Backend

	getHit  prometheus.Counter
	getMiss prometheus.Counter
	set     prometheus.Counter
}

// Compile-time check to ensure *Store satisfies Backend.
var _ Backend = (*Store)(nil)

// NewInstrumented wraps backend with the storage counters from reg.
func NewInstrumented(backend Backend, reg *metric.Registry) *Instrumented {
	return &Instrumented{
		backend: backend,
		getHit:  reg.StorageOps.WithLabelValues("get", "hit"),
		getMiss: reg.StorageOps.WithLabelValues("get", "miss"),
		set:     reg.StorageOps.WithLabelValues("set", "ok"),
	}
}

// Get delegates to the wrapped store and records a hit or miss.
func (s *Instrumented) Get(key string) (string, bool) {
	val, ok := s.backend.Get(key)
	if ok {
		s.getHit.Inc()
	} else {
		s.getMiss.Inc()
	}
	return val, ok
}

// Set delegates to the wrapped store and records the write.
func (s *Instrumented) Set(key, value string) {
	s.backend.Set(key, value)
	s.set.Inc()
}
