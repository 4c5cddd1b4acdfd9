package memory

import "sync"

// Store is the shared key-value map.
//
// A single Store is created at startup and handed by pointer to every
// connection. The zero value is not usable; call New.
type Store struct {
	mu   sync.Mutex
	data map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Get returns the current value for key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.data[key]
	return val, ok
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.data)
}
