package sink

import (
	"context"
	"fmt"
	"sync"
)

// MemorySink keeps written artifacts in memory. It backs tests and dry runs
// where no durable storage is wanted.
type MemorySink struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailWith, when set, makes every Write return this error.
	FailWith error
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{objects: make(map[string][]byte)}
}

// Write records payload under key.
func (s *MemorySink) Write(ctx context.Context, key string, payload []byte, contentType string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.objects[key] = buf
	return nil
}

// Location returns a mem:// pseudo-address for a key.
func (s *MemorySink) Location(key string) string {
	return fmt.Sprintf("mem://%s", key)
}

// Get returns a stored payload and whether it exists.
func (s *MemorySink) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.objects[key]
	return payload, ok
}

// Keys returns all stored keys.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
