// Package diagnostics keeps a bounded history of payloads the normalizer
// could not recognize, so silent empty renders can be investigated later.
package diagnostics

import (
	"context"
	"sync"

	"github.com/octofit/dashboard/internal/models"
)

// Store persists warnings, newest first on read
type Store interface {
	Record(ctx context.Context, w models.Warning) error
	Recent(ctx context.Context, limit int) ([]models.Warning, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryStore is a fixed-size ring buffer of warnings
type MemoryStore struct {
	mu       sync.RWMutex
	buf      []models.Warning
	next     int
	full     bool
	capacity int
}

// NewMemoryStore creates a store holding at most capacity warnings
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryStore{
		buf:      make([]models.Warning, capacity),
		capacity: capacity,
	}
}

// Record stores w, evicting the oldest entry when full
func (s *MemoryStore) Record(_ context.Context, w models.Warning) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf[s.next] = w
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit warnings, newest first. limit <= 0 returns all.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]models.Warning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = s.capacity
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]models.Warning, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.next - 1 - i + s.capacity) % s.capacity
		out = append(out, s.buf[idx])
	}
	return out, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }
