package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is the single-instance fallback when Redis is not
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*windowEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.windows[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &windowEntry{resetAt: now.Add(window)}
		s.windows[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt.Sub(now), nil
}
