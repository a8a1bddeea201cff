package registry

import (
	"context"
	"fmt"
	"sync"

	"melodie/pkg/midds/codec"
)

// MemoryStore keeps the initial implementation lightweight and testable.
// It intentionally favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	seq     map[codec.Kind]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		seq:     make(map[codec.Kind]uint64),
	}
}

func recordKey(kind codec.Kind, id uint64) string {
	return fmt.Sprintf("%s/%d", kind, id)
}

func (s *MemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey(record.Kind, record.ID)
	if _, exists := s.records[key]; exists {
		return ErrConflict
	}
	s.records[key] = record
	return nil
}

func (s *MemoryStore) Find(_ context.Context, kind codec.Kind, id uint64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[recordKey(kind, id)]; ok {
		return record, nil
	}
	return Record{}, ErrNotFound
}

func (s *MemoryStore) NextID(_ context.Context, kind codec.Kind) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[kind]++
	return s.seq[kind], nil
}
