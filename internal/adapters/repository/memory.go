package repository

import (
	"context"
	"sync"

	"github.com/okian/roasboard/pkg/metrics"
)

const defaultCapacity = 4

// MemoryStore is an in-memory Store with first-in first-out eviction.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	byKey    map[string]*Snapshot
	order    []string // insertion order, oldest first
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.byKey = make(map[string]*Snapshot, s.capacity)
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.byKey[fingerprint]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordCacheMiss()
		return nil, ErrNotFound
	}
	metrics.RecordCacheHit()
	return snap, nil
}

// Put implements Store. Storing an existing fingerprint replaces the
// snapshot without changing its eviction position.
func (s *MemoryStore) Put(_ context.Context, snap *Snapshot) error {
	if snap == nil || snap.Fingerprint == "" {
		return ErrEmptySnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byKey[snap.Fingerprint]; !ok {
		for len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.byKey, oldest)
			metrics.RecordCacheEviction()
		}
		s.order = append(s.order, snap.Fingerprint)
	}
	s.byKey[snap.Fingerprint] = snap
	metrics.UpdateCacheEntries(len(s.byKey))
	return nil
}

// Invalidate implements Store.
func (s *MemoryStore) Invalidate(_ context.Context) {
	s.mu.Lock()
	s.byKey = make(map[string]*Snapshot, s.capacity)
	s.order = nil
	s.mu.Unlock()
	metrics.UpdateCacheEntries(0)
}

// Len implements Store.
func (s *MemoryStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// Capacity returns the configured bound.
func (s *MemoryStore) Capacity() int { return s.capacity }
