package store

import (
	"context"
	"sync"

	"github.com/evdnx/gator/catalog"
)

// MemoryStore is an in-memory Store, used in tests and when no database
// is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[catalog.Key]catalog.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[catalog.Key]catalog.Entry)}
}

func (s *MemoryStore) Save(ctx context.Context, entries []catalog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.entries[e.Key] = e
	}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
