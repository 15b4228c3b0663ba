package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/maboss/pkg/domain"
)

// Store implements ports.ArtifactStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Put stores the artifact in memory.
func (s *Store) Put(ctx context.Context, name string, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = data
	return nil
}

// Get retrieves the artifact from memory.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return "", domain.ErrArtifactNotFound
	}
	return data, nil
}

// Names returns the stored artifact names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
