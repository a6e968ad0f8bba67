// Package memory provides in-memory implementations of driven port
// interfaces. Useful for tests and for running without persistence.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

// Ensure StagingStore implements the interface.
var _ driven.StagingStore = (*StagingStore)(nil)

// StagingStore is an in-memory implementation of driven.StagingStore.
// Entries do not survive a restart.
type StagingStore struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]domain.PendingUpload
}

// NewStagingStore creates a new in-memory staging store.
func NewStagingStore() *StagingStore {
	return &StagingStore{
		entries: make(map[string]domain.PendingUpload),
	}
}

// Save stores or updates a staged entry.
func (s *StagingStore) Save(_ context.Context, up domain.PendingUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[up.ID]; !ok {
		s.order = append(s.order, up.ID)
	}
	s.entries[up.ID] = up
	return nil
}

// Delete removes a staged entry by its local token.
func (s *StagingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all staged entries in insertion order.
func (s *StagingStore) List(_ context.Context) ([]domain.PendingUpload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PendingUpload, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out, nil
}
