// Package store holds the use-case registry: the curated catalogue of known
// AI system use cases, each carrying a fixed base risk or a contextual
// decision procedure.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"regent/internal/classification/models"
	"regent/pkg/platform/sentinel"
)

// InMemory is the default registry backend, hydrated from the bundled YAML
// file at startup.
type InMemory struct {
	mu    sync.RWMutex
	byID  map[string]models.UseCase
	order []string
}

// NewInMemory creates an empty registry.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[string]models.UseCase)}
}

// Replace swaps the whole registry atomically, preserving catalogue order
// for listing.
func (s *InMemory) Replace(useCases []models.UseCase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]models.UseCase, len(useCases))
	s.order = make([]string, 0, len(useCases))
	for _, uc := range useCases {
		s.byID[uc.ID] = uc
		s.order = append(s.order, uc.ID)
	}
}

// Get returns the use case with the given ID.
func (s *InMemory) Get(ctx context.Context, id string) (models.UseCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uc, ok := s.byID[id]
	if !ok {
		return models.UseCase{}, fmt.Errorf("use case %q: %w", id, sentinel.ErrNotFound)
	}
	return uc, nil
}

// List returns all registered use cases in catalogue order. Falls back to
// sorted-by-ID when the registry was built without an explicit order.
func (s *InMemory) List(ctx context.Context) ([]models.UseCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.order
	if len(ids) != len(s.byID) {
		ids = make([]string, 0, len(s.byID))
		for id := range s.byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}
	out := make([]models.UseCase, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}
