// Package store persists saved analyses: an in-memory default and a Redis
// twin for deployments that want history to survive restarts.
package store

import (
	"context"
	"sort"
	"sync"

	"regent/internal/history/models"
	"regent/pkg/platform/sentinel"
)

// InMemory keeps analyses in process memory, keyed by owner then ID.
type InMemory struct {
	mu        sync.RWMutex
	bySubject map[string]map[string]models.Analysis
}

func NewInMemory() *InMemory {
	return &InMemory{bySubject: make(map[string]map[string]models.Analysis)}
}

func (s *InMemory) Save(ctx context.Context, a models.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bySubject[a.Subject] == nil {
		s.bySubject[a.Subject] = make(map[string]models.Analysis)
	}
	s.bySubject[a.Subject][a.ID] = a
	return nil
}

func (s *InMemory) Get(ctx context.Context, subject, id string) (models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.bySubject[subject][id]
	if !ok {
		return models.Analysis{}, sentinel.ErrNotFound
	}
	return a, nil
}

// List returns the subject's analyses, newest first.
func (s *InMemory) List(ctx context.Context, subject string) ([]models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Analysis, 0, len(s.bySubject[subject]))
	for _, a := range s.bySubject[subject] {
		out = append(out, a)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(analyses []models.Analysis) {
	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].CreatedAt.Equal(analyses[j].CreatedAt) {
			return analyses[i].ID < analyses[j].ID
		}
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
}

func (s *InMemory) Delete(ctx context.Context, subject, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bySubject[subject][id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.bySubject[subject], id)
	return nil
}
