package store

import (
	"context"
	"sync"

	"regent/internal/obligation"
)

// InMemory serves the obligation catalogue from process memory. It is the
// default backend, hydrated from the bundled YAML files at startup, and the
// store handler tests run against it directly.
type InMemory struct {
	mu         sync.RWMutex
	buckets    map[obligation.Regulation][]Entry
	milestones []obligation.Milestone
}

// NewInMemory creates an empty in-memory catalogue.
func NewInMemory() *InMemory {
	return &InMemory{buckets: make(map[obligation.Regulation][]Entry)}
}

// Replace swaps the whole catalogue atomically. Used at startup and by the
// admin reload endpoint.
func (s *InMemory) Replace(buckets map[obligation.Regulation][]Entry, milestones []obligation.Milestone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[obligation.Regulation][]Entry, len(buckets))
	for reg, entries := range buckets {
		s.buckets[reg] = append([]Entry(nil), entries...)
	}
	s.milestones = append([]obligation.Milestone(nil), milestones...)
}

// Fetch returns the bucket's records matching the query, in catalogue order.
func (s *InMemory) Fetch(ctx context.Context, reg obligation.Regulation, q Query) ([]obligation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.buckets[reg], q), nil
}

// Milestones returns the regulation-wide milestone dates.
func (s *InMemory) Milestones(ctx context.Context) ([]obligation.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]obligation.Milestone(nil), s.milestones...), nil
}
