package storage

import (
	"context"
	"sync"

	"github.com/talentmatch/backend/models"
)

// MemoryStore is an in-process CandidateStore for local development and
// tests. Seeded once; reads are copy-on-return so callers can't mutate
// the pool.
type MemoryStore struct {
	mu         sync.RWMutex
	candidates map[string]models.Candidate
	order      []string
}

// NewMemoryStore creates a store seeded with the given candidates.
func NewMemoryStore(candidates []models.Candidate) *MemoryStore {
	s := &MemoryStore{candidates: make(map[string]models.Candidate, len(candidates))}
	for _, c := range candidates {
		s.candidates[c.ID] = c
		s.order = append(s.order, c.ID)
	}
	return s
}

func (s *MemoryStore) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListCandidates(_ context.Context) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Candidate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.candidates[id])
	}
	return out, nil
}
