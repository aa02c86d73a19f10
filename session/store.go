// Package session provides the keyed store for per-session conversation
// state. State is isolated per session id with last-write-wins semantics;
// no state is shared between sessions.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/talentmatch/backend/models"
)

// ErrNotFound is returned for a session id that was never initialized.
var ErrNotFound = errors.New("session not found")

// Store is the keyed ConversationState store. Implementations must keep
// sessions fully independent of each other.
type Store interface {
	// Get returns the state for a session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*models.ConversationState, error)
	// Put stores the state under its session id, replacing any previous value.
	Put(ctx context.Context, state *models.ConversationState) error
	// Delete removes a session. Deleting an unknown session returns ErrNotFound.
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the default in-process store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.ConversationState)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers never mutate stored state in place.
	cp := *state
	cp.History = append([]models.RequirementFragment(nil), state.History...)
	cp.Pool = append([]string(nil), state.Pool...)
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *state
	cp.History = append([]models.RequirementFragment(nil), state.History...)
	cp.Pool = append([]string(nil), state.Pool...)
	s.sessions[state.SessionID] = &cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
