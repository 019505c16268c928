package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Stored states are deep copies, so callers cannot mutate them afterwards.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SessionState
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.SessionState),
	}
}

// Save stores or updates a session. Names are unique.
func (s *SessionStore) Save(_ context.Context, state *domain.SessionState) error {
	if state == nil || state.ID == "" || state.Name == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.sessions {
		if id != state.ID && existing.Name == state.Name {
			return domain.ErrAlreadyExists
		}
	}
	s.sessions[state.ID] = state.Clone()
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return state.Clone(), nil
}

// GetByName retrieves a session by name.
func (s *SessionStore) GetByName(_ context.Context, name string) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, state := range s.sessions {
		if state.Name == name {
			return state.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all sessions ordered by name.
func (s *SessionStore) List(_ context.Context) ([]domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.SessionState, 0, len(s.sessions))
	for _, state := range s.sessions {
		result = append(result, *state.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
