package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionManager = (*SessionManager)(nil)

// SessionManager opens named sessions from a SessionStore and creates
// transient ones for one-shot builds.
type SessionManager struct {
	store       driven.SessionStore
	stagingRoot string
	deps        SessionDeps
	now         func() time.Time
}

// NewSessionManager creates a session manager. store may be nil, in which
// case named sessions are created fresh and never persisted. Staging areas
// of named sessions are created under stagingRoot.
func NewSessionManager(store driven.SessionStore, stagingRoot string, deps SessionDeps) *SessionManager {
	return &SessionManager{
		store:       store,
		stagingRoot: stagingRoot,
		deps:        deps,
		now:         time.Now,
	}
}

// Open returns the named session, creating it when it does not exist.
func (m *SessionManager) Open(ctx context.Context, name string) (driving.SessionService, error) {
	if name == "" {
		name = domain.DefaultSessionName
	}

	if m.store != nil {
		state, err := m.store.GetByName(ctx, name)
		switch {
		case err == nil:
			staging, err := OpenStagingArea(state.StagingDir)
			if err != nil {
				return nil, err
			}
			logger.Debug("Opened session %q (%d pages)", name, len(state.Pages))
			return RestoreSession(state, staging, m.deps), nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("load session %q: %w", name, err)
		}
	}

	id := uuid.NewString()
	staging, err := NewStagingArea(m.stagingRoot, id)
	if err != nil {
		return nil, err
	}
	session := NewSession(id, name, staging, m.deps)
	logger.Debug("Created session %q in %s", name, staging.Dir())

	if err := m.Save(ctx, session); err != nil {
		_ = staging.Close()
		return nil, err
	}
	return session, nil
}

// Transient starts an unnamed session in a temporary staging area.
// The caller must Close it.
func (m *SessionManager) Transient(_ context.Context) (driving.SessionService, error) {
	staging, err := NewStagingArea("", "")
	if err != nil {
		return nil, err
	}
	return NewSession(uuid.NewString(), "", staging, m.deps), nil
}

// Save persists the session state. Transient sessions are not persisted.
func (m *SessionManager) Save(ctx context.Context, session driving.SessionService) error {
	if m.store == nil || session.Name() == "" {
		return nil
	}

	now := m.now()
	if s, ok := session.(*Session); ok {
		s.touch(now)
	}
	state := session.State()
	state.UpdatedAt = now

	if err := m.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save session %q: %w", session.Name(), err)
	}
	return nil
}

// List returns all persisted sessions.
func (m *SessionManager) List(ctx context.Context) ([]domain.SessionState, error) {
	if m.store == nil {
		return nil, nil
	}
	return m.store.List(ctx)
}

// Delete removes the named session and its staging area.
func (m *SessionManager) Delete(ctx context.Context, name string) error {
	if m.store == nil {
		return domain.ErrNotFound
	}
	state, err := m.store.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, state.ID); err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	if err := os.RemoveAll(state.StagingDir); err != nil {
		logger.Warn("Remove staging area %s: %v", state.StagingDir, err)
	}
	return nil
}
