package driven

import (
	"context"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// SessionStore persists named editing sessions.
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, state *domain.SessionState) error

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if no session has that ID.
	Get(ctx context.Context, id string) (*domain.SessionState, error)

	// GetByName retrieves a session by its unique name.
	// Returns domain.ErrNotFound if no session has that name.
	GetByName(ctx context.Context, name string) (*domain.SessionState, error)

	// List returns all sessions ordered by name.
	List(ctx context.Context) ([]domain.SessionState, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
