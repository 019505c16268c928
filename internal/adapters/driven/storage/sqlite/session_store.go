package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
// Pages and both history stacks are stored as JSON columns.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

const sessionColumns = "id, name, staging_dir, pages, past, future, created_at, updated_at"

// Save stores or updates a session. Names are unique.
func (s *sessionStore) Save(ctx context.Context, state *domain.SessionState) error {
	if state == nil || state.ID == "" || state.Name == "" {
		return domain.ErrInvalidInput
	}

	pagesJSON, err := json.Marshal(state.Pages)
	if err != nil {
		return fmt.Errorf("marshalling pages: %w", err)
	}
	pastJSON, err := json.Marshal(state.Past)
	if err != nil {
		return fmt.Errorf("marshalling undo history: %w", err)
	}
	futureJSON, err := json.Marshal(state.Future)
	if err != nil {
		return fmt.Errorf("marshalling redo history: %w", err)
	}

	now := time.Now().UTC()
	createdAt := state.CreatedAt.UTC()
	if state.CreatedAt.IsZero() {
		createdAt = now
	}
	updatedAt := state.UpdatedAt.UTC()
	if state.UpdatedAt.IsZero() {
		updatedAt = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var other string
	err = tx.QueryRowContext(ctx, "SELECT id FROM sessions WHERE name = ? AND id != ?", state.Name, state.ID).Scan(&other)
	switch {
	case err == nil:
		return fmt.Errorf("session %q: %w", state.Name, domain.ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking session name: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, name, staging_dir, pages, past, future, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			staging_dir = excluded.staging_dir,
			pages = excluded.pages,
			past = excluded.past,
			future = excluded.future,
			updated_at = excluded.updated_at
	`, state.ID, state.Name, state.StagingDir, string(pagesJSON), string(pastJSON), string(futureJSON),
		createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	return scanSession(row)
}

// GetByName retrieves a session by name.
func (s *sessionStore) GetByName(ctx context.Context, name string) (*domain.SessionState, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE name = ?", name)
	return scanSession(row)
}

// List returns all sessions ordered by name.
func (s *sessionStore) List(ctx context.Context) ([]domain.SessionState, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+sessionColumns+" FROM sessions ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionState //nolint:prealloc // size unknown from query
	for rows.Next() {
		state, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// Delete removes a session.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.SessionState, error) {
	var state domain.SessionState
	var pagesJSON, pastJSON, futureJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&state.ID, &state.Name, &state.StagingDir,
		&pagesJSON, &pastJSON, &futureJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if err := json.Unmarshal([]byte(pagesJSON), &state.Pages); err != nil {
		return nil, fmt.Errorf("unmarshaling pages: %w", err)
	}
	if err := json.Unmarshal([]byte(pastJSON), &state.Past); err != nil {
		return nil, fmt.Errorf("unmarshaling undo history: %w", err)
	}
	if err := json.Unmarshal([]byte(futureJSON), &state.Future); err != nil {
		return nil, fmt.Errorf("unmarshaling redo history: %w", err)
	}
	if createdAt.Valid {
		state.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		state.UpdatedAt = updatedAt.Time
	}

	return &state, nil
}
