package driving

import (
	"context"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// SessionService is one editing session: an ordered page list with
// undo/redo history and a staging area for extracted archives.
// It is not safe for concurrent use.
type SessionService interface {
	// ID returns the session identifier.
	ID() string

	// Name returns the session name.
	Name() string

	// StagingDir returns the directory receiving extracted archives.
	StagingDir() string

	// Pages returns a copy of the current page order.
	Pages() []domain.PageRef

	// Len returns the number of pages.
	Len() int

	// CanUndo reports whether Undo would change anything.
	CanUndo() bool

	// CanRedo reports whether Redo would change anything.
	CanRedo() bool

	// Append adds pages to the end as one undo step.
	Append(refs ...domain.PageRef)

	// Remove deletes the pages at the given positions and returns how many
	// were removed. Out-of-range positions are ignored.
	Remove(indices ...int) int

	// Sort orders pages by file name.
	Sort(mode domain.SortMode) error

	// Move relocates the page at from to position to.
	Move(from, to int) bool

	// Clear removes every page as one undo step.
	Clear()

	// Undo restores the previous page order.
	Undo() bool

	// Redo reapplies the last undone change.
	Redo() bool

	// Import classifies and imports paths as a single undo step.
	// Per-path failures are joined into the returned error; successful
	// paths are still applied.
	Import(ctx context.Context, paths []string, decider Decider) ([]domain.ImportResult, error)

	// Generate writes the current pages as a PDF to outPath.
	Generate(ctx context.Context, outPath string) error

	// Preview writes the current pages to a preview PDF in the staging
	// area and returns its path.
	Preview(ctx context.Context) (string, error)

	// State returns the persistable form of the session.
	State() *domain.SessionState

	// Close removes the staging area. Later imports fail with
	// domain.ErrSessionClosed.
	Close() error
}

// SessionManager opens, persists and discards sessions.
type SessionManager interface {
	// Open returns the named session, creating it when it does not exist.
	Open(ctx context.Context, name string) (SessionService, error)

	// Transient starts an unnamed session in a temporary staging area
	// that is never persisted.
	Transient(ctx context.Context) (SessionService, error)

	// Save persists the session state.
	Save(ctx context.Context, session SessionService) error

	// List returns all persisted sessions.
	List(ctx context.Context) ([]domain.SessionState, error)

	// Delete removes the named session and its staging area.
	Delete(ctx context.Context, name string) error
}
