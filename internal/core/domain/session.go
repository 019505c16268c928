package domain

import "time"

// DefaultSessionName is used when no session name is given.
const DefaultSessionName = "default"

// SessionState is the persistable form of an editing session: the page list,
// its undo/redo stacks and the staging area holding extracted archives.
type SessionState struct {
	// ID is the unique identifier (UUID).
	ID string

	// Name is the user-facing name, unique across sessions.
	Name string

	// StagingDir receives extracted archive contents.
	StagingDir string

	// Pages is the current page order.
	Pages []PageRef

	// Past holds snapshots for undo, oldest first.
	Past [][]PageRef

	// Future holds snapshots for redo, oldest first.
	Future [][]PageRef

	// CreatedAt is when the session was started.
	CreatedAt time.Time

	// UpdatedAt is when the session was last saved.
	UpdatedAt time.Time
}

// Clone returns a deep copy of the state.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Pages = CopyPages(s.Pages)
	out.Past = copySnapshots(s.Past)
	out.Future = copySnapshots(s.Future)
	return &out
}

func copySnapshots(snaps [][]PageRef) [][]PageRef {
	if snaps == nil {
		return nil
	}
	out := make([][]PageRef, len(snaps))
	for i, s := range snaps {
		out[i] = CopyPages(s)
	}
	return out
}
