package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

func TestSessionCmd_AddListSave(t *testing.T) {
	ts := setupTestServices(t)

	output, err := execute(t, "session", "add", ts.file(t, "cover.png"), ts.file(t, "notes.txt"))
	require.NoError(t, err)
	assert.Contains(t, output, `Session "default": 2 page(s)`)

	output, err = execute(t, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "1. cover.png")
	assert.Contains(t, output, "2. notes.txt")

	out := filepath.Join(ts.dir, "book.pdf")
	output, err = execute(t, "session", "save", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote 2 page(s) to "+out)
	assert.Len(t, ts.generator.pages, 2)
}

func TestSessionCmd_EditsPersistWithHistory(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "session", "add", "-s", "book", ts.file(t, "a.png"), ts.file(t, "b.png"), ts.file(t, "c.png"))
	require.NoError(t, err)

	output, err := execute(t, "session", "move", "-s", "book", "3", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Moved page 3 to 1")

	output, err = execute(t, "session", "remove", "-s", "book", "2")
	require.NoError(t, err)
	assert.Contains(t, output, "Removed 1 page(s), 2 left")

	state, err := ts.store.GetByName(context.Background(), "book")
	require.NoError(t, err)
	require.Len(t, state.Pages, 2)
	assert.Equal(t, "c.png", state.Pages[0].Name())
	assert.Equal(t, "b.png", state.Pages[1].Name())

	output, err = execute(t, "session", "undo", "-s", "book")
	require.NoError(t, err)
	assert.Contains(t, output, "Undone, 3 page(s)")

	output, err = execute(t, "session", "redo", "-s", "book")
	require.NoError(t, err)
	assert.Contains(t, output, "Redone, 2 page(s)")
}

func TestSessionCmd_SortAndClear(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "session", "add", ts.file(t, "page10.png"), ts.file(t, "page2.png"))
	require.NoError(t, err)

	output, err := execute(t, "session", "sort", "natural")
	require.NoError(t, err)
	assert.Contains(t, output, "Sorted 2 page(s)")

	state, err := ts.store.GetByName(context.Background(), domain.DefaultSessionName)
	require.NoError(t, err)
	assert.Equal(t, "page2.png", state.Pages[0].Name())

	output, err = execute(t, "session", "clear")
	require.NoError(t, err)
	assert.Contains(t, output, "Session cleared")

	output, err = execute(t, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, output, `Session "default" is empty`)
}

func TestSessionCmd_UndoNothing(t *testing.T) {
	setupTestServices(t)

	output, err := execute(t, "session", "undo")

	require.NoError(t, err)
	assert.Contains(t, output, "Nothing to undo")
}

func TestSessionCmd_InvalidPageNumber(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "session", "remove", "0")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionCmd_MoveOutOfRange(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "session", "add", ts.file(t, "a.png"))
	require.NoError(t, err)

	_, err = execute(t, "session", "move", "1", "5")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionCmd_SaveEmpty(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "session", "save", "-o", filepath.Join(ts.dir, "out.pdf"))

	assert.ErrorIs(t, err, domain.ErrNoPages)
}

func TestSessionCmd_Preview(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "session", "add", ts.file(t, "a.png"))
	require.NoError(t, err)

	output, err := execute(t, "session", "preview")

	require.NoError(t, err)
	assert.Contains(t, output, ".pdf")
}

func TestSessionCmd_ListAllAndDelete(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "session", "add", "-s", "comics", ts.file(t, "a.png"))
	require.NoError(t, err)

	output, err := execute(t, "session", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, output, "comics")
	assert.Contains(t, output, "1 page(s)")

	output, err = execute(t, "session", "delete", "-s", "comics")
	require.NoError(t, err)
	assert.Contains(t, output, `Deleted session "comics"`)

	_, err = ts.store.GetByName(context.Background(), "comics")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCmd_ListAllEmpty(t *testing.T) {
	setupTestServices(t)

	output, err := execute(t, "session", "list", "--all")

	require.NoError(t, err)
	assert.Contains(t, output, "No sessions.")
}

func TestParsePageNumber(t *testing.T) {
	n, err := parsePageNumber("3")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, bad := range []string{"0", "-1", "two", ""} {
		_, err := parsePageNumber(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}
