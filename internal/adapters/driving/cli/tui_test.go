package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
)

// stubInbox never delivers drops.
type stubInbox struct {
	dir    string
	closed bool
}

func (s *stubInbox) Watch(context.Context) (<-chan string, error) { return make(chan string), nil }
func (s *stubInbox) Dir() string                                  { return s.dir }
func (s *stubInbox) Close() error {
	s.closed = true
	return nil
}

// stubProgram replaces the bubbletea program for the duration of a test.
func stubProgram(t *testing.T, err error) *[]*tui.App {
	t.Helper()
	var apps []*tui.App
	orig := runProgram
	runProgram = func(app *tui.App) error {
		apps = append(apps, app)
		return err
	}
	t.Cleanup(func() { runProgram = orig })
	return &apps
}

func TestTUICmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})
	require.NoError(t, err)
	assert.Equal(t, tuiCmd, cmd)
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_TransientSessionIsNotSaved(t *testing.T) {
	ts := setupTestServices(t)
	apps := stubProgram(t, nil)

	_, err := execute(t, "tui", ts.file(t, "a.png"))

	require.NoError(t, err)
	require.Len(t, *apps, 1)
	sessions, err := ts.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestTUICmd_NamedSessionIsSaved(t *testing.T) {
	ts := setupTestServices(t)
	stubProgram(t, nil)

	_, err := execute(t, "tui", "--session", "comics")

	require.NoError(t, err)
	_, err = ts.store.GetByName(context.Background(), "comics")
	assert.NoError(t, err)
}

func TestTUICmd_ProgramError(t *testing.T) {
	setupTestServices(t)
	stubProgram(t, errors.New("no tty"))

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICmd_Inbox(t *testing.T) {
	ts := setupTestServices(t)
	stubProgram(t, nil)

	var created *stubInbox
	SetTUIConfig(&TUIConfig{NewInbox: func(dir string) driven.DropWatcher {
		created = &stubInbox{dir: dir}
		return created
	}})
	defer SetTUIConfig(nil)

	_, err := execute(t, "tui", "--inbox", ts.dir)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ts.dir, created.dir)
	assert.True(t, created.closed)
}

func TestTUICmd_WatchUsesConfiguredInbox(t *testing.T) {
	ts := setupTestServices(t)
	stubProgram(t, nil)

	var dirs []string
	SetTUIConfig(&TUIConfig{
		InboxDir: ts.dir,
		NewInbox: func(dir string) driven.DropWatcher {
			dirs = append(dirs, dir)
			return &stubInbox{dir: dir}
		},
	})
	defer SetTUIConfig(nil)

	_, err := execute(t, "tui", "--watch")

	require.NoError(t, err)
	assert.Equal(t, []string{ts.dir}, dirs)
}

func TestTUICmd_WatchWithoutInboxDir(t *testing.T) {
	setupTestServices(t)
	apps := stubProgram(t, nil)
	SetTUIConfig(nil)

	_, err := execute(t, "tui", "--watch")

	assert.EqualError(t, err, "no inbox directory configured")
	assert.Empty(t, *apps)
}

func TestTUICmd_InboxWithoutFactory(t *testing.T) {
	ts := setupTestServices(t)
	stubProgram(t, nil)
	SetTUIConfig(nil)

	_, err := execute(t, "tui", "--inbox", ts.dir)

	assert.EqualError(t, err, "inbox watching not available")
}

func TestTUICmd_NoServices(t *testing.T) {
	setupTestServices(t)
	stubProgram(t, nil)
	SetServices(Services{})

	_, err := execute(t, "tui")

	assert.EqualError(t, err, "session manager not configured")
}
