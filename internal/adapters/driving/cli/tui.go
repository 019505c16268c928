package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// NewInbox creates the watcher for a drop directory.
	NewInbox func(dir string) driven.DropWatcher

	// InboxDir is the drop directory used by --watch.
	InboxDir string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var (
	tuiSession string
	tuiOutput  string
	tuiInbox   string
	tuiWatch   bool
)

// runProgram runs the app until it quits. Replaced in tests.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [inputs...]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive page list editor.

Inputs given on the command line are imported on start. Without --session
the page list lives only as long as the TUI; with --session it is loaded
from and saved back to the named session, undo history included.

With --inbox or --watch, files copied or dragged into the drop directory
are imported as they arrive.

Controls:
  a        - Add files
  K/J      - Move page up/down
  d, x     - Remove page, clear list
  s        - Sort (cycles natural, A-Z, Z-A)
  u/r      - Undo/redo
  p, g     - Preview, save PDF
  m        - PDF merge tool
  ,        - Settings
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiSession, "session", "s", "", "edit a saved session instead of a transient page list")
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "", "output PDF path offered when saving")
	tuiCmd.Flags().StringVar(&tuiInbox, "inbox", "", "import files dropped into this directory")
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "watch the configured inbox directory")
	tuiCmd.MarkFlagsMutuallyExclusive("inbox", "watch")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panicked: %v", r)
		}
	}()

	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	inbox, err := tuiInboxWatcher()
	if err != nil {
		return err
	}

	session, finish, err := tuiSessionFor(cmd)
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Session:    session,
		Merge:      mergeService,
		Settings:   settingsService,
		Classifier: classifier,
		Inbox:      inbox,
		Inputs:     args,
		Output:     tuiOutput,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to create TUI: %w", err), finish())
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	// Log lines would tear the alternate screen; the file sink still records them.
	logger.SetOutput(io.Discard)
	runErr := runProgram(app)
	logger.SetOutput(os.Stderr)

	// Stop the inbox watcher before the staging area goes away.
	cancel()
	if inbox != nil {
		if err := inbox.Close(); err != nil {
			logger.Warn("closing inbox watcher: %v", err)
		}
	}

	if runErr != nil {
		runErr = fmt.Errorf("TUI error: %w", runErr)
	}
	return errors.Join(runErr, finish())
}

// tuiInboxWatcher returns the drop watcher selected by --inbox or --watch.
func tuiInboxWatcher() (driven.DropWatcher, error) {
	dir := tuiInbox
	if tuiWatch && tuiConfig != nil {
		dir = tuiConfig.InboxDir
	}
	if dir == "" {
		if tuiWatch {
			return nil, errors.New("no inbox directory configured")
		}
		return nil, nil
	}
	if tuiConfig == nil || tuiConfig.NewInbox == nil {
		return nil, errors.New("inbox watching not available")
	}
	if tuiWatch {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating inbox dir: %w", err)
		}
	}
	return tuiConfig.NewInbox(dir), nil
}

// tuiSessionFor opens the session the TUI edits. The returned finish func
// saves a named session or discards a transient one.
func tuiSessionFor(cmd *cobra.Command) (driving.SessionService, func() error, error) {
	ctx := cmd.Context()
	if tuiSession == "" {
		session, err := sessionManager.Transient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start session: %w", err)
		}
		return session, session.Close, nil
	}

	session, err := sessionManager.Open(ctx, tuiSession)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session: %w", err)
	}
	finish := func() error {
		if err := sessionManager.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}
	return session, finish, nil
}
