package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

var (
	sessionName     string
	sessionListAll  bool
	sessionOutput   string
	sessionDecision decisionFlags
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Edit a saved page list across invocations",
	Long: `Session commands edit a named page list that is saved between runs,
including its undo history. Pages are numbered from 1 as shown by 'list'.

Examples:
  zip2pdf session add scans.zip cover.png
  zip2pdf session move 5 1
  zip2pdf session undo
  zip2pdf session save -o book.pdf`,
}

var sessionAddCmd = &cobra.Command{
	Use:   "add <paths...>",
	Short: "Import files into the session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionAdd,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages of the session",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionRemoveCmd = &cobra.Command{
	Use:   "remove <page...>",
	Short: "Remove pages by number",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSessionRemove,
}

var sessionMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a page to a new position",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionMove,
}

var sessionSortCmd = &cobra.Command{
	Use:   "sort [natural|asc|desc]",
	Short: "Sort pages by file name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionSort,
}

var sessionUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(s driving.SessionService) error {
			if !s.Undo() {
				cmd.Println("Nothing to undo")
				return nil
			}
			cmd.Printf("Undone, %d page(s)\n", s.Len())
			return nil
		})
	},
}

var sessionRedoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(s driving.SessionService) error {
			if !s.Redo() {
				cmd.Println("Nothing to redo")
				return nil
			}
			cmd.Printf("Redone, %d page(s)\n", s.Len())
			return nil
		})
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every page (undoable)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(s driving.SessionService) error {
			s.Clear()
			cmd.Println("Session cleared")
			return nil
		})
	},
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the session pages as a PDF",
	Args:  cobra.NoArgs,
	RunE:  runSessionSave,
}

var sessionPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write a preview PDF and print its path",
	Args:  cobra.NoArgs,
	RunE:  runSessionPreview,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the session and its extracted files",
	Args:  cobra.NoArgs,
	RunE:  runSessionDelete,
}

func init() {
	sessionCmd.PersistentFlags().StringVarP(&sessionName, "session", "s", domain.DefaultSessionName, "session name")
	sessionListCmd.Flags().BoolVarP(&sessionListAll, "all", "a", false, "list saved sessions instead of pages")
	sessionSaveCmd.Flags().StringVarP(&sessionOutput, "output", "o", "", "output PDF path")
	_ = sessionSaveCmd.MarkFlagRequired("output")
	sessionDecision.register(sessionAddCmd)

	sessionCmd.AddCommand(
		sessionAddCmd, sessionListCmd, sessionRemoveCmd, sessionMoveCmd, sessionSortCmd,
		sessionUndoCmd, sessionRedoCmd, sessionClearCmd, sessionSaveCmd, sessionPreviewCmd,
		sessionDeleteCmd,
	)
	rootCmd.AddCommand(sessionCmd)
}

// withSession opens the selected session, runs fn and saves the session
// even when fn fails part way, since imports apply what succeeded.
func withSession(cmd *cobra.Command, fn func(driving.SessionService) error) error {
	session, err := openSession(cmd)
	if err != nil {
		return err
	}

	runErr := fn(session)
	if err := sessionManager.Save(cmd.Context(), session); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to save session: %w", err))
	}
	return runErr
}

// readSession opens the selected session for commands that do not change it.
func readSession(cmd *cobra.Command, fn func(driving.SessionService) error) error {
	session, err := openSession(cmd)
	if err != nil {
		return err
	}
	return fn(session)
}

func openSession(cmd *cobra.Command) (driving.SessionService, error) {
	if sessionManager == nil {
		return nil, errors.New("session manager not configured")
	}
	session, err := sessionManager.Open(cmd.Context(), sessionName)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return session, nil
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s driving.SessionService) error {
		results, err := s.Import(cmd.Context(), args, sessionDecision.decider(cmd))
		printImportResults(cmd, results)
		cmd.Printf("Session %q: %d page(s)\n", s.Name(), s.Len())
		if err != nil {
			return fmt.Errorf("some inputs failed: %w", err)
		}
		return nil
	})
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if sessionListAll {
		return listSessions(cmd)
	}
	return readSession(cmd, func(s driving.SessionService) error {
		pages := s.Pages()
		if len(pages) == 0 {
			cmd.Printf("Session %q is empty\n", s.Name())
			return nil
		}
		cmd.Printf("Session %q: %d page(s)\n\n", s.Name(), len(pages))
		for i, p := range pages {
			cmd.Printf("%4d. %-40s %s\n", i+1, p.Name(), p.Kind())
		}
		return nil
	})
}

func listSessions(cmd *cobra.Command) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	sessions, err := sessionManager.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No sessions.")
		return nil
	}
	for _, s := range sessions {
		cmd.Printf("%-20s %4d page(s)  updated %s\n", s.Name, len(s.Pages), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionRemove(cmd *cobra.Command, args []string) error {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := parsePageNumber(arg)
		if err != nil {
			return err
		}
		indices = append(indices, n)
	}

	return withSession(cmd, func(s driving.SessionService) error {
		removed := s.Remove(indices...)
		cmd.Printf("Removed %d page(s), %d left\n", removed, s.Len())
		return nil
	})
}

func runSessionMove(cmd *cobra.Command, args []string) error {
	from, err := parsePageNumber(args[0])
	if err != nil {
		return err
	}
	to, err := parsePageNumber(args[1])
	if err != nil {
		return err
	}

	return withSession(cmd, func(s driving.SessionService) error {
		if !s.Move(from, to) {
			return fmt.Errorf("cannot move page %s to %s: session has %d page(s): %w",
				args[0], args[1], s.Len(), domain.ErrInvalidInput)
		}
		cmd.Printf("Moved page %d to %d\n", from+1, to+1)
		return nil
	})
}

func runSessionSort(cmd *cobra.Command, args []string) error {
	value := ""
	if len(args) == 1 {
		value = args[0]
	}
	mode, err := resolveSort(value)
	if err != nil {
		return err
	}
	if mode == "" {
		return nil
	}

	return withSession(cmd, func(s driving.SessionService) error {
		if err := s.Sort(mode); err != nil {
			return err
		}
		cmd.Printf("Sorted %d page(s) (%s)\n", s.Len(), mode.Description())
		return nil
	})
}

func runSessionSave(cmd *cobra.Command, _ []string) error {
	return readSession(cmd, func(s driving.SessionService) error {
		if err := s.Generate(cmd.Context(), sessionOutput); err != nil {
			return fmt.Errorf("failed to generate PDF: %w", err)
		}
		cmd.Printf("Wrote %d page(s) to %s\n", s.Len(), sessionOutput)
		return nil
	})
}

func runSessionPreview(cmd *cobra.Command, _ []string) error {
	return readSession(cmd, func(s driving.SessionService) error {
		path, err := s.Preview(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to generate preview: %w", err)
		}
		cmd.Println(path)
		return nil
	})
}

func runSessionDelete(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if err := sessionManager.Delete(cmd.Context(), sessionName); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	cmd.Printf("Deleted session %q\n", sessionName)
	return nil
}

// parsePageNumber converts a 1-based page number to an index.
func parsePageNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, &domain.InvalidValueError{Field: "page number", Value: arg, Err: domain.ErrInvalidInput}
	}
	return n - 1, nil
}
