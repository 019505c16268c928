// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPages is the page list editor.
	ViewPages ViewType = iota
	// ViewMerge is the PDF merge tool.
	ViewMerge
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPages:
		return "pages"
	case ViewMerge:
		return "merge"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Notice carries a short status line for the user.
type Notice struct {
	Text string
}

// Quit signals the application should exit.
type Quit struct{}

// ImportRequested asks for paths to be imported into the session.
type ImportRequested struct {
	Paths []string
}

// ImportCompleted carries the outcome of one import.
type ImportCompleted struct {
	Results []domain.ImportResult
	Err     error
}

// GenerateRequested asks for the page list to be written to Path.
type GenerateRequested struct {
	Path string
}

// GenerateCompleted signals PDF generation finished.
type GenerateCompleted struct {
	Path string
	Err  error
}

// PreviewRequested asks for a preview PDF.
type PreviewRequested struct{}

// PreviewCompleted signals a preview PDF was written.
type PreviewCompleted struct {
	Path string
	Err  error
}

// MergeAddRequested asks for PDFs to be queued in the merge tool.
type MergeAddRequested struct {
	Paths []string
}

// MergeListChanged signals the queued PDFs changed and need recounting.
type MergeListChanged struct{}

// MergeSummariesLoaded carries the queued PDFs with their page counts.
type MergeSummariesLoaded struct {
	Inputs []domain.MergeInput
}

// MergeRequested asks for the queued PDFs to be merged into Path.
type MergeRequested struct {
	Path string
}

// MergeCompleted signals a merge finished.
type MergeCompleted struct {
	Path string
	Err  error
}

// InboxStarted carries the drop channel of the inbox watcher.
type InboxStarted struct {
	Dir   string
	Drops <-chan string
	Err   error
}

// FileDropped signals a file arrived in the inbox.
type FileDropped struct {
	Path string
}

// InboxClosed signals the inbox watcher stopped.
type InboxClosed struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
