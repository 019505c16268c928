// Package tui provides an interactive terminal user interface for zip2pdf.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

// Ports aggregates the services and options the TUI runs on.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the page list being edited.
	Session driving.SessionService

	// Merge drives the PDF merge tool.
	Merge driving.MergeService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Classifier finds the questions an import will ask, so they can be
	// answered before the import runs. Without it every question is
	// answered no.
	Classifier driving.Classifier

	// Inbox watches a drop directory. Files landing there are imported.
	// Optional.
	Inbox driven.DropWatcher

	// Inputs are imported when the TUI starts.
	Inputs []string

	// Output is the path offered when saving the PDF.
	Output string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Merge == nil {
		return ErrMissingMergeService
	}
	return nil
}
