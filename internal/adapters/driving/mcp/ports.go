package mcp

import (
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sessions starts the transient sessions behind build_pdf and lists
	// saved sessions for resources.
	Sessions driving.SessionManager

	// Merge backs the merge_pdfs tool.
	Merge driving.MergeService

	// Classifier backs the classify_file tool.
	Classifier driving.Classifier

	// Settings supplies the default sort and the settings resource.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Sessions == nil {
		return ErrMissingSessionManager
	}
	// Merge, Classifier and Settings are optional
	return nil
}
