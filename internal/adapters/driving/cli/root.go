// Package cli provides the cobra command tree for zip2pdf.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	sessionManager  driving.SessionManager
	mergeService    driving.MergeService
	settingsService driving.SettingsService
	classifier      driving.Classifier
)

// Services holds the core services the commands drive.
type Services struct {
	Sessions   driving.SessionManager
	Merge      driving.MergeService
	Settings   driving.SettingsService
	Classifier driving.Classifier
}

var rootCmd = &cobra.Command{
	Use:   "zip2pdf",
	Short: "Turn archives, images and text files into a PDF",
	Long: `zip2pdf collects pages from ZIP and 7Z archives, images (JPEG, PNG, WebP)
and plain text files into an ordered page list and renders it as a single PDF.
Existing PDFs can be merged with the merge command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the core services used by every command.
func SetServices(s Services) {
	sessionManager = s.Sessions
	mergeService = s.Merge
	settingsService = s.Settings
	classifier = s.Classifier
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
