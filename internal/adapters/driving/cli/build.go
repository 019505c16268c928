package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// sortNone keeps pages in import order.
const sortNone = "none"

var (
	buildOutput   string
	buildSort     string
	buildDecision decisionFlags
)

var buildCmd = &cobra.Command{
	Use:   "build <inputs...>",
	Short: "Build a PDF from archives, images and text files",
	Long: `Collects pages from every input in order and writes them as one PDF.

Inputs may be ZIP or 7Z archives (their images and text files are extracted
and added in natural order), images (.jpg, .jpeg, .png, .webp) or text files
(.txt). Files without an extension can be treated as archives; you are asked
unless --yes or --no is given. PDF inputs are not pages: combine them with
'zip2pdf merge'.

Pages are sorted with the import.default_sort setting unless --sort is given.
Use --sort none to keep import order.

Examples:
  zip2pdf build chapter1.zip chapter2.7z -o book.pdf
  zip2pdf build cover.png notes.txt scans.zip --sort none -o out.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output PDF path")
	buildCmd.Flags().StringVar(&buildSort, "sort", "", "page order: natural, asc, desc or none")
	_ = buildCmd.MarkFlagRequired("output")
	buildDecision.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	mode, err := resolveSort(buildSort)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := sessionManager.Transient(ctx)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to clean up staging area: %v", err)
		}
	}()

	results, importErr := session.Import(ctx, args, buildDecision.decider(cmd))
	printImportResults(cmd, results)

	if session.Len() == 0 {
		if importErr != nil {
			return fmt.Errorf("import failed: %w", importErr)
		}
		return fmt.Errorf("nothing to build: %w", domain.ErrNoPages)
	}

	if mode != "" {
		if err := session.Sort(mode); err != nil {
			return err
		}
	}

	if err := session.Generate(ctx, buildOutput); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	cmd.Printf("Wrote %d page(s) to %s\n", session.Len(), buildOutput)

	if importErr != nil {
		return fmt.Errorf("some inputs failed: %w", importErr)
	}
	return nil
}

// resolveSort maps a --sort value to a mode. An empty value falls back to
// the configured default; "none" returns an empty mode.
func resolveSort(value string) (domain.SortMode, error) {
	switch value {
	case sortNone:
		return "", nil
	case "":
		if settingsService == nil {
			return domain.DefaultAppSettings().Import.DefaultSort, nil
		}
		settings, err := settingsService.Get()
		if err != nil {
			return "", fmt.Errorf("failed to get settings: %w", err)
		}
		return settings.Import.DefaultSort, nil
	}
	return domain.ParseSortMode(value)
}
