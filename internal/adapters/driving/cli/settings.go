package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and modify application settings",
	Long: `View and modify zip2pdf settings.

Without a subcommand, displays the current settings. Settings are stored in
config.toml under the zip2pdf home directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its key, for example:

  zip2pdf settings set pdf.page_size Letter
  zip2pdf settings set pdf.orientation L
  zip2pdf settings set import.default_sort asc`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[PDF]")
	cmd.Printf("  Page size: %s\n", settings.PDF.PageSize.Description())
	cmd.Printf("  Orientation: %s\n", settings.PDF.Orientation.Description())
	cmd.Printf("  Margin: %g mm\n", settings.PDF.MarginMM)
	cmd.Printf("  Font: %s %g pt\n", settings.PDF.FontFamily, settings.PDF.FontSize)
	cmd.Printf("  Line height: %g mm\n", settings.PDF.LineHeightMM)
	cmd.Printf("  JPEG quality: %d\n", settings.PDF.JPEGQuality)
	cmd.Printf("  Max image size: %s\n", formatMaxImage(settings.PDF.MaxImagePx))
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Default sort: %s\n", settings.Import.DefaultSort.Description())
	cmd.Printf("  Skip hidden files: %s\n", yesNo(settings.Import.SkipHidden))
	cmd.Println()

	cmd.Printf("Keys: %s\n", strings.Join(settingsService.Keys(), ", "))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown setting %q (valid keys: %s)", args[0], strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults")
	return nil
}

func formatMaxImage(px int) string {
	if px <= 0 {
		return "original"
	}
	return fmt.Sprintf("%d px", px)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
