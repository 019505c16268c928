package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge <pdfs...>",
	Short: "Merge PDF files into one",
	Long: `Concatenates two or more PDF files, in the order given, into one PDF.
Every input is validated first; nothing is written if any of them is broken.

Example:
  zip2pdf merge part1.pdf part2.pdf -o whole.pdf`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output PDF path")
	_ = mergeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	if err := mergeService.MergeFiles(cmd.Context(), args, mergeOutput); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	cmd.Printf("Merged %d file(s) into %s\n", len(args), mergeOutput)
	return nil
}
