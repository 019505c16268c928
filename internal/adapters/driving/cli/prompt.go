package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// stdinIsTerminal reports whether questions can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// decisionFlags holds the --yes/--no answers of a command that imports files.
type decisionFlags struct {
	yes bool
	no  bool
}

func (f *decisionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "answer yes to every import question")
	cmd.Flags().BoolVar(&f.no, "no", false, "answer no to every import question")
	cmd.MarkFlagsMutuallyExclusive("yes", "no")
}

func (f *decisionFlags) reset() {
	f.yes, f.no = false, false
}

// decider returns the Decider for this invocation. Without --yes or --no
// the user is prompted when stdin is a terminal; otherwise every question
// is answered no.
func (f *decisionFlags) decider(cmd *cobra.Command) driving.Decider {
	switch {
	case f.yes:
		return driving.Always(true)
	case f.no:
		return driving.Always(false)
	case !stdinIsTerminal():
		return driving.DeciderFunc(func(q domain.Question) bool {
			logger.Warn("not a terminal, answering no: %s", q.Prompt())
			return false
		})
	}
	return newPromptDecider(cmd.InOrStdin(), cmd.OutOrStdout())
}

// promptDecider asks each question on out and reads y/n from in.
type promptDecider struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPromptDecider(in io.Reader, out io.Writer) *promptDecider {
	return &promptDecider{reader: bufio.NewReader(in), out: out}
}

// Decide prompts once. Anything but y/yes, including EOF, is no.
func (p *promptDecider) Decide(q domain.Question) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", q.Prompt())
	line, _ := p.reader.ReadString('\n')
	return parseYes(line)
}

func parseYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// printImportResults writes one line per imported path.
func printImportResults(cmd *cobra.Command, results []domain.ImportResult) {
	for _, r := range results {
		name := displayName(r.Path)
		switch r.Outcome {
		case domain.OutcomeExtracted:
			cmd.Printf("  extracted  %s (%d pages)\n", name, len(r.Added))
		case domain.OutcomeAppended:
			cmd.Printf("  added      %s\n", name)
		case domain.OutcomeRouteToMerge:
			cmd.Printf("  pdf        %s (use 'zip2pdf merge' to combine PDFs)\n", name)
		case domain.OutcomeSkipped:
			cmd.Printf("  skipped    %s\n", name)
		case domain.OutcomeFailed:
			cmd.Printf("  failed     %s: %v\n", name, r.Err)
		}
	}
}

func displayName(path string) string {
	return domain.NewPageRef(path).Name()
}
