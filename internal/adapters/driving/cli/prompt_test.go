package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

func TestParseYes(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y", true},
		{" yes ", true},
		{"YES\n", true},
		{"n", false},
		{"", false},
		{"yep", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseYes(tt.input))
		})
	}
}

func TestPromptDecider(t *testing.T) {
	out := new(bytes.Buffer)
	d := newPromptDecider(strings.NewReader("y\nno\n"), out)
	q := domain.Question{Kind: domain.QuestionOpenMerge, Path: "/tmp/report.pdf"}

	assert.True(t, d.Decide(q))
	assert.False(t, d.Decide(q))
	// EOF answers no.
	assert.False(t, d.Decide(q))
	assert.Contains(t, out.String(), "'report.pdf' is a PDF. Open the PDF merge tool? [y/N]")
}

func TestDecisionFlags(t *testing.T) {
	orig := stdinIsTerminal
	defer func() { stdinIsTerminal = orig }()
	stdinIsTerminal = func() bool { return false }

	cmd := &cobra.Command{}
	q := domain.Question{Kind: domain.QuestionTreatAsArchive, Path: "scan"}

	f := decisionFlags{yes: true}
	assert.True(t, f.decider(cmd).Decide(q))

	f = decisionFlags{no: true}
	assert.False(t, f.decider(cmd).Decide(q))

	f.reset()
	assert.False(t, f.decider(cmd).Decide(q), "non-terminal stdin answers no")
}

func TestDecisionFlags_PromptsOnTerminal(t *testing.T) {
	orig := stdinIsTerminal
	defer func() { stdinIsTerminal = orig }()
	stdinIsTerminal = func() bool { return true }

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("yes\n"))
	cmd.SetOut(new(bytes.Buffer))

	var f decisionFlags
	assert.True(t, f.decider(cmd).Decide(domain.Question{Kind: domain.QuestionTreatAsArchive, Path: "scan"}))
}

func TestPrintImportResults(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	printImportResults(cmd, []domain.ImportResult{
		{Path: "/in/scans.zip", Outcome: domain.OutcomeExtracted, Added: make([]domain.PageRef, 3)},
		{Path: "/in/cover.png", Outcome: domain.OutcomeAppended},
		{Path: "/in/scan", Outcome: domain.OutcomeSkipped},
	})

	assert.Contains(t, buf.String(), "extracted  scans.zip (3 pages)")
	assert.Contains(t, buf.String(), "added      cover.png")
	assert.Contains(t, buf.String(), "skipped    scan")
}
