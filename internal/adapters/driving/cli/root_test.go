package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/core/services"
)

// fakeGenerator records the pages of the last Generate call.
type fakeGenerator struct {
	pages []domain.PageRef
	opts  domain.PDFSettings
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, pages []domain.PageRef, outPath string, opts domain.PDFSettings) error {
	g.calls++
	g.pages = pages
	g.opts = opts
	return os.WriteFile(outPath, []byte("%PDF-1.3"), 0o644)
}

// fakeMerger reports three pages per PDF.
type fakeMerger struct {
	calls [][]string
}

func (m *fakeMerger) Merge(_ context.Context, paths []string, outPath string) error {
	m.calls = append(m.calls, paths)
	return os.WriteFile(outPath, []byte("%PDF-1.3"), 0o644)
}

func (m *fakeMerger) PageCount(string) (int, error) { return 3, nil }

type testServices struct {
	store     *memory.SessionStore
	settings  *services.SettingsService
	generator *fakeGenerator
	merger    *fakeMerger
	dir       string
}

// setupTestServices wires real services over in-memory stores and resets
// every flag, since cobra keeps flag values between executions.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		store:     memory.NewSessionStore(),
		settings:  services.NewSettingsService(memory.NewConfigStore()),
		generator: &fakeGenerator{},
		merger:    &fakeMerger{},
		dir:       t.TempDir(),
	}
	deps := services.SessionDeps{Generator: ts.generator, Settings: ts.settings}

	SetServices(Services{
		Sessions:   services.NewSessionManager(ts.store, t.TempDir(), deps),
		Merge:      services.NewMergeService(ts.merger),
		Settings:   ts.settings,
		Classifier: driving.ClassifierFunc(services.Classify),
	})

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }

	resetFlags(rootCmd)
	t.Cleanup(func() {
		stdinIsTerminal = origTerminal
		SetServices(Services{})
		resetFlags(rootCmd)
	})
	return ts
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// file creates an empty file in the services directory.
func (ts *testServices) file(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(ts.dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
