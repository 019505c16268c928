package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/core/services"
)

var (
	_ driven.PDFGenerator = (*mockGenerator)(nil)
	_ driven.PDFMerger    = (*mockMerger)(nil)
)

// mockGenerator records the pages it was asked to render.
type mockGenerator struct {
	pages []domain.PageRef
	err   error
}

func (m *mockGenerator) Generate(_ context.Context, pages []domain.PageRef, outPath string, _ domain.PDFSettings) error {
	m.pages = pages
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.3"), 0o644)
}

// mockMerger reports page counts by base name.
type mockMerger struct {
	counts map[string]int
	merged []string
	err    error
}

func (m *mockMerger) Merge(_ context.Context, paths []string, outPath string) error {
	m.merged = paths
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.3"), 0o644)
}

func (m *mockMerger) PageCount(path string) (int, error) {
	n, ok := m.counts[filepath.Base(path)]
	if !ok {
		return 0, errors.New("not a pdf")
	}
	return n, nil
}

// testEnv wires real core services over mock PDF collaborators.
type testEnv struct {
	ports     *Ports
	generator *mockGenerator
	merger    *mockMerger
	store     *memory.SessionStore
	config    *memory.ConfigStore
	dir       string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		generator: &mockGenerator{},
		merger:    &mockMerger{counts: map[string]int{}},
		store:     memory.NewSessionStore(),
		config:    memory.NewConfigStore(),
		dir:       t.TempDir(),
	}
	settings := services.NewSettingsService(env.config)
	deps := services.SessionDeps{Generator: env.generator, Settings: settings}
	env.ports = &Ports{
		Sessions:   services.NewSessionManager(env.store, filepath.Join(env.dir, "staging"), deps),
		Merge:      services.NewMergeService(env.merger),
		Classifier: driving.ClassifierFunc(services.Classify),
		Settings:   settings,
	}
	return env
}

func (e *testEnv) server(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(e.ports)
	require.NoError(t, err)
	return server
}

// file creates a file in the env directory and returns its path.
func (e *testEnv) file(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	return path
}
