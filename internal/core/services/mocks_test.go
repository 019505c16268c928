package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
)

var (
	_ driven.ArchiveExtractor = (*mockExtractor)(nil)
	_ driven.PDFGenerator     = (*mockGenerator)(nil)
	_ driven.FileTypeDetector = (*mockDetector)(nil)
	_ driven.PDFMerger        = (*mockMerger)(nil)
)

// mockExtractor writes a fixed set of files per archive base name.
type mockExtractor struct {
	contents map[string][]string // archive base name -> relative entry paths
	err      error
	calls    []string
}

func (m *mockExtractor) Extract(_ context.Context, archivePath, destDir string) error {
	m.calls = append(m.calls, archivePath)
	if m.err != nil {
		return &domain.ExtractionError{Path: archivePath, Err: m.err}
	}
	entries, ok := m.contents[filepath.Base(archivePath)]
	if !ok {
		return &domain.ExtractionError{Path: archivePath, Err: errors.New("zip: not a valid zip file")}
	}
	for _, rel := range entries {
		target := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(rel), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockExtractor) Supports(ext string) bool {
	return ext == ".zip" || ext == ".7z"
}

// mockGenerator records calls and writes a placeholder file.
type mockGenerator struct {
	err   error
	pages []domain.PageRef
	out   string
	opts  domain.PDFSettings
}

func (m *mockGenerator) Generate(_ context.Context, pages []domain.PageRef, outPath string, opts domain.PDFSettings) error {
	m.pages = pages
	m.out = outPath
	m.opts = opts
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.3"), 0o644)
}

type mockDetector struct {
	mime     string
	sevenZip bool
	err      error
}

func (m *mockDetector) Detect(_ string) (string, error) {
	return m.mime, m.err
}

func (m *mockDetector) IsSevenZip(_ string) bool {
	return m.sevenZip
}

type mockMerger struct {
	counts map[string]int
	err    error
	calls  [][]string
}

func (m *mockMerger) Merge(_ context.Context, paths []string, outPath string) error {
	m.calls = append(m.calls, paths)
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

// writeFile creates a file with content below dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
