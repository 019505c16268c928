package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeSet is the ordered list of PDF paths queued for merging.
// It is independent of any page list and has no history.
type MergeSet struct {
	paths []string
}

// Add appends paths in order.
func (m *MergeSet) Add(paths ...string) {
	m.paths = append(m.paths, paths...)
}

// Remove deletes the entry at index.
func (m *MergeSet) Remove(index int) bool {
	if index < 0 || index >= len(m.paths) {
		return false
	}
	m.paths = slices.Delete(m.paths, index, index+1)
	return true
}

// Move relocates the entry at from to position to.
func (m *MergeSet) Move(from, to int) bool {
	n := len(m.paths)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	p := m.paths[from]
	m.paths = slices.Delete(m.paths, from, from+1)
	m.paths = slices.Insert(m.paths, to, p)
	return true
}

// Clear empties the set.
func (m *MergeSet) Clear() { m.paths = nil }

// Paths returns a copy of the queued paths.
func (m *MergeSet) Paths() []string { return slices.Clone(m.paths) }

// Len returns the number of queued paths.
func (m *MergeSet) Len() int { return len(m.paths) }

// MergeService drives the PDF merge tool.
type MergeService struct {
	merger driven.PDFMerger
	set    MergeSet
}

// NewMergeService creates a merge service over merger.
func NewMergeService(merger driven.PDFMerger) *MergeService {
	return &MergeService{merger: merger}
}

// Add appends PDF paths, made absolute. Nothing is added if any path is
// not a PDF.
func (s *MergeService) Add(paths ...string) error {
	if err := checkPDFs(paths); err != nil {
		return err
	}
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = domain.AbsPath(p)
	}
	s.set.Add(abs...)
	return nil
}

// Remove deletes the entry at index.
func (s *MergeService) Remove(index int) bool { return s.set.Remove(index) }

// Move relocates one entry.
func (s *MergeService) Move(from, to int) bool { return s.set.Move(from, to) }

// Clear empties the queued set.
func (s *MergeService) Clear() { s.set.Clear() }

// Paths returns the queued paths in order.
func (s *MergeService) Paths() []string { return s.set.Paths() }

// Len returns the number of queued paths.
func (s *MergeService) Len() int { return s.set.Len() }

// Summaries returns each queued path with its page count. Unreadable files
// are reported through MergeInput.Err rather than failing the listing.
func (s *MergeService) Summaries(ctx context.Context) []domain.MergeInput {
	paths := s.set.Paths()
	out := make([]domain.MergeInput, 0, len(paths))
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		in := domain.MergeInput{Path: p}
		if s.merger == nil {
			in.Err = domain.ErrMerge
		} else if n, err := s.merger.PageCount(p); err != nil {
			in.Err = err
		} else {
			in.PageCount = n
		}
		out = append(out, in)
	}
	return out
}

// Merge writes the queued PDFs to outPath.
func (s *MergeService) Merge(ctx context.Context, outPath string) error {
	return s.MergeFiles(ctx, s.set.Paths(), outPath)
}

// MergeFiles merges paths into outPath without touching the queued set.
// Fewer than two inputs fail before anything is written.
func (s *MergeService) MergeFiles(ctx context.Context, paths []string, outPath string) error {
	if len(paths) < 2 {
		return &domain.MergeError{Err: domain.ErrTooFewInputs}
	}
	if err := checkPDFs(paths); err != nil {
		return err
	}
	if s.merger == nil {
		return &domain.MergeError{Err: errors.New("no pdf merger configured")}
	}

	logger.Section("Merge")
	logger.Debug("Merging %d file(s) into %s", len(paths), outPath)
	if err := s.merger.Merge(ctx, paths, outPath); err != nil {
		return fmt.Errorf("merge into %s: %w", outPath, err)
	}
	logger.Info("Merged PDF saved to %s", outPath)
	return nil
}

func checkPDFs(paths []string) error {
	for _, p := range paths {
		if !domain.IsPDFFile(p) {
			return &domain.UnsupportedFileError{Path: p}
		}
	}
	return nil
}
