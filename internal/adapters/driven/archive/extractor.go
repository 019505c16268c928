// Package archive unpacks ZIP and 7Z archives into a staging directory.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.ArchiveExtractor = (*Extractor)(nil)

// errUnsafePath is returned for entries that would land outside destDir.
var errUnsafePath = errors.New("entry escapes destination directory")

// entry is one archive member, independent of the container format.
type entry struct {
	name  string
	isDir bool
	mode  fs.FileMode
	open  func() (io.ReadCloser, error)
}

// Extractor unpacks archives, choosing the format by extension.
type Extractor struct{}

// New creates an archive extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether ext (with leading dot, any case) can be extracted.
func (e *Extractor) Supports(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".7z":
		return true
	default:
		return false
	}
}

// Extract unpacks archivePath into destDir, keeping the entry directory
// layout. Entry names are checked before anything is written, so an archive
// with an unsafe entry leaves destDir untouched. Cancellation is checked
// between entries.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	var err error
	switch domain.Ext(archivePath) {
	case ".zip":
		err = extractZip(ctx, archivePath, destDir)
	case ".7z":
		err = extractSevenZip(ctx, archivePath, destDir)
	default:
		err = fmt.Errorf("unsupported archive type %q", filepath.Ext(archivePath))
	}
	if err != nil {
		return &domain.ExtractionError{Path: archivePath, Err: err}
	}
	return nil
}

// writeEntries materialises entries below destDir.
func writeEntries(ctx context.Context, entries []entry, destDir string) error {
	targets := make([]string, len(entries))
	for i, en := range entries {
		target, err := safeJoin(destDir, en.name)
		if err != nil {
			return err
		}
		targets[i] = target
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	written := 0
	for i, en := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case en.isDir:
			if err := os.MkdirAll(targets[i], 0o755); err != nil {
				return err
			}
		case en.mode.IsRegular():
			if err := writeFile(targets[i], en.open); err != nil {
				return fmt.Errorf("%s: %w", en.name, err)
			}
			written++
		default:
			logger.Debug("Skipping non-regular archive entry %s", en.name)
		}
	}
	logger.Debug("Extracted %d file(s) into %s", written, destDir)
	return nil
}

func writeFile(target string, open func() (io.ReadCloser, error)) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// safeJoin resolves an archive entry name below destDir.
func safeJoin(destDir, name string) (string, error) {
	clean := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" {
		return "", fmt.Errorf("%s: %w", name, errUnsafePath)
	}
	target := filepath.Join(destDir, clean)
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", name, errUnsafePath)
	}
	return target, nil
}
