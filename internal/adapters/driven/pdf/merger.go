package pdf

import (
	"context"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Merger implements the interface.
var _ driven.PDFMerger = (*Merger)(nil)

var disableConfigDir sync.Once

// Merger concatenates PDF files with pdfcpu.
type Merger struct {
	conf *model.Configuration
}

// NewMerger creates a PDF merger. pdfcpu's on-disk configuration directory
// is never created.
func NewMerger() *Merger {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Merger{conf: model.NewDefaultConfiguration()}
}

// Merge validates every input and writes their pages, in order, to outPath.
func (m *Merger) Merge(ctx context.Context, paths []string, outPath string) error {
	if len(paths) < 2 {
		return &domain.MergeError{Err: domain.ErrTooFewInputs}
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := api.ValidateFile(p, m.conf); err != nil {
			return &domain.MergeError{Path: p, Err: err}
		}
	}

	err := writeAtomicPath(outPath, func(tmp string) error {
		return api.MergeCreateFile(paths, tmp, false, m.conf)
	})
	if err != nil {
		return &domain.MergeError{Err: err}
	}
	logger.Debug("Merged %d file(s) into %s", len(paths), outPath)
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func (m *Merger) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, &domain.MergeError{Path: path, Err: err}
	}
	return n, nil
}
