package driven

import (
	"context"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// PDFGenerator renders page sources into a PDF document.
type PDFGenerator interface {
	// Generate writes one document containing pages in order to outPath.
	// An empty list fails with domain.ErrNoPages. A page that cannot be
	// read fails with *domain.GenerationError and leaves no file at outPath.
	Generate(ctx context.Context, pages []domain.PageRef, outPath string, opts domain.PDFSettings) error
}

// PDFMerger concatenates PDF files.
type PDFMerger interface {
	// Merge writes the pages of every input, in order, to outPath.
	// An unreadable input fails with *domain.MergeError naming it.
	Merge(ctx context.Context, paths []string, outPath string) error

	// PageCount returns the number of pages in the PDF at path.
	PageCount(path string) (int, error)
}
