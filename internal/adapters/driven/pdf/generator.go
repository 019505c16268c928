package pdf

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.PDFGenerator = (*Generator)(nil)

// Generator builds PDFs from image and text page sources.
type Generator struct{}

// NewGenerator creates a PDF generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes pages to outPath in order. The first unreadable source
// aborts the run with a *domain.GenerationError naming it.
func (g *Generator) Generate(ctx context.Context, pages []domain.PageRef, outPath string, opts domain.PDFSettings) error {
	if len(pages) == 0 {
		return domain.ErrNoPages
	}
	opts = withDefaults(opts)

	pdf := gofpdf.New(opts.Orientation.String(), "mm", opts.PageSize.String(), "")
	pdf.SetMargins(opts.MarginMM, opts.MarginMM, opts.MarginMM)
	pdf.SetAutoPageBreak(true, opts.MarginMM)
	pdf.SetCreator("zip2pdf", true)

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch page.Kind() {
		case domain.PageKindImage:
			err = addImagePage(pdf, fmt.Sprintf("page-%d", i), page.Path, opts)
		case domain.PageKindText:
			err = addTextPage(pdf, page.Path, opts)
		default:
			err = &domain.UnsupportedFileError{Path: page.Path}
		}
		if err == nil && pdf.Err() {
			err = pdf.Error()
		}
		if err != nil {
			return &domain.GenerationError{Path: page.Path, Err: err}
		}
		logger.Debug("Page %d/%d: %s", i+1, len(pages), page.Name())
	}

	if err := writeAtomic(outPath, pdf.Output); err != nil {
		return &domain.GenerationError{Err: err}
	}
	return nil
}

// withDefaults fills zero values with the default layout.
func withDefaults(opts domain.PDFSettings) domain.PDFSettings {
	def := domain.DefaultAppSettings().PDF
	if !opts.PageSize.IsValid() {
		opts.PageSize = def.PageSize
	}
	if !opts.Orientation.IsValid() {
		opts.Orientation = def.Orientation
	}
	if opts.MarginMM < 0 {
		opts.MarginMM = def.MarginMM
	}
	if opts.FontFamily == "" {
		opts.FontFamily = def.FontFamily
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.LineHeightMM <= 0 {
		opts.LineHeightMM = def.LineHeightMM
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	return opts
}

// printableArea returns the page box inside the margins.
func printableArea(pdf *gofpdf.Fpdf) (x, y, w, h float64) {
	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	return left, top, pageW - left - right, pageH - top - bottom
}
