package pdf

import (
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// addTextPage flows the text file at path from a new page, breaking onto
// further pages as needed.
func addTextPage(pdf *gofpdf.Fpdf, path string, opts domain.PDFSettings) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pdf.AddPage()
	pdf.SetFont(opts.FontFamily, "", opts.FontSize)
	pdf.MultiCell(0, opts.LineHeightMM, toWindows1252(string(raw)), "", "L", false)
	return nil
}

// toWindows1252 converts UTF-8 text to the single-byte encoding the core
// fonts use. Runes with no mapping become '?'.
func toWindows1252(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n', '\t':
			b.WriteRune(r)
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
