package domain

import (
	"errors"
	"strconv"
	"strings"
)

const unknownDescription = "Unknown"

// PageSize is a named paper size understood by the PDF generator.
type PageSize string

// Available page sizes.
const (
	PageSizeA3     PageSize = "A3"
	PageSizeA4     PageSize = "A4"
	PageSizeA5     PageSize = "A5"
	PageSizeLetter PageSize = "Letter"
	PageSizeLegal  PageSize = "Legal"
)

// AllPageSizes returns all supported page sizes.
func AllPageSizes() []PageSize {
	return []PageSize{PageSizeA3, PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal}
}

// IsValid returns true if the page size is recognised.
func (p PageSize) IsValid() bool {
	switch p {
	case PageSizeA3, PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PageSize) String() string {
	return string(p)
}

// Description returns a human-readable description of the page size.
func (p PageSize) Description() string {
	switch p {
	case PageSizeA3:
		return "A3 (297 x 420 mm)"
	case PageSizeA4:
		return "A4 (210 x 297 mm)"
	case PageSizeA5:
		return "A5 (148 x 210 mm)"
	case PageSizeLetter:
		return "Letter (8.5 x 11 in)"
	case PageSizeLegal:
		return "Legal (8.5 x 14 in)"
	default:
		return unknownDescription
	}
}

// ParsePageSize matches a page size name case-insensitively.
func ParsePageSize(s string) (PageSize, error) {
	for _, p := range AllPageSizes() {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", &InvalidValueError{Field: "page size", Value: s, Err: ErrInvalidInput}
}

// Orientation is the page orientation.
type Orientation string

// Available orientations.
const (
	OrientationPortrait  Orientation = "P"
	OrientationLandscape Orientation = "L"
)

// IsValid returns true if the orientation is recognised.
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// String returns the string representation.
func (o Orientation) String() string {
	return string(o)
}

// Description returns a human-readable description of the orientation.
func (o Orientation) Description() string {
	switch o {
	case OrientationPortrait:
		return "Portrait"
	case OrientationLandscape:
		return "Landscape"
	default:
		return unknownDescription
	}
}

// ParseOrientation accepts "P", "L", "portrait" or "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "portrait":
		return OrientationPortrait, nil
	case "l", "landscape":
		return OrientationLandscape, nil
	}
	return "", &InvalidValueError{Field: "orientation", Value: s, Err: ErrInvalidInput}
}

// PDFSettings controls how pages are laid out in the generated document.
type PDFSettings struct {
	// PageSize is the paper size.
	PageSize PageSize

	// Orientation is portrait or landscape.
	Orientation Orientation

	// MarginMM is the margin on every side, in millimetres.
	MarginMM float64

	// FontFamily is the core font used for text pages.
	FontFamily string

	// FontSize is the text size in points.
	FontSize float64

	// LineHeightMM is the height of one text line, in millimetres.
	LineHeightMM float64

	// JPEGQuality is used when images are re-encoded for embedding (1-100).
	JPEGQuality int

	// MaxImagePx caps the long edge of embedded images; 0 keeps the original size.
	MaxImagePx int
}

// ImportSettings controls how inputs become pages.
type ImportSettings struct {
	// DefaultSort is applied by one-shot builds when no sort is requested.
	DefaultSort SortMode

	// SkipHidden drops dot-files and __MACOSX entries found in archives.
	SkipHidden bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// PDF holds document layout settings.
	PDF PDFSettings

	// Import holds import behaviour settings.
	Import ImportSettings
}

// DefaultAppSettings returns settings matching the classic FPDF layout:
// A4 portrait, 10 mm margins, Arial 12 pt with 10 mm lines.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		PDF: PDFSettings{
			PageSize:     PageSizeA4,
			Orientation:  OrientationPortrait,
			MarginMM:     10,
			FontFamily:   "Arial",
			FontSize:     12,
			LineHeightMM: 10,
			JPEGQuality:  90,
			MaxImagePx:   0,
		},
		Import: ImportSettings{
			DefaultSort: SortNatural,
			SkipHidden:  true,
		},
	}
}

// Validate checks every setting and joins all problems found.
func (s AppSettings) Validate() error {
	var errs []error
	if !s.PDF.PageSize.IsValid() {
		errs = append(errs, &InvalidValueError{Field: "pdf.page_size", Value: string(s.PDF.PageSize), Err: ErrInvalidInput})
	}
	if !s.PDF.Orientation.IsValid() {
		errs = append(errs, &InvalidValueError{Field: "pdf.orientation", Value: string(s.PDF.Orientation), Err: ErrInvalidInput})
	}
	if s.PDF.MarginMM < 0 || s.PDF.MarginMM > 50 {
		errs = append(errs, &InvalidValueError{Field: "pdf.margin_mm", Value: formatFloat(s.PDF.MarginMM), Err: ErrInvalidInput})
	}
	if s.PDF.FontFamily == "" {
		errs = append(errs, &InvalidValueError{Field: "pdf.font_family", Value: "", Err: ErrInvalidInput})
	}
	if s.PDF.FontSize <= 0 {
		errs = append(errs, &InvalidValueError{Field: "pdf.font_size", Value: formatFloat(s.PDF.FontSize), Err: ErrInvalidInput})
	}
	if s.PDF.LineHeightMM <= 0 {
		errs = append(errs, &InvalidValueError{Field: "pdf.line_height_mm", Value: formatFloat(s.PDF.LineHeightMM), Err: ErrInvalidInput})
	}
	if s.PDF.JPEGQuality < 1 || s.PDF.JPEGQuality > 100 {
		errs = append(errs, &InvalidValueError{Field: "pdf.jpeg_quality", Value: strconv.Itoa(s.PDF.JPEGQuality), Err: ErrInvalidInput})
	}
	if s.PDF.MaxImagePx < 0 {
		errs = append(errs, &InvalidValueError{Field: "pdf.max_image_px", Value: strconv.Itoa(s.PDF.MaxImagePx), Err: ErrInvalidInput})
	}
	if !s.Import.DefaultSort.IsValid() {
		errs = append(errs, &InvalidValueError{Field: "import.default_sort", Value: string(s.Import.DefaultSort), Err: ErrInvalidSortMode})
	}
	return errors.Join(errs...)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
