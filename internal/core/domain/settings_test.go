package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, PageSizeA4, s.PDF.PageSize)
	assert.Equal(t, OrientationPortrait, s.PDF.Orientation)
	assert.Equal(t, 10.0, s.PDF.MarginMM)
	assert.Equal(t, "Arial", s.PDF.FontFamily)
	assert.Equal(t, 12.0, s.PDF.FontSize)
	assert.Equal(t, 10.0, s.PDF.LineHeightMM)
	assert.Equal(t, SortNatural, s.Import.DefaultSort)
	assert.True(t, s.Import.SkipHidden)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
		field  string
	}{
		{"bad page size", func(s *AppSettings) { s.PDF.PageSize = "B5" }, "pdf.page_size"},
		{"bad orientation", func(s *AppSettings) { s.PDF.Orientation = "X" }, "pdf.orientation"},
		{"negative margin", func(s *AppSettings) { s.PDF.MarginMM = -1 }, "pdf.margin_mm"},
		{"huge margin", func(s *AppSettings) { s.PDF.MarginMM = 80 }, "pdf.margin_mm"},
		{"empty font", func(s *AppSettings) { s.PDF.FontFamily = "" }, "pdf.font_family"},
		{"zero font size", func(s *AppSettings) { s.PDF.FontSize = 0 }, "pdf.font_size"},
		{"zero line height", func(s *AppSettings) { s.PDF.LineHeightMM = 0 }, "pdf.line_height_mm"},
		{"jpeg quality too high", func(s *AppSettings) { s.PDF.JPEGQuality = 101 }, "pdf.jpeg_quality"},
		{"negative max image", func(s *AppSettings) { s.PDF.MaxImagePx = -5 }, "pdf.max_image_px"},
		{"bad sort", func(s *AppSettings) { s.Import.DefaultSort = "random" }, "import.default_sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)

			err := s.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestAppSettings_Validate_JoinsErrors(t *testing.T) {
	s := DefaultAppSettings()
	s.PDF.PageSize = "nope"
	s.PDF.FontSize = -1

	err := s.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf.page_size")
	assert.Contains(t, err.Error(), "pdf.font_size")
}

func TestParsePageSize(t *testing.T) {
	p, err := ParsePageSize("letter")
	require.NoError(t, err)
	assert.Equal(t, PageSizeLetter, p)

	_, err = ParsePageSize("B5")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("Landscape")
	require.NoError(t, err)
	assert.Equal(t, OrientationLandscape, o)

	o, err = ParseOrientation("p")
	require.NoError(t, err)
	assert.Equal(t, OrientationPortrait, o)

	_, err = ParseOrientation("sideways")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPageSize_Description(t *testing.T) {
	for _, p := range AllPageSizes() {
		assert.NotEqual(t, "Unknown", p.Description())
	}
	assert.Equal(t, "Unknown", PageSize("B5").Description())
	assert.Equal(t, "Landscape", OrientationLandscape.Description())
}
