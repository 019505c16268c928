package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	output, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, output, "Page size: A4 (210 x 297 mm)")
	assert.Contains(t, output, "Margin: 10 mm")
	assert.Contains(t, output, "Max image size: original")
	assert.Contains(t, output, "Skip hidden files: yes")
	assert.Contains(t, output, "pdf.page_size")
}

func TestSettingsCmd_Set(t *testing.T) {
	ts := setupTestServices(t)

	output, err := execute(t, "settings", "set", "pdf.orientation", "L")

	require.NoError(t, err)
	assert.Contains(t, output, "pdf.orientation = L")
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.OrientationLandscape, settings.PDF.Orientation)
}

func TestSettingsCmd_SetUnknownKey(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "pdf.colour", "red")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "pdf.colour"`)
}

func TestSettingsCmd_SetInvalidValue(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "pdf.margin_mm", "wide")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Reset(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.settings.Set("pdf.page_size", "A3"))

	output, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, output, "Settings restored to defaults")
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.PageSizeA4, settings.PDF.PageSize)
}

func TestSettingsCmd_NoService(t *testing.T) {
	setupTestServices(t)
	SetServices(Services{})

	_, err := execute(t, "settings", "show")

	assert.EqualError(t, err, "settings service not configured")
}

func TestFormatMaxImage(t *testing.T) {
	assert.Equal(t, "original", formatMaxImage(0))
	assert.Equal(t, "original", formatMaxImage(-5))
	assert.Equal(t, "2000 px", formatMaxImage(2000))
}
