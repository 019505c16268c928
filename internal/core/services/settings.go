package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPageSize    = "pdf.page_size"
	keyOrientation = "pdf.orientation"
	keyMargin      = "pdf.margin_mm"
	keyFontFamily  = "pdf.font_family"
	keyFontSize    = "pdf.font_size"
	keyLineHeight  = "pdf.line_height_mm"
	keyJPEGQuality = "pdf.jpeg_quality"
	keyMaxImagePx  = "pdf.max_image_px"
	keyDefaultSort = "import.default_sort"
	keySkipHidden  = "import.skip_hidden"
)

// settingKeys lists every settable key in display order.
var settingKeys = []string{
	keyPageSize, keyOrientation, keyMargin, keyFontFamily, keyFontSize,
	keyLineHeight, keyJPEGQuality, keyMaxImagePx, keyDefaultSort, keySkipHidden,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid stored
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		PDF: domain.PDFSettings{
			PageSize:     s.getPageSize(defaults.PDF.PageSize),
			Orientation:  s.getOrientation(defaults.PDF.Orientation),
			MarginMM:     s.getFloat(keyMargin, defaults.PDF.MarginMM),
			FontFamily:   s.getString(keyFontFamily, defaults.PDF.FontFamily),
			FontSize:     s.getFloat(keyFontSize, defaults.PDF.FontSize),
			LineHeightMM: s.getFloat(keyLineHeight, defaults.PDF.LineHeightMM),
			JPEGQuality:  s.getInt(keyJPEGQuality, defaults.PDF.JPEGQuality),
			MaxImagePx:   s.getInt(keyMaxImagePx, defaults.PDF.MaxImagePx),
		},
		Import: domain.ImportSettings{
			DefaultSort: s.getSortMode(defaults.Import.DefaultSort),
			SkipHidden:  s.getBool(keySkipHidden, defaults.Import.SkipHidden),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyPageSize, settings.PDF.PageSize.String()},
		{keyOrientation, settings.PDF.Orientation.String()},
		{keyMargin, settings.PDF.MarginMM},
		{keyFontFamily, settings.PDF.FontFamily},
		{keyFontSize, settings.PDF.FontSize},
		{keyLineHeight, settings.PDF.LineHeightMM},
		{keyJPEGQuality, settings.PDF.JPEGQuality},
		{keyMaxImagePx, settings.PDF.MaxImagePx},
		{keyDefaultSort, settings.Import.DefaultSort.String()},
		{keySkipHidden, settings.Import.SkipHidden},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key and saves the updated settings.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	invalid := func(err error) error {
		return &domain.InvalidValueError{Field: key, Value: value, Err: err}
	}

	switch key {
	case keyPageSize:
		p, err := domain.ParsePageSize(value)
		if err != nil {
			return err
		}
		settings.PDF.PageSize = p
	case keyOrientation:
		o, err := domain.ParseOrientation(value)
		if err != nil {
			return err
		}
		settings.PDF.Orientation = o
	case keyMargin, keyFontSize, keyLineHeight:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(domain.ErrInvalidInput)
		}
		switch key {
		case keyMargin:
			settings.PDF.MarginMM = f
		case keyFontSize:
			settings.PDF.FontSize = f
		default:
			settings.PDF.LineHeightMM = f
		}
	case keyFontFamily:
		settings.PDF.FontFamily = value
	case keyJPEGQuality, keyMaxImagePx:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(domain.ErrInvalidInput)
		}
		if key == keyJPEGQuality {
			settings.PDF.JPEGQuality = n
		} else {
			settings.PDF.MaxImagePx = n
		}
	case keyDefaultSort:
		m, err := domain.ParseSortMode(value)
		if err != nil {
			return err
		}
		settings.Import.DefaultSort = m
	case keySkipHidden:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(domain.ErrInvalidInput)
		}
		settings.Import.SkipHidden = b
	default:
		return &domain.InvalidValueError{Field: "setting", Value: key, Err: domain.ErrNotFound}
	}

	return s.Save(settings)
}

// Keys returns every settable config key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPageSize(defaultVal domain.PageSize) domain.PageSize {
	p, err := domain.ParsePageSize(s.configStore.GetString(keyPageSize))
	if err != nil {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getOrientation(defaultVal domain.Orientation) domain.Orientation {
	o, err := domain.ParseOrientation(s.configStore.GetString(keyOrientation))
	if err != nil {
		return defaultVal
	}
	return o
}

func (s *SettingsService) getSortMode(defaultVal domain.SortMode) domain.SortMode {
	m, err := domain.ParseSortMode(s.configStore.GetString(keyDefaultSort))
	if err != nil {
		return defaultVal
	}
	return m
}
