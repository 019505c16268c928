// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

// Setting keys with a fixed set of values, cycled with enter.
const (
	keyPageSize    = "pdf.page_size"
	keyOrientation = "pdf.orientation"
	keyDefaultSort = "import.default_sort"
	keySkipHidden  = "import.skip_hidden"
)

var labels = map[string]string{
	keyPageSize:          "Page size",
	keyOrientation:       "Orientation",
	"pdf.margin_mm":      "Margin (mm)",
	"pdf.font_family":    "Font",
	"pdf.font_size":      "Font size (pt)",
	"pdf.line_height_mm": "Line height (mm)",
	"pdf.jpeg_quality":   "JPEG quality",
	"pdf.max_image_px":   "Max image size (px, 0 = original)",
	keyDefaultSort:       "Default sort",
	keySkipHidden:        "Skip hidden files",
}

var errNoService = errors.New("settings service not available")

// View lists every setting. Enter cycles a fixed-choice setting or opens
// an editor for a free value.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	keys     []string
	err      error

	selected  int
	editing   bool
	editInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editInput := textinput.New()
	editInput.CharLimit = 64

	var keys []string
	if settingsService != nil {
		keys = settingsService.Keys()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		keys:            keys,
		editInput:       editInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPages}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case "R":
		return v, v.resetDefaults()
	case "enter":
		if v.settings == nil || len(v.keys) == 0 {
			return v, nil
		}
		key := v.keys[v.selected]
		if next, ok := nextValue(v.settings, key); ok {
			return v, v.set(key, next)
		}
		v.editing = true
		v.editInput.SetValue(valueOf(v.settings, key))
		v.editInput.CursorEnd()
		return v, v.editInput.Focus()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEditing()
		return v, nil
	case tea.KeyEnter:
		value := v.editInput.Value()
		v.stopEditing()
		return v, v.set(v.keys[v.selected], value)
	}

	var cmd tea.Cmd
	v.editInput, cmd = v.editInput.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.editInput.SetValue("")
	v.editInput.Blur()
}

func (v *View) set(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: errNoService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) resetDefaults() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		defaults := v.settingsService.GetDefaults()
		return messages.SettingsSaved{Err: v.settingsService.Save(&defaults)}
	}
}

// valueOf returns the stored form of a setting, as accepted by Set.
func valueOf(s *domain.AppSettings, key string) string {
	switch key {
	case keyPageSize:
		return s.PDF.PageSize.String()
	case keyOrientation:
		return s.PDF.Orientation.String()
	case "pdf.margin_mm":
		return strconv.FormatFloat(s.PDF.MarginMM, 'f', -1, 64)
	case "pdf.font_family":
		return s.PDF.FontFamily
	case "pdf.font_size":
		return strconv.FormatFloat(s.PDF.FontSize, 'f', -1, 64)
	case "pdf.line_height_mm":
		return strconv.FormatFloat(s.PDF.LineHeightMM, 'f', -1, 64)
	case "pdf.jpeg_quality":
		return strconv.Itoa(s.PDF.JPEGQuality)
	case "pdf.max_image_px":
		return strconv.Itoa(s.PDF.MaxImagePx)
	case keyDefaultSort:
		return s.Import.DefaultSort.String()
	case keySkipHidden:
		return strconv.FormatBool(s.Import.SkipHidden)
	}
	return ""
}

// displayValue returns the label shown for a setting.
func displayValue(s *domain.AppSettings, key string) string {
	switch key {
	case keyPageSize:
		return s.PDF.PageSize.Description()
	case keyOrientation:
		return s.PDF.Orientation.Description()
	case keyDefaultSort:
		return s.Import.DefaultSort.Description()
	case keySkipHidden:
		if s.Import.SkipHidden {
			return "yes"
		}
		return "no"
	}
	return valueOf(s, key)
}

// nextValue returns the following choice for fixed-choice settings.
func nextValue(s *domain.AppSettings, key string) (string, bool) {
	switch key {
	case keyPageSize:
		sizes := domain.AllPageSizes()
		for i, p := range sizes {
			if p == s.PDF.PageSize {
				return sizes[(i+1)%len(sizes)].String(), true
			}
		}
		return sizes[0].String(), true
	case keyOrientation:
		if s.PDF.Orientation == domain.OrientationPortrait {
			return domain.OrientationLandscape.String(), true
		}
		return domain.OrientationPortrait.String(), true
	case keyDefaultSort:
		return s.Import.DefaultSort.Next().String(), true
	case keySkipHidden:
		return strconv.FormatBool(!s.Import.SkipHidden), true
	}
	return "", false
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, key := range v.keys {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		label := labels[key]
		if label == "" {
			label = key
		}
		line := fmt.Sprintf("%s%-36s %s", indicator, label, displayValue(v.settings, key))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(labels[v.keys[v.selected]] + ":"))
		b.WriteString("\n")
		b.WriteString(v.editInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] change  [R] restore defaults  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to its initial state.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
	v.stopEditing()
}

// Editing reports whether a value editor has focus.
func (v *View) Editing() bool {
	return v.editing
}
