package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
)

func TestNewPathInput(t *testing.T) {
	p := NewPathInput(styles.DefaultStyles(), "Add: ", "paths to import")

	require.NotNil(t, p)
	assert.Equal(t, "Add: ", p.Label())
	assert.Equal(t, "", p.Value())
	assert.False(t, p.Focused())
	assert.Equal(t, 50, p.Width())
}

func TestNewPathInput_NilStyles(t *testing.T) {
	p := NewPathInput(nil, "Save as: ", "")

	require.NotNil(t, p)
	assert.NotNil(t, p.styles)
}

func TestPathInput_Init(t *testing.T) {
	p := NewPathInput(nil, "Add: ", "")

	assert.NotNil(t, p.Init())
}

func TestPathInput_FocusAndBlur(t *testing.T) {
	p := NewPathInput(nil, "Add: ", "")

	p.Focus()
	assert.True(t, p.Focused())

	p.Blur()
	assert.False(t, p.Focused())
}

func TestPathInput_TypingWhenFocused(t *testing.T) {
	p := NewPathInput(nil, "Add: ", "")
	p.Focus()

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.zip")})

	assert.Equal(t, "a.zip", p.Value())
}

func TestPathInput_SetValue(t *testing.T) {
	p := NewPathInput(nil, "Save as: ", "")

	p.SetValue("/tmp/out.pdf")

	assert.Equal(t, "/tmp/out.pdf", p.Value())
}

func TestPathInput_Reset(t *testing.T) {
	p := NewPathInput(nil, "Add: ", "")
	p.Focus()
	p.SetValue("scans.zip")

	p.Reset()

	assert.Equal(t, "", p.Value())
	assert.False(t, p.Focused())
}

func TestPathInput_SetWidth(t *testing.T) {
	p := NewPathInput(nil, "Add: ", "")

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(5)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 20, p.textinput.Width)
}

func TestPathInput_View(t *testing.T) {
	p := NewPathInput(nil, "Save as: ", "")

	assert.Contains(t, p.View(), "Save as:")
}
