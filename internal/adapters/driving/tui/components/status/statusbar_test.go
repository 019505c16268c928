package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.PageCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_ReadyView(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "quit")
}

func TestStatusBar_PageCount(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetPageCount(12)

	assert.Equal(t, 12, bar.PageCount())
	assert.Contains(t, bar.View(), "12 page(s)")
}

func TestStatusBar_States(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"busy", StateBusy, "Importing", "Importing..."},
		{"busy without message", StateBusy, "", "Working..."},
		{"error", StateError, "disk full", "Error: disk full"},
		{"error without message", StateError, "", "Error"},
		{"done", StateDone, "Wrote 3 page(s)", "Wrote 3 page(s)"},
		{"question", StateQuestion, "", "Waiting for an answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Equal(t, tt.state, bar.State())
			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_QuestionHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetState(StateQuestion)

	view := bar.View()

	assert.Contains(t, view, "yes")
	assert.NotContains(t, view, "quit")
}

func TestStatusBar_SetHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(160)

	bar.SetHints(km.MergeHelp())

	assert.Contains(t, bar.View(), "merge")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetPageCount(4)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 4, bar.PageCount(), "page count survives a clear")
}
