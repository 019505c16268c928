package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
)

func sampleItems() []Item {
	return []Item{
		{Title: "page01.png", Detail: "chapter1.zip"},
		{Title: "page02.png", Detail: "chapter1.zip"},
		{Title: "notes.txt"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew(t *testing.T) {
	l := New(styles.DefaultStyles(), "No pages")

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Selected())
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Init())
}

func TestNew_NilStyles(t *testing.T) {
	l := New(nil, "")

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
}

func TestList_EmptyView(t *testing.T) {
	l := New(nil, "No pages yet")

	assert.Contains(t, l.View(), "No pages yet")
}

func TestList_SetItems(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems())

	assert.Equal(t, 3, l.Count())
	assert.False(t, l.IsEmpty())
	assert.Equal(t, sampleItems(), l.Items())
}

func TestList_SetItemsClampsSelection(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems())
	l.SetSelected(2)

	l.SetItems(sampleItems()[:1])

	assert.Equal(t, 0, l.Selected())
}

func TestList_SetSelected(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems())

	l.SetSelected(1)
	assert.Equal(t, 1, l.Selected())

	l.SetSelected(10)
	assert.Equal(t, 2, l.Selected())

	l.SetSelected(-4)
	assert.Equal(t, 0, l.Selected())
}

func TestList_Navigation(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems())

	l.Update(keyMsg("down"))
	assert.Equal(t, 1, l.Selected())

	l.Update(keyMsg("j"))
	l.Update(keyMsg("j"))
	assert.Equal(t, 2, l.Selected(), "stops at the last item")

	l.Update(keyMsg("k"))
	assert.Equal(t, 1, l.Selected())

	l.Update(keyMsg("up"))
	l.Update(keyMsg("up"))
	assert.Equal(t, 0, l.Selected(), "stops at the first item")

	l.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, l.Selected())
}

func TestList_ViewNumbersItems(t *testing.T) {
	l := New(nil, "")
	l.SetItems(sampleItems())

	view := l.View()

	assert.Contains(t, view, "1. ")
	assert.Contains(t, view, "3. ")
	assert.Contains(t, view, "page01.png")
	assert.Contains(t, view, "chapter1.zip")
	assert.Contains(t, view, "> ")
}

func TestList_ViewScrollsToSelection(t *testing.T) {
	l := New(nil, "")
	l.SetDimensions(80, 2)
	l.SetItems(sampleItems())
	l.SetSelected(2)

	view := l.View()

	assert.NotContains(t, view, "page01.png")
	assert.Contains(t, view, "page02.png")
	assert.Contains(t, view, "notes.txt")
	assert.Len(t, strings.Split(view, "\n"), 2)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a-very-...", truncate("a-very-long-name", 10))
}
