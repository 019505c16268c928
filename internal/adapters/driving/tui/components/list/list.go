// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
)

// Item is one row of the list.
type Item struct {
	// Title is the main label, typically a file name.
	Title string

	// Badge is a short pre-rendered tag shown before the title.
	Badge string

	// Detail is shown muted after the title.
	Detail string
}

// List displays numbered items with a movable selection.
type List struct {
	items    []Item
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a list that shows empty when it has no items.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home":
			l.selected = 0
		case "end":
			l.SetSelected(len(l.items) - 1)
		}
	}
	return l, nil
}

// View renders the visible window of the list around the selection.
func (l *List) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	numWidth := len(fmt.Sprint(len(l.items)))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, numWidth))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderItem(index, numWidth int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxTitle := l.width - numWidth - 12 - len(item.Detail)
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(item.Title, maxTitle)

	prefix := fmt.Sprintf("%s%*d. ", indicator, numWidth, index+1)
	line := prefix
	if item.Badge != "" {
		line += item.Badge + " "
	}

	if index == l.selected {
		line += l.styles.Selected.Render(title)
	} else {
		line += l.styles.Normal.Render(title)
	}
	if item.Detail != "" {
		line += "  " + l.styles.Muted.Render(item.Detail)
	}
	return line
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetItems replaces the items and keeps the selection in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.clamp()
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index, clamped to the list bounds.
func (l *List) SetSelected(index int) {
	l.selected = index
	l.clamp()
}

func (l *List) clamp() {
	if l.selected >= len(l.items) {
		l.selected = len(l.items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the width and the number of visible rows.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
