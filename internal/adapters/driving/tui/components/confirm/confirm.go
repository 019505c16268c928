// Package confirm provides the yes/no question box for the TUI.
package confirm

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

// Answer is the result of a key press on an open question.
type Answer int

const (
	// Unanswered means the key did not answer the question.
	Unanswered Answer = iota
	// AnsweredYes means the user accepted.
	AnsweredYes
	// AnsweredNo means the user declined.
	AnsweredNo
)

// Dialog shows one domain.Question at a time.
type Dialog struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	question domain.Question
	open     bool
	width    int
}

// New creates a closed dialog.
func New(s *styles.Styles, km *keymap.KeyMap) *Dialog {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Dialog{styles: s, keymap: km, width: 60}
}

// Ask opens the dialog with q.
func (d *Dialog) Ask(q domain.Question) {
	d.question = q
	d.open = true
}

// Open reports whether a question is showing.
func (d *Dialog) Open() bool {
	return d.open
}

// Question returns the question being asked.
func (d *Dialog) Question() domain.Question {
	return d.question
}

// HandleKey answers the open question when keyStr is a yes or no key.
// The dialog closes once answered.
func (d *Dialog) HandleKey(keyStr string) Answer {
	if !d.open {
		return Unanswered
	}
	switch {
	case keymap.Matches(keyStr, d.keymap.Yes):
		d.open = false
		return AnsweredYes
	case keymap.Matches(keyStr, d.keymap.No):
		d.open = false
		return AnsweredNo
	}
	return Unanswered
}

// SetWidth sets the maximum width of the box.
func (d *Dialog) SetWidth(width int) {
	d.width = width
}

// View renders the question box, or nothing when closed.
func (d *Dialog) View() string {
	if !d.open {
		return ""
	}

	width := d.width - 8
	if width < 20 {
		width = 20
	}
	prompt := lipgloss.NewStyle().Width(width).Render(d.question.Prompt())
	hint := d.styles.Muted.Render("[y] yes   [n] no")

	return d.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, prompt, "", hint))
}
