// Package merge provides the PDF merge tool view.
package merge

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/views"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
)

// DefaultOutput is offered when saving a merge.
const DefaultOutput = "merged.pdf"

// View edits the ordered set of PDFs to merge. Page counts are loaded
// in the background and arrive as messages.MergeSummariesLoaded.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.MergeService

	list      *list.List
	addInput  *input.PathInput
	saveInput *input.PathInput
	prompting *input.PathInput
	inputs    []domain.MergeInput
	output    string

	width  int
	height int
}

// NewView creates the merge view over service.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.MergeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		service:   service,
		list:      list.New(s, "No PDFs queued. Press a to add at least two."),
		addInput:  input.NewPathInput(s, "Add PDFs: ", "paths, quoted if they contain spaces"),
		saveInput: input.NewPathInput(s, "Save as: ", DefaultOutput),
		output:    DefaultOutput,
		width:     80,
		height:    24,
	}
}

// Init asks for the queued PDFs to be counted.
func (v *View) Init() tea.Cmd {
	return changed()
}

// Update handles messages for the merge view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case messages.MergeSummariesLoaded:
		v.SetInputs(msg.Inputs)
		return v, nil
	case tea.KeyMsg:
		if v.prompting != nil {
			return v.handlePromptKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	selected := v.list.Selected()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, send(messages.ViewChanged{View: messages.ViewPages})
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, send(messages.Quit{})
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, send(messages.ViewChanged{View: messages.ViewHelp})
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, v.openPrompt(v.addInput, "")
	case keymap.Matches(keyStr, v.keymap.Merge):
		if v.service.Len() < 2 {
			return v, send(messages.ErrorOccurred{Err: domain.ErrTooFewInputs})
		}
		return v, v.openPrompt(v.saveInput, v.output)
	case keymap.Matches(keyStr, v.keymap.Remove):
		if v.service.Remove(selected) {
			v.removeInput(selected)
			return v, changed()
		}
	case keymap.Matches(keyStr, v.keymap.MoveUp):
		if v.service.Move(selected, selected-1) {
			v.moveInput(selected, selected-1)
			return v, changed()
		}
	case keymap.Matches(keyStr, v.keymap.MoveDown):
		if v.service.Move(selected, selected+1) {
			v.moveInput(selected, selected+1)
			return v, changed()
		}
	case keymap.Matches(keyStr, v.keymap.Clear):
		v.service.Clear()
		v.SetInputs(nil)
		return v, nil
	default:
		v.list.Update(msg)
	}
	return v, nil
}

func (v *View) openPrompt(field *input.PathInput, value string) tea.Cmd {
	v.prompting = field
	field.SetValue(value)
	return field.Focus()
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	field := v.prompting

	switch msg.Type {
	case tea.KeyEsc:
		v.closePrompt()
		return v, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(field.Value())
		v.closePrompt()
		if value == "" {
			return v, nil
		}
		if field == v.saveInput {
			v.output = value
			return v, send(messages.MergeRequested{Path: value})
		}
		paths, err := views.SplitPaths(value)
		if err != nil {
			return v, send(messages.ErrorOccurred{Err: fmt.Errorf("reading paths: %w", err)})
		}
		if len(paths) == 0 {
			return v, nil
		}
		return v, send(messages.MergeAddRequested{Paths: paths})
	}

	var cmd tea.Cmd
	_, cmd = field.Update(msg)
	return v, cmd
}

func (v *View) closePrompt() {
	v.prompting = nil
	v.addInput.Reset()
	v.saveInput.Reset()
}

// Optimistic local edits keep the list responsive until counts reload.

func (v *View) removeInput(index int) {
	if index >= len(v.inputs) {
		return
	}
	inputs := append([]domain.MergeInput(nil), v.inputs[:index]...)
	v.SetInputs(append(inputs, v.inputs[index+1:]...))
}

func (v *View) moveInput(from, to int) {
	v.list.SetSelected(to)
	if from >= len(v.inputs) || to >= len(v.inputs) {
		return
	}
	inputs := append([]domain.MergeInput(nil), v.inputs...)
	inputs[from], inputs[to] = inputs[to], inputs[from]
	v.SetInputs(inputs)
}

// SetInputs replaces the displayed PDFs.
func (v *View) SetInputs(inputs []domain.MergeInput) {
	v.inputs = inputs
	items := make([]list.Item, len(inputs))
	for i, in := range inputs {
		detail := fmt.Sprintf("%d page(s)", in.PageCount)
		if in.Err != nil {
			detail = v.styles.Error.Render("unreadable: " + in.Err.Error())
		}
		items[i] = list.Item{Title: in.Name(), Detail: detail}
	}
	v.list.SetItems(items)
}

// Inputs returns the displayed PDFs.
func (v *View) Inputs() []domain.MergeInput {
	return v.inputs
}

// View renders the merge view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Merge PDFs"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d file(s) · %d page(s)",
		len(v.inputs), domain.TotalPages(v.inputs))))
	b.WriteString("\n\n")

	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.prompting != nil {
		b.WriteString("\n")
		b.WriteString(v.prompting.View())
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	rows := height - 6
	if rows < 1 {
		rows = 1
	}
	v.list.SetDimensions(width, rows)
	v.addInput.SetWidth(width)
	v.saveInput.SetWidth(width)
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Prompting reports whether a path prompt has focus.
func (v *View) Prompting() bool {
	return v.prompting != nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func changed() tea.Cmd {
	return send(messages.MergeListChanged{})
}
