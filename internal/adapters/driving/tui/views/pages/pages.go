// Package pages provides the page list editor, the main view of the TUI.
package pages

import (
	"fmt"
	"path/filepath"
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

// DefaultOutput is offered when saving and no output path was given.
const DefaultOutput = "output.pdf"

type prompt int

const (
	promptNone prompt = iota
	promptAdd
	promptSave
)

// View edits the session page list.
//
// Edits run synchronously on the UI loop. Rendering only reads the snapshot
// taken by Sync, so the session may be busy in a background import while
// the view is drawn.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.SessionService

	list       *list.List
	addInput   *input.PathInput
	saveInput  *input.PathInput
	prompt     prompt
	output     string
	sortMode   domain.SortMode
	pageCount  int
	canUndo    bool
	canRedo    bool
	stagingDir string

	width  int
	height int
}

// NewView creates the page list view over session.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService, output string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if output == "" {
		output = DefaultOutput
	}

	v := &View{
		styles:    s,
		keymap:    km,
		session:   session,
		list:      list.New(s, "No pages yet. Press a to add archives, images or text files."),
		addInput:  input.NewPathInput(s, "Add: ", "paths, quoted if they contain spaces"),
		saveInput: input.NewPathInput(s, "Save as: ", DefaultOutput),
		output:    output,
		sortMode:  domain.SortNatural,
		width:     80,
		height:    24,
	}
	v.Sync()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Sync refreshes the snapshot from the session. Call it only while no
// background operation is using the session.
func (v *View) Sync() {
	if v.session == nil {
		return
	}
	v.stagingDir = v.session.StagingDir()
	pages := v.session.Pages()
	items := make([]list.Item, len(pages))
	for i, p := range pages {
		items[i] = list.Item{
			Title:  p.Name(),
			Badge:  v.styles.Badge(p.Kind()),
			Detail: v.origin(p),
		}
	}
	v.list.SetItems(items)
	v.pageCount = len(pages)
	v.canUndo = v.session.CanUndo()
	v.canRedo = v.session.CanRedo()
}

// origin describes where a page lives: its folder, or its folder inside
// the extracted archives.
func (v *View) origin(p domain.PageRef) string {
	dir := filepath.Dir(p.Path)
	if v.stagingDir == "" {
		return dir
	}
	rel, err := filepath.Rel(v.stagingDir, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	if rel == "." {
		return "extracted"
	}
	return "extracted/" + filepath.ToSlash(rel)
}

// Update handles messages for the page list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		if v.prompt != promptNone {
			return v.handlePromptKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

//nolint:gocyclo // one case per key binding
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	selected := v.list.Selected()

	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, send(messages.Quit{})
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, send(messages.ViewChanged{View: messages.ViewHelp})
	case keymap.Matches(keyStr, v.keymap.Merge):
		return v, send(messages.ViewChanged{View: messages.ViewMerge})
	case keymap.Matches(keyStr, v.keymap.Settings):
		return v, send(messages.ViewChanged{View: messages.ViewSettings})

	case keymap.Matches(keyStr, v.keymap.Add):
		v.prompt = promptAdd
		v.addInput.SetValue("")
		return v, v.addInput.Focus()

	case keymap.Matches(keyStr, v.keymap.Generate):
		if v.pageCount == 0 {
			return v, send(messages.ErrorOccurred{Err: domain.ErrNoPages})
		}
		v.prompt = promptSave
		v.saveInput.SetValue(v.output)
		return v, v.saveInput.Focus()

	case keymap.Matches(keyStr, v.keymap.Preview):
		if v.pageCount == 0 {
			return v, send(messages.ErrorOccurred{Err: domain.ErrNoPages})
		}
		return v, send(messages.PreviewRequested{})

	case keymap.Matches(keyStr, v.keymap.MoveUp):
		if v.session.Move(selected, selected-1) {
			v.Sync()
			v.list.SetSelected(selected - 1)
		}
	case keymap.Matches(keyStr, v.keymap.MoveDown):
		if v.session.Move(selected, selected+1) {
			v.Sync()
			v.list.SetSelected(selected + 1)
		}
	case keymap.Matches(keyStr, v.keymap.Remove):
		if v.session.Remove(selected) > 0 {
			v.Sync()
		}
	case keymap.Matches(keyStr, v.keymap.Clear):
		if v.pageCount > 0 {
			v.session.Clear()
			v.Sync()
			return v, notice("Cleared the page list (u to undo)")
		}
	case keymap.Matches(keyStr, v.keymap.Sort):
		return v, v.sort()
	case keymap.Matches(keyStr, v.keymap.Undo):
		if v.session.Undo() {
			v.Sync()
			return v, notice("Undone")
		}
		return v, notice("Nothing to undo")
	case keymap.Matches(keyStr, v.keymap.Redo):
		if v.session.Redo() {
			v.Sync()
			return v, notice("Redone")
		}
		return v, notice("Nothing to redo")

	default:
		v.list.Update(msg)
	}
	return v, nil
}

// sort applies the current sort mode and advances to the next one, so
// repeated presses cycle natural, A-Z and Z-A.
func (v *View) sort() tea.Cmd {
	if v.pageCount == 0 {
		return nil
	}
	mode := v.sortMode
	if err := v.session.Sort(mode); err != nil {
		return send(messages.ErrorOccurred{Err: err})
	}
	v.sortMode = mode.Next()
	v.Sync()
	return notice(fmt.Sprintf("Sorted %s", mode.Description()))
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	field := v.activeInput()

	switch msg.Type {
	case tea.KeyEsc:
		v.closePrompt()
		return v, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(field.Value())
		kind := v.prompt
		v.closePrompt()
		return v, v.submit(kind, value)
	}

	var cmd tea.Cmd
	field, cmd = field.Update(msg)
	if v.prompt == promptAdd {
		v.addInput = field
	} else {
		v.saveInput = field
	}
	return v, cmd
}

func (v *View) submit(kind prompt, value string) tea.Cmd {
	if value == "" {
		return nil
	}

	switch kind {
	case promptAdd:
		paths, err := views.SplitPaths(value)
		if err != nil {
			return send(messages.ErrorOccurred{Err: fmt.Errorf("reading paths: %w", err)})
		}
		if len(paths) == 0 {
			return nil
		}
		return send(messages.ImportRequested{Paths: paths})
	case promptSave:
		paths, err := views.SplitPaths(value)
		if err != nil || len(paths) != 1 {
			paths = []string{value}
		}
		v.output = paths[0]
		return send(messages.GenerateRequested{Path: v.output})
	case promptNone:
	}
	return nil
}

func (v *View) activeInput() *input.PathInput {
	if v.prompt == promptSave {
		return v.saveInput
	}
	return v.addInput
}

func (v *View) closePrompt() {
	v.prompt = promptNone
	v.addInput.Reset()
	v.saveInput.Reset()
}

// View renders the page list.
func (v *View) View() string {
	var b strings.Builder

	title := "Pages"
	if name := v.sessionName(); name != "" {
		title = fmt.Sprintf("Pages: %s", name)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(v.summary()))
	b.WriteString("\n\n")

	b.WriteString(v.list.View())
	b.WriteString("\n")

	switch v.prompt {
	case promptAdd:
		b.WriteString("\n")
		b.WriteString(v.addInput.View())
	case promptSave:
		b.WriteString("\n")
		b.WriteString(v.saveInput.View())
	case promptNone:
	}

	return b.String()
}

func (v *View) sessionName() string {
	if v.session == nil {
		return ""
	}
	return v.session.Name()
}

func (v *View) summary() string {
	parts := []string{fmt.Sprintf("%d page(s)", v.pageCount)}
	if v.canUndo {
		parts = append(parts, "undo")
	}
	if v.canRedo {
		parts = append(parts, "redo")
	}
	parts = append(parts, "next sort "+v.sortMode.Description())
	return strings.Join(parts, " · ")
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

// SetSortMode sets the mode applied by the next sort key press.
func (v *View) SetSortMode(mode domain.SortMode) {
	if mode.IsValid() {
		v.sortMode = mode
	}
}

// SortMode returns the mode the next sort key press applies.
func (v *View) SortMode() domain.SortMode {
	return v.sortMode
}

// PageCount returns the page count of the last snapshot.
func (v *View) PageCount() int {
	return v.pageCount
}

// Selected returns the selected page index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Output returns the path offered when saving.
func (v *View) Output() string {
	return v.output
}

// Prompting reports whether a path prompt has focus.
func (v *View) Prompting() bool {
	return v.prompt != promptNone
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func notice(text string) tea.Cmd {
	return send(messages.Notice{Text: text})
}
