package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/components/confirm"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/views/merge"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/views/pages"
	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/ports/driving"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Imports, generation, previews and merges run as commands off the UI
// loop. While one runs the app is busy: keys other than ctrl+c are
// ignored and new imports are queued, so the session and merge set are
// never used from two goroutines at once.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	pagesView    *pages.View
	mergeView    *merge.View
	settingsView *settings.View
	statusBar    *status.Bar
	dialog       *confirm.Dialog
	help         help.Model

	// currentView tracks which view is active; previousView is restored
	// when help closes.
	currentView  messages.ViewType
	previousView messages.ViewType

	// running counts background operations.
	running int

	// queued holds paths requested while busy.
	queued []string

	// batch is the import waiting on questions, with the answers so far.
	batch     []string
	questions []domain.Question
	answers   map[string]bool

	drops    <-chan string
	inboxDir string

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	pagesView := pages.NewView(s, km, ports.Session, ports.Output)
	if ports.Settings != nil {
		if current, err := ports.Settings.Get(); err == nil {
			pagesView.SetSortMode(current.Import.DefaultSort)
		}
	}

	statusBar := status.NewBar(s, km)
	statusBar.SetPageCount(pagesView.PageCount())

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		pagesView:    pagesView,
		mergeView:    merge.NewView(s, km, ports.Merge),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    statusBar,
		dialog:       confirm.New(s, km),
		help:         h,
		currentView:  messages.ViewPages,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It starts the inbox watcher and imports the initial inputs.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("zip2pdf")}
	if a.ports.Inbox != nil {
		cmds = append(cmds, a.startInbox())
	}
	if len(a.ports.Inputs) > 0 {
		inputs := append([]string(nil), a.ports.Inputs...)
		cmds = append(cmds, send(messages.ImportRequested{Paths: inputs}))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.changeView(msg.View)

	case messages.Quit:
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.setError(msg.Err)

	case messages.Notice:
		a.setDone(msg.Text)

	case messages.ImportRequested:
		return a, a.requestImport(msg.Paths)

	case messages.ImportCompleted:
		return a, a.importCompleted(msg)

	case messages.GenerateRequested:
		return a, a.generate(msg.Path)

	case messages.GenerateCompleted:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.setDone(fmt.Sprintf("Wrote %d page(s) to %s", a.pagesView.PageCount(), msg.Path))
		}
		return a, a.done()

	case messages.PreviewRequested:
		return a, a.preview()

	case messages.PreviewCompleted:
		a.previewCompleted(msg)
		return a, a.done()

	case messages.MergeAddRequested:
		return a, a.addToMerge(msg.Paths)

	case messages.MergeListChanged:
		return a, a.loadSummaries()

	case messages.MergeSummariesLoaded:
		a.mergeView, _ = a.mergeView.Update(msg)
		return a, a.done()

	case messages.MergeRequested:
		return a, a.merge(msg.Path)

	case messages.MergeCompleted:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.setDone(fmt.Sprintf("Merged %d file(s) into %s", a.ports.Merge.Len(), msg.Path))
		}
		return a, a.done()

	case messages.InboxStarted:
		if msg.Err != nil {
			a.setError(fmt.Errorf("watching inbox: %w", msg.Err))
			return a, nil
		}
		a.drops = msg.Drops
		a.inboxDir = msg.Dir
		a.setDone("Watching " + msg.Dir + " for dropped files")
		return a, waitForDrop(a.drops)

	case messages.FileDropped:
		logger.Debug("TUI: %s dropped into inbox", msg.Path)
		return a, tea.Batch(a.requestImport([]string{msg.Path}), waitForDrop(a.drops))

	case messages.InboxClosed:
		a.drops = nil

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.pagesView.SetSortMode(msg.Settings.Import.DefaultSort)
		}
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return tea.Quit
	}
	if a.dialog.Open() {
		return a.answer(keyStr)
	}
	if a.Busy() {
		return nil
	}
	if state := a.statusBar.State(); state == status.StateError || state == status.StateDone {
		a.statusBar.Clear()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPages:
		a.pagesView, cmd = a.pagesView.Update(msg)
		a.statusBar.SetPageCount(a.pagesView.PageCount())
	case messages.ViewMerge:
		a.mergeView, cmd = a.mergeView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) ||
			keymap.Matches(keyStr, a.keymap.Quit) {
			cmd = a.changeView(a.previousView)
		}
	}
	return cmd
}

func (a *App) changeView(view messages.ViewType) tea.Cmd {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewPages:
		a.statusBar.SetHints(nil)
	case messages.ViewMerge:
		a.statusBar.SetHints(a.keymap.MergeHelp())
		return a.mergeView.Init()
	case messages.ViewSettings:
		a.statusBar.SetHints([]key.Binding{a.keymap.Back})
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewHelp:
		a.statusBar.SetHints([]key.Binding{a.keymap.Back})
	}
	return nil
}

// Background operations.

func (a *App) start(label string, cmd tea.Cmd) tea.Cmd {
	a.running++
	a.statusBar.SetState(status.StateBusy)
	a.statusBar.SetMessage(label)
	return cmd
}

// done ends one background operation and, once none are left, starts
// the next queued import.
func (a *App) done() tea.Cmd {
	if a.running > 0 {
		a.running--
	}
	if a.running > 0 {
		return nil
	}
	if a.statusBar.State() == status.StateBusy {
		a.statusBar.Clear()
	}
	if len(a.queued) == 0 {
		return nil
	}
	paths := a.queued
	a.queued = nil
	return a.requestImport(paths)
}

// requestImport asks the questions paths raise, one at a time, then runs
// the import with the collected answers.
func (a *App) requestImport(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	if a.Busy() || a.batch != nil {
		a.queued = append(a.queued, paths...)
		return nil
	}

	a.batch = paths
	a.answers = make(map[string]bool)
	a.questions = nil
	if a.ports.Classifier != nil {
		seen := make(map[string]bool)
		for _, p := range paths {
			if q, ok := a.ports.Classifier.Classify(p).Question(); ok && !seen[p] {
				seen[p] = true
				a.questions = append(a.questions, q)
			}
		}
	}
	return a.askNext()
}

func (a *App) askNext() tea.Cmd {
	if len(a.questions) > 0 {
		a.dialog.Ask(a.questions[0])
		a.questions = a.questions[1:]
		a.statusBar.SetState(status.StateQuestion)
		return nil
	}

	paths, answers := a.batch, a.answers
	a.batch, a.answers = nil, nil
	return a.runImport(paths, answers)
}

func (a *App) answer(keyStr string) tea.Cmd {
	q := a.dialog.Question()
	switch a.dialog.HandleKey(keyStr) {
	case confirm.Unanswered:
		return nil
	case confirm.AnsweredYes:
		a.answers[domain.AbsPath(q.Path)] = true
	case confirm.AnsweredNo:
		a.answers[domain.AbsPath(q.Path)] = false
	}
	a.statusBar.Clear()
	return a.askNext()
}

func (a *App) runImport(paths []string, answers map[string]bool) tea.Cmd {
	session, ctx := a.ports.Session, a.ctx
	decider := driving.DeciderFunc(func(q domain.Question) bool {
		return answers[domain.AbsPath(q.Path)]
	})

	return a.start(fmt.Sprintf("Importing %d file(s)", len(paths)), func() tea.Msg {
		results, err := session.Import(ctx, paths, decider)
		return messages.ImportCompleted{Results: results, Err: err}
	})
}

func (a *App) importCompleted(msg messages.ImportCompleted) tea.Cmd {
	a.pagesView.Sync()
	a.statusBar.SetPageCount(a.pagesView.PageCount())

	var cmds []tea.Cmd
	if pdfs := domain.MergeRequests(msg.Results); len(pdfs) > 0 {
		cmds = append(cmds, a.addToMerge(pdfs))
	}

	added := domain.AddedCount(msg.Results)
	if msg.Err != nil {
		a.setError(importFailure(msg.Results, msg.Err, added))
	} else {
		a.setDone(fmt.Sprintf("Added %d page(s)", added))
	}

	cmds = append(cmds, a.done())
	return tea.Batch(cmds...)
}

// importFailure summarises a partly failed import in one line.
func importFailure(results []domain.ImportResult, err error, added int) error {
	var failed []domain.ImportResult
	for _, r := range results {
		if r.Outcome == domain.OutcomeFailed {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return err
	}

	first := failed[0].Err
	if len(failed) == 1 {
		return fmt.Errorf("added %d page(s), %s failed: %w", added, filepath.Base(failed[0].Path), first)
	}
	return fmt.Errorf("added %d page(s), %d files failed, first: %w", added, len(failed), first)
}

func (a *App) generate(path string) tea.Cmd {
	session, ctx := a.ports.Session, a.ctx
	return a.start("Writing "+path, func() tea.Msg {
		return messages.GenerateCompleted{Path: path, Err: session.Generate(ctx, path)}
	})
}

func (a *App) preview() tea.Cmd {
	session, ctx := a.ports.Session, a.ctx
	return a.start("Rendering preview", func() tea.Msg {
		path, err := session.Preview(ctx)
		return messages.PreviewCompleted{Path: path, Err: err}
	})
}

func (a *App) previewCompleted(msg messages.PreviewCompleted) {
	if msg.Err != nil {
		a.setError(msg.Err)
		return
	}
	if err := openFile(msg.Path); err != nil {
		a.setError(fmt.Errorf("preview written to %s but could not be opened: %w", msg.Path, err))
		return
	}
	a.setDone("Preview opened: " + msg.Path)
}

// addToMerge queues PDFs in the merge tool and shows it.
func (a *App) addToMerge(paths []string) tea.Cmd {
	if err := a.ports.Merge.Add(paths...); err != nil {
		a.setError(err)
		return nil
	}
	a.changeView(messages.ViewMerge)
	return a.loadSummaries()
}

func (a *App) loadSummaries() tea.Cmd {
	service, ctx := a.ports.Merge, a.ctx
	return a.start("Reading PDFs", func() tea.Msg {
		return messages.MergeSummariesLoaded{Inputs: service.Summaries(ctx)}
	})
}

func (a *App) merge(path string) tea.Cmd {
	service, ctx := a.ports.Merge, a.ctx
	return a.start("Merging into "+path, func() tea.Msg {
		return messages.MergeCompleted{Path: path, Err: service.Merge(ctx, path)}
	})
}

// Inbox.

func (a *App) startInbox() tea.Cmd {
	inbox, ctx := a.ports.Inbox, a.ctx
	return func() tea.Msg {
		drops, err := inbox.Watch(ctx)
		return messages.InboxStarted{Dir: inbox.Dir(), Drops: drops, Err: err}
	}
}

// waitForDrop delivers the next inbox file as a message.
func waitForDrop(drops <-chan string) tea.Cmd {
	if drops == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-drops
		if !ok {
			return messages.InboxClosed{}
		}
		return messages.FileDropped{Path: path}
	}
}

// Status helpers.

func (a *App) setError(err error) {
	if err == nil {
		return
	}
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(firstLine(err.Error()))
}

func (a *App) setDone(text string) {
	a.statusBar.SetState(status.StateDone)
	a.statusBar.SetMessage(text)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	height := a.contentHeight()
	var content string
	switch {
	case a.dialog.Open():
		content = lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, a.dialog.View())
	case a.currentView == messages.ViewMerge:
		content = a.mergeView.View()
	case a.currentView == messages.ViewSettings:
		content = a.settingsView.View()
	case a.currentView == messages.ViewHelp:
		content = a.viewHelp()
	default:
		content = a.pagesView.View()
	}

	content = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) contentHeight() int {
	if a.height < 2 {
		return 1
	}
	return a.height - 1
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.keymap))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Paths typed at the add prompt follow shell quoting; dragging files into the terminal works."))
	b.WriteString("\n")
	if a.inboxDir != "" {
		b.WriteString(a.styles.Muted.Render("Files dropped into " + a.inboxDir + " are imported automatically."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Busy reports whether a background operation is running.
func (a *App) Busy() bool {
	return a.running > 0
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	content := a.contentHeight()
	a.pagesView.SetDimensions(width, content)
	a.mergeView.SetDimensions(width, content)
	a.settingsView.SetDimensions(width, content)
	a.statusBar.SetWidth(width)
	a.dialog.SetWidth(width)
	a.help.Width = width
}
