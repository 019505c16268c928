package pages

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zip2pdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/zip2pdf/internal/core/domain"
	"github.com/custodia-labs/zip2pdf/internal/core/services"
)

func newSession(t *testing.T, names ...string) *services.Session {
	t.Helper()
	staging, err := services.NewStagingArea(t.TempDir(), "pages-test")
	require.NoError(t, err)
	session := services.NewSession("id", "book", staging, services.SessionDeps{})
	t.Cleanup(func() { _ = session.Close() })

	refs := make([]domain.PageRef, len(names))
	for i, n := range names {
		refs[i] = domain.NewPageRef(filepath.Join("/in", n))
	}
	if len(refs) > 0 {
		session.Append(refs...)
	}
	return session
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func names(pages []domain.PageRef) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Name()
	}
	return out
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestNewView(t *testing.T) {
	session := newSession(t, "a.png", "b.txt")

	v := NewView(nil, nil, session, "")

	require.NotNil(t, v)
	assert.Equal(t, 2, v.PageCount())
	assert.Equal(t, DefaultOutput, v.Output())
	assert.Equal(t, domain.SortNatural, v.SortMode())
	assert.False(t, v.Prompting())
	assert.Nil(t, v.Init())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil, nil, newSession(t, "cover.png", "notes.txt"), "")

	out := v.View()

	assert.Contains(t, out, "Pages: book")
	assert.Contains(t, out, "2 page(s)")
	assert.Contains(t, out, "cover.png")
	assert.Contains(t, out, "notes.txt")
}

func TestView_RenderEmpty(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	assert.Contains(t, v.View(), "No pages yet")
}

func TestView_Remove(t *testing.T) {
	session := newSession(t, "a.png", "b.png", "c.png")
	v := NewView(nil, nil, session, "")

	v.Update(key("down"))
	v.Update(key("d"))

	assert.Equal(t, []string{"a.png", "c.png"}, names(session.Pages()))
	assert.Equal(t, 2, v.PageCount())
}

func TestView_MoveDownAndUp(t *testing.T) {
	session := newSession(t, "a.png", "b.png", "c.png")
	v := NewView(nil, nil, session, "")

	v.Update(key("J"))
	assert.Equal(t, []string{"b.png", "a.png", "c.png"}, names(session.Pages()))
	assert.Equal(t, 1, v.Selected(), "selection follows the moved page")

	v.Update(key("K"))
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, names(session.Pages()))
	assert.Equal(t, 0, v.Selected())

	v.Update(key("K"))
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, names(session.Pages()), "top page stays")
}

func TestView_SortCyclesModes(t *testing.T) {
	session := newSession(t, "p10.png", "p2.png", "p1.png")
	v := NewView(nil, nil, session, "")

	_, cmd := v.Update(key("s"))
	msg := run(t, cmd)

	assert.Equal(t, []string{"p1.png", "p2.png", "p10.png"}, names(session.Pages()))
	assert.Equal(t, messages.Notice{Text: "Sorted Natural"}, msg)
	assert.Equal(t, domain.SortAscending, v.SortMode())

	v.Update(key("s"))
	assert.Equal(t, []string{"p1.png", "p10.png", "p2.png"}, names(session.Pages()))

	v.Update(key("s"))
	assert.Equal(t, []string{"p2.png", "p10.png", "p1.png"}, names(session.Pages()))
	assert.Equal(t, domain.SortNatural, v.SortMode())
}

func TestView_SetSortMode(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	v.SetSortMode(domain.SortDescending)
	assert.Equal(t, domain.SortDescending, v.SortMode())

	v.SetSortMode("bogus")
	assert.Equal(t, domain.SortDescending, v.SortMode())
}

func TestView_UndoRedo(t *testing.T) {
	session := newSession(t, "a.png", "b.png")
	v := NewView(nil, nil, session, "")

	v.Update(key("d"))
	require.Equal(t, 1, v.PageCount())

	_, cmd := v.Update(key("u"))
	assert.Equal(t, messages.Notice{Text: "Undone"}, run(t, cmd))
	assert.Equal(t, 2, v.PageCount())

	_, cmd = v.Update(key("r"))
	assert.Equal(t, messages.Notice{Text: "Redone"}, run(t, cmd))
	assert.Equal(t, 1, v.PageCount())

	_, cmd = v.Update(key("r"))
	assert.Equal(t, messages.Notice{Text: "Nothing to redo"}, run(t, cmd))
}

func TestView_Clear(t *testing.T) {
	session := newSession(t, "a.png", "b.png")
	v := NewView(nil, nil, session, "")

	_, cmd := v.Update(key("x"))

	assert.IsType(t, messages.Notice{}, run(t, cmd))
	assert.Equal(t, 0, session.Len())
	assert.Equal(t, 0, v.PageCount())
}

func TestView_AddPrompt(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	v.Update(key("a"))
	require.True(t, v.Prompting())

	v.Update(key("'/in/my scans.zip' cover.png"))
	_, cmd := v.Update(key("enter"))

	assert.False(t, v.Prompting())
	assert.Equal(t, messages.ImportRequested{Paths: []string{"/in/my scans.zip", "cover.png"}}, run(t, cmd))
}

func TestView_AddPromptKeysAreText(t *testing.T) {
	session := newSession(t, "a.png")
	v := NewView(nil, nil, session, "")

	v.Update(key("a"))
	v.Update(key("q"))
	v.Update(key("d"))

	assert.True(t, v.Prompting())
	assert.Equal(t, "qd", v.addInput.Value())
	assert.Equal(t, 1, session.Len())
}

func TestView_AddPromptEmptyOrCancelled(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	v.Update(key("a"))
	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)

	v.Update(key("a"))
	v.Update(key("x.zip"))
	_, cmd = v.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.False(t, v.Prompting())
}

func TestView_AddPromptBadQuoting(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	v.Update(key("a"))
	v.Update(key(`"unterminated`))
	_, cmd := v.Update(key("enter"))

	assert.IsType(t, messages.ErrorOccurred{}, run(t, cmd))
}

func TestView_GeneratePrompt(t *testing.T) {
	v := NewView(nil, nil, newSession(t, "a.png"), "/out/book.pdf")

	v.Update(key("g"))
	require.True(t, v.Prompting())

	_, cmd := v.Update(key("enter"))

	assert.Equal(t, messages.GenerateRequested{Path: "/out/book.pdf"}, run(t, cmd))
}

func TestView_GenerateWithoutPages(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	_, cmd := v.Update(key("g"))

	msg, ok := run(t, cmd).(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrNoPages)
	assert.False(t, v.Prompting())
}

func TestView_Preview(t *testing.T) {
	v := NewView(nil, nil, newSession(t, "a.png"), "")

	_, cmd := v.Update(key("p"))

	assert.Equal(t, messages.PreviewRequested{}, run(t, cmd))
}

func TestView_Navigation(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"q", messages.Quit{}},
		{"?", messages.ViewChanged{View: messages.ViewHelp}},
		{"m", messages.ViewChanged{View: messages.ViewMerge}},
		{",", messages.ViewChanged{View: messages.ViewSettings}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := NewView(nil, nil, newSession(t), "")

			_, cmd := v.Update(key(tt.key))

			assert.Equal(t, tt.want, run(t, cmd))
		})
	}
}

func TestView_Origin(t *testing.T) {
	session := newSession(t)
	staged := filepath.Join(session.StagingDir(), "vol1", "p1.png")
	session.Append(domain.NewPageRef(staged), domain.NewPageRef(filepath.Join(session.StagingDir(), "p2.png")))
	v := NewView(nil, nil, session, "")

	assert.Equal(t, "extracted/vol1", v.origin(domain.NewPageRef(staged)))
	assert.Equal(t, "extracted", v.origin(domain.NewPageRef(filepath.Join(session.StagingDir(), "p2.png"))))
	assert.Equal(t, "/in", v.origin(domain.NewPageRef("/in/a.png")))
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil, newSession(t), "")

	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, v.width)
	assert.Equal(t, 40, v.height)
}
