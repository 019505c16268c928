package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_EditBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Undo.Keys(), "u")
	assert.Contains(t, km.Undo.Keys(), "ctrl+z")
	assert.Contains(t, km.Redo.Keys(), "r")
	assert.Contains(t, km.Redo.Keys(), "ctrl+y")
	assert.Contains(t, km.Remove.Keys(), "delete")
	assert.Contains(t, km.MoveUp.Keys(), "K")
	assert.Contains(t, km.MoveDown.Keys(), "J")
}

func TestDefaultKeyMap_NavigationBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Select.Keys(), "enter")
}

func TestDefaultKeyMap_QuestionBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Yes.Keys(), "y")
	assert.Contains(t, km.No.Keys(), "n")
	assert.Contains(t, km.No.Keys(), "esc")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, km.Add, bindings[0])
	assert.Equal(t, km.Quit, bindings[3])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 5)
	assert.Len(t, bindings[0], 4) // Up, Down, MoveUp, MoveDown
	assert.Len(t, bindings[4], 2) // Help, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("K", km.MoveUp))
	assert.True(t, Matches("ctrl+z", km.Undo))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("k", km.MoveUp))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"Add", km.Add},
		{"Remove", km.Remove},
		{"MoveUp", km.MoveUp},
		{"MoveDown", km.MoveDown},
		{"Sort", km.Sort},
		{"Undo", km.Undo},
		{"Redo", km.Redo},
		{"Clear", km.Clear},
		{"Generate", km.Generate},
		{"Preview", km.Preview},
		{"Merge", km.Merge},
		{"Settings", km.Settings},
		{"Yes", km.Yes},
		{"No", km.No},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
