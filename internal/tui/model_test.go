package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/setlist"
	"github.com/hay-kot/setlist/internal/store/memory"
)

func newTestModel(t *testing.T, songs ...playlist.Song) (Model, *setlist.Playlist) {
	t.Helper()

	p := setlist.Open(context.Background(), memory.New(), zerolog.Nop(), setlist.Options{})
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	for _, s := range songs {
		p.Add(s)
	}

	cfg := &config.Config{Keybindings: testKeybindings()}
	return New(p, cfg), p
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	songA = playlist.Song{ID: "a", Title: "Yesterday", Artist: "The Beatles"}
	songB = playlist.Song{ID: "b", Title: "Hey Jude", Artist: "The Beatles"}
)

func TestModel_DeleteUndoRedo(t *testing.T) {
	m, p := newTestModel(t, songA, songB)

	m = press(t, m, runes("j"), runes("d"))
	assert.Equal(t, []playlist.Song{songA}, p.Songs())
	assert.Len(t, m.songs, 1)
	assert.Equal(t, 0, m.cursor, "cursor clamped after delete")

	m = press(t, m, runes("u"))
	assert.Equal(t, []playlist.Song{songA, songB}, p.Songs())
	assert.Equal(t, 1, m.redoDepth)

	m = press(t, m, runes("r"))
	assert.Equal(t, []playlist.Song{songA}, p.Songs())
	assert.Equal(t, 0, m.redoDepth)
}

func TestModel_ClearNeedsConfirm(t *testing.T) {
	m, p := newTestModel(t, songA)

	m = press(t, m, runes("C"))
	assert.Equal(t, stateConfirming, m.state)
	assert.Len(t, p.Songs(), 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateNormal, m.state)
	assert.Len(t, p.Songs(), 1)

	m = press(t, m, runes("C"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateNormal, m.state)
	assert.Empty(t, p.Songs())
	assert.Contains(t, m.View(), "No songs yet")
}

func TestModel_ConfirmCancelButton(t *testing.T) {
	m, p := newTestModel(t, songA)

	m = press(t, m, runes("C"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, p.Songs(), 1)
	assert.Equal(t, stateNormal, m.state)
}

func TestModel_AddSong(t *testing.T) {
	m, p := newTestModel(t)

	m = press(t, m, runes("a"))
	require.Equal(t, stateAdding, m.state)

	m = press(t, m, runes("Imagine - John Lennon"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateNormal, m.state)

	songs := p.Songs()
	require.Len(t, songs, 1)
	assert.Equal(t, "Imagine", songs[0].Title)
	assert.Equal(t, "John Lennon", songs[0].Artist)
	assert.NotEmpty(t, songs[0].ID)
}

func TestModel_AddInvalidKeepsInput(t *testing.T) {
	m, p := newTestModel(t)

	m = press(t, m, runes("a"), runes("no separator"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateAdding, m.state)
	assert.Error(t, m.err)
	assert.Empty(t, p.Songs())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateNormal, m.state)
	assert.NoError(t, m.err)
}

func TestModel_UndoOnEmptyIsNoop(t *testing.T) {
	m, p := newTestModel(t)

	m = press(t, m, runes("u"), runes("r"))
	assert.Empty(t, p.Songs())
	assert.Equal(t, 0, m.undoDepth)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
}
