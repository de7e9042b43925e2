package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/setlist"
	"github.com/hay-kot/setlist/internal/styles"
	"github.com/hay-kot/setlist/pkg/randid"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateConfirming
	stateAdding
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

var (
	quitKey = key.NewBinding(key.WithKeys("q", keyCtrlC), key.WithHelp("q", "quit"))
	upKey   = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	downKey = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
)

// Model is the main Bubble Tea model for the TUI. It only talks to the
// playlist through the setlist.Playlist facade.
type Model struct {
	playlist *setlist.Playlist
	handler  *KeybindingHandler

	state   UIState
	modal   Modal
	pending Action
	input   textinput.Model
	help    help.Model

	songs     []playlist.Song
	undoDepth int
	redoDepth int
	cursor    int

	width    int
	height   int
	err      error
	quitting bool
}

// New creates a new TUI model.
func New(p *setlist.Playlist, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Title - Artist"
	ti.CharLimit = 200
	ti.Prompt = "♪ "

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.ColorGray)
	h.ShortSeparator = " • "

	m := Model{
		playlist: p,
		handler:  NewKeybindingHandler(cfg.Keybindings),
		state:    stateNormal,
		input:    ti,
		help:     h,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh copies the playlist state into the model and clamps the cursor.
func (m *Model) refresh() {
	s := m.playlist.State()
	m.songs = s.Items
	m.undoDepth = s.UndoDepth()
	m.redoDepth = s.RedoDepth()

	if m.cursor >= len(m.songs) {
		m.cursor = len(m.songs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedID() string {
	if len(m.songs) == 0 {
		return ""
	}
	return m.songs[m.cursor].ID
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = min(60, max(10, msg.Width-10))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateAdding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch m.state {
	case stateAdding:
		return m.handleAddKey(msg, keyStr)
	case stateConfirming:
		return m.handleConfirmModalKey(keyStr)
	}

	return m.handleNormalKey(msg, keyStr)
}

func (m Model) handleNormalKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, quitKey):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, upKey):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, downKey):
		if m.cursor < len(m.songs)-1 {
			m.cursor++
		}
		return m, nil
	}

	action, ok := m.handler.Resolve(keyStr, m.selectedID())
	if !ok {
		return m, nil
	}

	if action.Type == ActionTypeAdd {
		m.state = stateAdding
		m.input.Reset()
		return m, m.input.Focus()
	}

	if action.NeedsConfirm() {
		m.state = stateConfirming
		m.pending = action
		m.modal = NewModal(strings.ToUpper(action.Help[:1])+action.Help[1:], action.Confirm)
		return m, nil
	}

	return m.execute(action)
}

func (m Model) execute(action Action) (tea.Model, tea.Cmd) {
	if err := m.handler.Execute(m.playlist, action); err != nil {
		m.err = err
	}
	m.refresh()
	return m, nil
}

// handleAddKey handles keys while the add input is shown.
func (m Model) handleAddKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyEsc:
		m.state = stateNormal
		m.input.Blur()
		m.err = nil
		return m, nil
	case keyEnter:
		song, err := playlist.ParseEntry(m.input.Value())
		if err == nil {
			song.ID = randid.New()
			err = song.Validate()
		}
		if err != nil {
			m.err = err
			return m, nil
		}

		m.playlist.Add(song)
		m.state = stateNormal
		m.input.Blur()
		m.err = nil
		m.refresh()
		m.cursor = len(m.songs) - 1
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmModalKey handles keys when confirmation modal is shown.
func (m Model) handleConfirmModalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyEnter:
		m.state = stateNormal
		action := m.pending
		m.pending = Action{}
		if m.modal.ConfirmSelected() {
			return m.execute(action)
		}
		return m, nil
	case keyEsc:
		m.state = stateNormal
		m.pending = Action{}
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateConfirming {
		return m.modal.View(m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render(styles.Banner))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Playlist (%d)", len(m.songs))))
	b.WriteString("  ")
	b.WriteString(m.historyIndicator())
	b.WriteString("\n\n")

	if len(m.songs) == 0 {
		b.WriteString(emptyStyle.Render("No songs yet. Press a to add one."))
		b.WriteString("\n")
	}
	for i, s := range m.songs {
		b.WriteString(m.renderSong(i, s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateAdding {
		b.WriteString(inputBoxStyle.Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.PaddingLeft(1).Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.helpBindings())))
	return b.String()
}

func (m Model) renderSong(i int, s playlist.Song) string {
	title := styles.TitleStyle.Render(s.Title)
	prefix := "  "
	if i == m.cursor {
		title = styles.SelectedStyle.Render(s.Title)
		prefix = cursorStyle.Render(iconBar) + " "
	}

	line := prefix + title + " " + styles.ArtistStyle.Render("· "+s.Artist)
	if s.Duration != "" {
		line += " " + durationStyle.Render(s.Duration)
	}
	return line
}

func (m Model) historyIndicator() string {
	undo := fmt.Sprintf("%s %d", iconUndo, m.undoDepth)
	redo := fmt.Sprintf("%s %d", iconRedo, m.redoDepth)

	undoStyle, redoStyle := styles.DisabledStyle, styles.DisabledStyle
	if m.undoDepth > 0 {
		undoStyle = styles.EnabledStyle
	}
	if m.redoDepth > 0 {
		redoStyle = styles.EnabledStyle
	}
	return undoStyle.Render(undo) + " " + redoStyle.Render(redo)
}

func (m Model) helpBindings() []key.Binding {
	if m.state == stateAdding {
		return []key.Binding{
			key.NewBinding(key.WithKeys(keyEnter), key.WithHelp(keyEnter, "add")),
			key.NewBinding(key.WithKeys(keyEsc), key.WithHelp(keyEsc, "cancel")),
		}
	}

	bindings := []key.Binding{upKey, downKey}
	bindings = append(bindings, m.handler.KeyBindings()...)
	return append(bindings, quitKey)
}
