package tui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/setlist/internal/core/config"
	"github.com/hay-kot/setlist/internal/setlist"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypeAdd
	ActionTypeDelete
	ActionTypeClear
	ActionTypeUndo
	ActionTypeRedo
)

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type    ActionType
	Key     string
	Help    string
	Confirm string // Non-empty if confirmation required
	SongID  string // Target of delete
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// KeybindingHandler resolves keybindings to actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding) *KeybindingHandler {
	return &KeybindingHandler{keybindings: keybindings}
}

// Resolve maps a key press to an action. selectedID is the song under the
// cursor, or "" when the list is empty.
func (h *KeybindingHandler) Resolve(keyStr, selectedID string) (Action, bool) {
	kb, exists := h.keybindings[keyStr]
	if !exists {
		return Action{}, false
	}

	action := Action{
		Key:     keyStr,
		Help:    kb.Help,
		Confirm: kb.Confirm,
	}

	switch kb.Action {
	case config.ActionAdd:
		action.Type = ActionTypeAdd
	case config.ActionDelete:
		if selectedID == "" {
			return Action{}, false
		}
		action.Type = ActionTypeDelete
		action.SongID = selectedID
	case config.ActionClear:
		action.Type = ActionTypeClear
	case config.ActionUndo:
		action.Type = ActionTypeUndo
	case config.ActionRedo:
		action.Type = ActionTypeRedo
	default:
		return Action{}, false
	}

	if action.Help == "" {
		action.Help = kb.Action
	}
	return action, true
}

// Execute applies action to the playlist. Add is not handled here; it needs
// input and is driven by the model.
func (h *KeybindingHandler) Execute(p *setlist.Playlist, action Action) error {
	switch action.Type {
	case ActionTypeDelete:
		p.Remove(action.SongID)
	case ActionTypeClear:
		p.Clear()
	case ActionTypeUndo:
		p.Undo()
	case ActionTypeRedo:
		p.Redo()
	default:
		return fmt.Errorf("action type %d not supported by Execute", action.Type)
	}
	return nil
}

// KeyBindings returns key.Binding objects for integration with bubbles help system.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}

		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}

	return bindings
}
