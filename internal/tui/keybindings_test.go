package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/setlist/internal/core/config"
)

func testKeybindings() map[string]config.Keybinding {
	return map[string]config.Keybinding{
		"a": {Action: config.ActionAdd, Help: "add"},
		"d": {Action: config.ActionDelete},
		"C": {Action: config.ActionClear, Help: "clear", Confirm: "Sure?"},
		"u": {Action: config.ActionUndo, Help: "undo"},
		"r": {Action: config.ActionRedo, Help: "redo"},
	}
}

func TestKeybindingHandler_Resolve(t *testing.T) {
	handler := NewKeybindingHandler(testKeybindings())

	tests := []struct {
		name     string
		key      string
		selected string
		wantOK   bool
		wantTyp  ActionType
	}{
		{name: "add", key: "a", wantOK: true, wantTyp: ActionTypeAdd},
		{name: "delete selected", key: "d", selected: "s1", wantOK: true, wantTyp: ActionTypeDelete},
		{name: "delete with empty list", key: "d", wantOK: false},
		{name: "clear", key: "C", wantOK: true, wantTyp: ActionTypeClear},
		{name: "undo", key: "u", wantOK: true, wantTyp: ActionTypeUndo},
		{name: "redo", key: "r", wantOK: true, wantTyp: ActionTypeRedo},
		{name: "unbound", key: "x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := handler.Resolve(tt.key, tt.selected)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantTyp, action.Type)
			}
		})
	}
}

func TestKeybindingHandler_ResolveDetails(t *testing.T) {
	handler := NewKeybindingHandler(testKeybindings())

	del, ok := handler.Resolve("d", "s1")
	assert.True(t, ok)
	assert.Equal(t, "s1", del.SongID)
	assert.Equal(t, "delete", del.Help, "help falls back to action")
	assert.False(t, del.NeedsConfirm())

	clr, _ := handler.Resolve("C", "")
	assert.True(t, clr.NeedsConfirm())
}

func TestKeybindingHandler_KeyBindings(t *testing.T) {
	handler := NewKeybindingHandler(testKeybindings())

	bindings := handler.KeyBindings()
	assert.Len(t, bindings, 5)

	// Sorted by key: uppercase sorts first.
	assert.Equal(t, "C", bindings[0].Help().Key)
	assert.Equal(t, "clear", bindings[0].Help().Desc)
	assert.Equal(t, "delete", bindings[2].Help().Desc)
}
