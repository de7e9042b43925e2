package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/internal/core/storage"
)

// StateCheck inspects the raw persisted playlist and profile entries.
type StateCheck struct {
	store storage.Store
	fix   bool
}

// NewStateCheck creates a new persisted state check.
// If fix is true, entries that cannot be decoded are deleted and an
// unreadable store is reset, so the next start begins from the empty default.
func NewStateCheck(store storage.Store, fix bool) *StateCheck {
	return &StateCheck{store: store, fix: fix}
}

func (c *StateCheck) Name() string {
	return "Saved State"
}

func (c *StateCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.store == nil {
		result.Items = append(result.Items, Fail("Storage", "storage not opened"))
		return result
	}

	result.Items = append(result.Items, c.checkPlaylist(ctx)...)
	result.Items = append(result.Items, c.checkProfile(ctx)...)
	return result
}

func (c *StateCheck) checkPlaylist(ctx context.Context) []CheckItem {
	const label = "Playlist"

	var state playlist.State
	item, ok := c.load(ctx, label, playlist.StorageKey, &state)
	if !ok {
		return []CheckItem{item}
	}

	items := []CheckItem{Pass(label, fmt.Sprintf("%d song(s), %d undo step(s), %d redo step(s), saved %s",
		len(state.Items), state.UndoDepth(), state.RedoDepth(), item.Detail))}

	seen := make(map[string]bool, len(state.Items))
	var invalid, dupes int
	for _, s := range state.Items {
		if s.Validate() != nil {
			invalid++
		}
		if seen[s.ID] {
			dupes++
		}
		seen[s.ID] = true
	}

	if invalid > 0 {
		items = append(items, Warn("Songs", fmt.Sprintf("%d song(s) fail validation", invalid)))
	}
	if dupes > 0 {
		items = append(items, Warn("Song IDs", fmt.Sprintf("%d duplicate ID(s); rm removes every song sharing an ID", dupes)))
	}

	return items
}

func (c *StateCheck) checkProfile(ctx context.Context) []CheckItem {
	const label = "Profile"

	var p profile.Profile
	item, ok := c.load(ctx, label, profile.StorageKey, &p)
	if !ok {
		return []CheckItem{item}
	}

	switch {
	case !p.Valid:
		return []CheckItem{Warn(label, "draft has not been submitted")}
	case p.Validate() != nil:
		return []CheckItem{Warn(label, fmt.Sprintf("marked valid but fails validation: %v", p.Validate()))}
	default:
		return []CheckItem{Pass(label, "submitted by "+p.Username)}
	}
}

// load reads key into v. When ok is false the returned item is the final
// report for the key. When ok is true its Detail holds the entry age.
func (c *StateCheck) load(ctx context.Context, label, key string, v any) (item CheckItem, ok bool) {
	entry, err := c.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return Pass(label, "nothing saved yet"), false
	}
	if errors.Is(err, storage.ErrCorrupt) {
		if !c.fix {
			return Repairable(label, fmt.Sprintf("store unreadable: %v", err)), false
		}

		// The file backend moves an unreadable file aside on any write.
		err := c.store.Delete(ctx, key)
		if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			return Fail(label, fmt.Sprintf("failed to reset store: %v", err)), false
		}
		return Pass(label, "reset unreadable store"), false
	}
	if err != nil {
		return Fail(label, fmt.Sprintf("read %s: %v", key, err)), false
	}

	if err := json.Unmarshal(entry.Value, v); err != nil {
		if !c.fix {
			return Repairable(label, fmt.Sprintf("corrupt data under %s: %v", key, err)), false
		}

		if err := c.store.Delete(ctx, key); err != nil {
			return Fail(label, fmt.Sprintf("failed to delete: %v", err)), false
		}
		return Pass(label, "deleted corrupt entry"), false
	}

	return CheckItem{Detail: age(entry.UpdatedAt)}, true
}

func age(t time.Time) string {
	if t.IsZero() {
		return "at unknown time"
	}
	return t.Format(time.DateTime)
}
