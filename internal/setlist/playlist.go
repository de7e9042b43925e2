// Package setlist wires the pure playlist history to persistence and exposes
// the operations the UI surfaces call.
package setlist

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/setlist/internal/core/history"
	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/core/storage"
	"github.com/hay-kot/setlist/internal/persist"
)

// Options configures a Playlist.
type Options struct {
	// MaxDepth caps the number of undo steps kept. Zero means unlimited.
	MaxDepth int
}

// Observer is called with every committed state. The state is shared with
// the playlist and is read-only.
type Observer func(playlist.State)

// Playlist owns one undoable playlist state. Every committed state is handed
// to the persistence bridge in the background; reads and writes never wait on
// storage.
type Playlist struct {
	dispatchMu sync.Mutex // serializes Dispatch including observer calls
	stateMu    sync.RWMutex
	state      playlist.State

	opts   Options
	bridge *persist.Bridge[playlist.State]
	log    zerolog.Logger

	subsMu  sync.Mutex
	subs    map[int]Observer
	nextSub int
}

// Open loads the saved playlist from store, falling back to an empty one,
// and starts write-through persistence.
func Open(ctx context.Context, store storage.Store, log zerolog.Logger, opts Options) *Playlist {
	p := &Playlist{
		state:  history.New[playlist.Song](),
		opts:   opts,
		bridge: persist.New[playlist.State](store, playlist.StorageKey, log),
		log:    log.With().Str("component", "playlist").Logger(),
		subs:   make(map[int]Observer),
	}

	saved, err := p.bridge.Load(ctx)
	switch {
	case err == nil:
		p.state = history.Reduce[playlist.Song](p.state, history.LoadAction[playlist.Song]{State: saved})
		p.log.Debug().
			Int("songs", len(p.state.Items)).
			Int("undo", p.state.UndoDepth()).
			Int("redo", p.state.RedoDepth()).
			Msg("restored playlist")
	case errors.Is(err, persist.ErrNotFound):
		p.log.Debug().Msg("no saved playlist, starting empty")
	}

	p.Subscribe(p.bridge.Save)
	return p
}

// Songs returns the current songs. The slice is a copy.
func (p *Playlist) Songs() []playlist.Song {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return append([]playlist.Song{}, p.state.Items...)
}

// CanUndo reports whether Undo would change the playlist.
func (p *Playlist) CanUndo() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state.CanUndo()
}

// CanRedo reports whether Redo would change the playlist.
func (p *Playlist) CanRedo() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state.CanRedo()
}

// State returns a deep copy of the full state.
func (p *Playlist) State() playlist.State {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state.Clone()
}

// Add appends a song.
func (p *Playlist) Add(song playlist.Song) playlist.State {
	return p.Dispatch(history.AddAction[playlist.Song]{Item: song})
}

// Remove removes every song with the given ID.
func (p *Playlist) Remove(id string) playlist.State {
	return p.Dispatch(history.RemoveAction[playlist.Song]{ID: id})
}

// Clear removes all songs.
func (p *Playlist) Clear() playlist.State {
	return p.Dispatch(history.ClearAction[playlist.Song]{})
}

// Undo reverts the last mutation. It is a no-op when nothing can be undone.
func (p *Playlist) Undo() playlist.State {
	return p.Dispatch(history.UndoAction[playlist.Song]{})
}

// Redo reapplies the last undone mutation. It is a no-op when nothing can be
// redone.
func (p *Playlist) Redo() playlist.State {
	return p.Dispatch(history.RedoAction[playlist.Song]{})
}

// Dispatch applies action, commits the result and notifies observers, which
// include the persistence bridge. Observers must not call Dispatch and must
// not modify the state they receive. The returned state is a copy.
func (p *Playlist) Dispatch(action history.Action[playlist.Song]) playlist.State {
	p.dispatchMu.Lock()
	defer p.dispatchMu.Unlock()

	p.stateMu.Lock()
	next := history.Reduce(p.state, action)
	next = history.Trim(next, p.opts.MaxDepth)
	p.state = next
	p.stateMu.Unlock()

	p.log.Debug().
		Str("action", actionName(action)).
		Int("songs", len(next.Items)).
		Bool("can_undo", next.CanUndo()).
		Bool("can_redo", next.CanRedo()).
		Msg("dispatched")

	for _, fn := range p.observers() {
		fn(next)
	}

	return next.Clone()
}

// Subscribe registers fn to be called after each commit and returns a
// function that removes it.
func (p *Playlist) Subscribe(fn Observer) (unsubscribe func()) {
	p.subsMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.subsMu.Unlock()

	return func() {
		p.subsMu.Lock()
		delete(p.subs, id)
		p.subsMu.Unlock()
	}
}

func (p *Playlist) observers() []Observer {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()

	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	// Subscription order, so persistence (registered first) always runs first.
	slices.Sort(ids)

	out := make([]Observer, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.subs[id])
	}
	return out
}

// Flush waits until every committed state so far has been persisted.
func (p *Playlist) Flush(ctx context.Context) error {
	return p.bridge.Flush(ctx)
}

// Close persists any pending state and stops background work.
func (p *Playlist) Close(ctx context.Context) error {
	return p.bridge.Close(ctx)
}

func actionName(a history.Action[playlist.Song]) string {
	switch a.(type) {
	case history.AddAction[playlist.Song]:
		return "add"
	case history.RemoveAction[playlist.Song]:
		return "remove"
	case history.ClearAction[playlist.Song]:
		return "clear"
	case history.UndoAction[playlist.Song]:
		return "undo"
	case history.RedoAction[playlist.Song]:
		return "redo"
	case history.LoadAction[playlist.Song]:
		return "load"
	default:
		return "unknown"
	}
}
