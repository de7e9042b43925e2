// Package history implements snapshot-based undo/redo over an ordered list of
// items.
//
// A State holds the current items plus two stacks of snapshots: Past (oldest
// first) and Future (nearest first). Every transition is a pure function that
// returns a new State and leaves its input untouched; snapshots are copied so
// they never alias the live item list.
//
// Every Add, Remove and Clear records a history step, even when it does not
// change the items (removing an unknown ID, clearing an empty list).
package history

// Item is implemented by anything stored in a State.
type Item interface {
	ItemID() string
}

// Snapshot is an independent copy of the item list at one point in time.
type Snapshot[T Item] []T

// Stacks holds the undo and redo snapshots.
type Stacks[T Item] struct {
	Past   []Snapshot[T] `json:"past"`
	Future []Snapshot[T] `json:"future"`
}

// State is the full value managed by the store.
type State[T Item] struct {
	Items   []T       `json:"items"`
	History Stacks[T] `json:"history"`
}

// New returns an empty state.
func New[T Item]() State[T] {
	return State[T]{
		Items: []T{},
		History: Stacks[T]{
			Past:   []Snapshot[T]{},
			Future: []Snapshot[T]{},
		},
	}
}

// CanUndo reports whether Undo would change the state.
func (s State[T]) CanUndo() bool {
	return len(s.History.Past) > 0
}

// CanRedo reports whether Redo would change the state.
func (s State[T]) CanRedo() bool {
	return len(s.History.Future) > 0
}

// UndoDepth returns the number of undo steps available.
func (s State[T]) UndoDepth() int {
	return len(s.History.Past)
}

// RedoDepth returns the number of redo steps available.
func (s State[T]) RedoDepth() int {
	return len(s.History.Future)
}

// Clone returns a deep copy of the state. Nil slices come back empty, so a
// decoded state behaves and serializes the same as one built with New.
func (s State[T]) Clone() State[T] {
	return State[T]{
		Items: clone(s.Items),
		History: Stacks[T]{
			Past:   cloneStack(s.History.Past),
			Future: cloneStack(s.History.Future),
		},
	}
}

func clone[T Item](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func cloneStack[T Item](stack []Snapshot[T]) []Snapshot[T] {
	out := make([]Snapshot[T], len(stack))
	for i, snap := range stack {
		out[i] = clone([]T(snap))
	}
	return out
}
