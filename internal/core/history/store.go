package history

// Action is a closed set of state transitions understood by Reduce.
type Action[T Item] interface {
	isAction()
}

// AddAction appends Item to the list.
type AddAction[T Item] struct {
	Item T
}

// RemoveAction removes every item whose ID equals ID.
type RemoveAction[T Item] struct {
	ID string
}

// ClearAction empties the list.
type ClearAction[T Item] struct{}

// UndoAction restores the most recent past snapshot.
type UndoAction[T Item] struct{}

// RedoAction restores the nearest future snapshot.
type RedoAction[T Item] struct{}

// LoadAction replaces the whole state, typically with one read from storage.
type LoadAction[T Item] struct {
	State State[T]
}

func (AddAction[T]) isAction()    {}
func (RemoveAction[T]) isAction() {}
func (ClearAction[T]) isAction()  {}
func (UndoAction[T]) isAction()   {}
func (RedoAction[T]) isAction()   {}
func (LoadAction[T]) isAction()   {}

// Reduce applies a to s and returns the next state. Unknown actions return s.
func Reduce[T Item](s State[T], a Action[T]) State[T] {
	switch a := a.(type) {
	case AddAction[T]:
		return Add(s, a.Item)
	case RemoveAction[T]:
		return Remove(s, a.ID)
	case ClearAction[T]:
		return Clear(s)
	case UndoAction[T]:
		return Undo(s)
	case RedoAction[T]:
		return Redo(s)
	case LoadAction[T]:
		return a.State.Clone()
	default:
		return s
	}
}

// Add appends item and records the previous list as an undo step.
func Add[T Item](s State[T], item T) State[T] {
	items := make([]T, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	items = append(items, item)
	return commit(s, items)
}

// Remove drops every item with the given ID. An unknown ID leaves the items
// unchanged but still records a history step.
func Remove[T Item](s State[T], id string) State[T] {
	items := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ItemID() != id {
			items = append(items, it)
		}
	}
	return commit(s, items)
}

// Clear empties the list and records a history step.
func Clear[T Item](s State[T]) State[T] {
	return commit(s, []T{})
}

// Undo moves the last past snapshot into Items and pushes the current items
// onto the front of Future. It is a no-op when there is nothing to undo.
func Undo[T Item](s State[T]) State[T] {
	if !s.CanUndo() {
		return s
	}

	last := len(s.History.Past) - 1
	past := cloneStack(s.History.Past[:last])

	future := make([]Snapshot[T], 0, len(s.History.Future)+1)
	future = append(future, clone(s.Items))
	future = append(future, cloneStack(s.History.Future)...)

	return State[T]{
		Items:   clone([]T(s.History.Past[last])),
		History: Stacks[T]{Past: past, Future: future},
	}
}

// Redo moves the first future snapshot into Items and appends the current
// items to Past. It is a no-op when there is nothing to redo.
func Redo[T Item](s State[T]) State[T] {
	if !s.CanRedo() {
		return s
	}

	past := make([]Snapshot[T], 0, len(s.History.Past)+1)
	past = append(past, cloneStack(s.History.Past)...)
	past = append(past, clone(s.Items))

	return State[T]{
		Items:   clone([]T(s.History.Future[0])),
		History: Stacks[T]{Past: past, Future: cloneStack(s.History.Future[1:])},
	}
}

// Trim discards the oldest past snapshots so at most max remain. A max of zero
// or less leaves the state unchanged.
func Trim[T Item](s State[T], max int) State[T] {
	if max <= 0 || len(s.History.Past) <= max {
		return s
	}

	excess := len(s.History.Past) - max
	return State[T]{
		Items: s.Items,
		History: Stacks[T]{
			Past:   s.History.Past[excess:],
			Future: s.History.Future,
		},
	}
}

// commit records s.Items as an undo step, installs items and drops the redo
// stack.
func commit[T Item](s State[T], items []T) State[T] {
	past := make([]Snapshot[T], 0, len(s.History.Past)+1)
	past = append(past, cloneStack(s.History.Past)...)
	past = append(past, clone(s.Items))

	return State[T]{
		Items:   items,
		History: Stacks[T]{Past: past, Future: []Snapshot[T]{}},
	}
}
