// Package history keeps the linear undo/redo timeline of full-model
// snapshots. One discrete user interaction (a drag, a keystroke edit, a
// paste) produces at most one timeline entry.
package history

import (
	"github.com/example/pagemark/internal/shape"
)

// Timeline is a linear list of snapshots plus a cursor. It is not a tree:
// committing while undone discards the stale redo branch.
type Timeline struct {
	snapshots []*shape.Model
	index     int
	pending   bool
	dirty     bool
}

// New creates a timeline seeded with a snapshot of the initial model, so
// undoing the first interaction returns to it.
func New(initial *shape.Model) *Timeline {
	return &Timeline{snapshots: []*shape.Model{initial.Clone()}}
}

// Begin marks the start of an interaction during which the model may
// change.
func (t *Timeline) Begin() {
	t.pending = true
	t.dirty = false
}

// MarkDirty records that the current interaction mutated the model.
func (t *Timeline) MarkDirty() {
	if t.pending {
		t.dirty = true
	}
}

// InProgress reports whether an interaction is open.
func (t *Timeline) InProgress() bool { return t.pending }

// Commit closes the interaction and appends a snapshot of m if it differs
// from the snapshot at the cursor. Committing an unchanged model is a
// no-op, so calling Commit twice in a row never grows the timeline.
func (t *Timeline) Commit(m *shape.Model) {
	t.pending = false
	t.dirty = false
	if m.Equal(t.snapshots[t.index]) {
		return
	}
	t.snapshots = append(t.snapshots[:t.index+1], m.Clone())
	t.index++
}

// CanUndo reports whether an earlier snapshot exists.
func (t *Timeline) CanUndo() bool { return t.index > 0 }

// CanRedo reports whether a later snapshot exists.
func (t *Timeline) CanRedo() bool { return t.index < len(t.snapshots)-1 }

// Undo moves the cursor back and returns a copy of that snapshot, or nil at
// the start of the timeline.
func (t *Timeline) Undo() *shape.Model {
	if !t.CanUndo() {
		return nil
	}
	t.index--
	return t.snapshots[t.index].Clone()
}

// Redo moves the cursor forward and returns a copy of that snapshot, or nil
// at the end of the timeline.
func (t *Timeline) Redo() *shape.Model {
	if !t.CanRedo() {
		return nil
	}
	t.index++
	return t.snapshots[t.index].Clone()
}

// Len returns the number of snapshots in the timeline.
func (t *Timeline) Len() int { return len(t.snapshots) }
