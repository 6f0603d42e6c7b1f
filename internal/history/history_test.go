package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/shape"
)

func TestCommitAppendsOnlyOnChange(t *testing.T) {
	m := shape.NewModel()
	tl := New(m)

	tl.Begin()
	tl.Commit(m)
	if tl.Len() != 1 {
		t.Fatalf("unchanged commit grew timeline to %d", tl.Len())
	}

	m.Rects = append(m.Rects, shape.Rect{X: 1, Y: 2, W: 3, H: 4})
	tl.Begin()
	tl.Commit(m)
	if tl.Len() != 2 {
		t.Fatalf("timeline length = %d, want 2", tl.Len())
	}

	// idempotence: committing again without a mutation adds nothing
	tl.Commit(m)
	if tl.Len() != 2 {
		t.Fatalf("repeated commit grew timeline to %d", tl.Len())
	}
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	m := shape.NewModel()
	tl := New(m)

	m.Rects = append(m.Rects, shape.Rect{X: 10, Y: 10, W: 40, H: 30})
	tl.Commit(m)
	m.Circles = append(m.Circles, shape.Circle{X: 5, Y: 5, R: 2})
	tl.Commit(m)

	want := m.Clone()
	undone := tl.Undo()
	if undone == nil || len(undone.Circles) != 0 || len(undone.Rects) != 1 {
		t.Fatalf("unexpected model after undo: %+v", undone)
	}
	redone := tl.Redo()
	if redone == nil {
		t.Fatal("redo returned nil")
	}
	if diff := cmp.Diff(want, redone); diff != "" {
		t.Fatalf("redo did not restore state:\n%s", diff)
	}
}

func TestUndoAtBoundaryIsNoop(t *testing.T) {
	tl := New(shape.NewModel())
	if tl.Undo() != nil {
		t.Error("undo at index 0 should be a no-op")
	}
	if tl.Redo() != nil {
		t.Error("redo at last index should be a no-op")
	}
}

func TestCommitDiscardsRedoBranch(t *testing.T) {
	m := shape.NewModel()
	tl := New(m)

	m.Rects = append(m.Rects, shape.Rect{W: 1, H: 1})
	tl.Commit(m)
	m.Rects = append(m.Rects, shape.Rect{W: 2, H: 2})
	tl.Commit(m)

	m = tl.Undo()
	if !tl.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	m.Arrows = append(m.Arrows, shape.Arrow{X2: 9, Y2: 9})
	tl.Commit(m)
	if tl.CanRedo() {
		t.Fatal("stale redo branch survived a commit")
	}
	if tl.Len() != 3 {
		t.Fatalf("timeline length = %d, want 3", tl.Len())
	}
}

func TestSnapshotsDoNotAliasLiveModel(t *testing.T) {
	m := shape.NewModel()
	m.Freehands = append(m.Freehands, shape.Freehand{Points: []geom.Point{{X: 1, Y: 1}}})
	tl := New(m)

	// mutate the live model after seeding; the seed snapshot must not see it
	m.Freehands[0].Points[0].X = 99
	tl.Commit(m)
	back := tl.Undo()
	if back.Freehands[0].Points[0].X != 1 {
		t.Fatalf("seed snapshot aliased live points: %+v", back.Freehands[0].Points)
	}
}
