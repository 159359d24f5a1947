package text

import "testing"

// TestInsertCommitUndoRestores reproduces the spec's round-trip:
// insert(s); commit(); undo() restores prior content and cursor.
func TestInsertCommitUndoRestores(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("hello")
	e.Commit()

	if got := e.Buf.String(); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if !e.Undo() {
		t.Fatalf("expected Undo to succeed")
	}
	if got := e.Buf.String(); got != "" {
		t.Fatalf("expected undo to restore empty buffer, got %q", got)
	}
	if e.Cursor.Line != 0 || e.Cursor.Col != 0 {
		t.Fatalf("expected cursor restored to (0,0), got %+v", e.Cursor)
	}
}

func TestUndoNoopWhenEmpty(t *testing.T) {
	e := NewEditBuffer()
	if e.Undo() {
		t.Fatalf("expected Undo on a fresh buffer to be a no-op")
	}
}

func TestRedoReappliesUndoneEdit(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("abc")
	e.Commit()
	e.Undo()
	if got := e.Buf.String(); got != "" {
		t.Fatalf("expected undone state, got %q", got)
	}
	if !e.Redo() {
		t.Fatalf("expected Redo to succeed")
	}
	if got := e.Buf.String(); got != "abc" {
		t.Fatalf("expected redo to restore %q, got %q", "abc", got)
	}
}

func TestNewEditAfterUndoClearsRedoStack(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("abc")
	e.Commit()
	e.Undo()
	e.Insert("xyz")
	if e.Redo() {
		t.Fatalf("expected Redo to be unavailable after a fresh edit following Undo")
	}
}

// TestConsecutiveInsertsCoalesceIntoOneUndoGroup exercises the implicit
// commit boundary: several Insert calls with no intervening motion or
// explicit Commit collapse into a single undo step.
func TestConsecutiveInsertsCoalesceIntoOneUndoGroup(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("a")
	e.Insert("b")
	e.Insert("c")
	if got := e.Buf.String(); got != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
	if !e.Undo() {
		t.Fatalf("expected one undo step to be available")
	}
	if got := e.Buf.String(); got != "" {
		t.Fatalf("expected a single undo to revert all three inserts, got %q", got)
	}
	if e.Undo() {
		t.Fatalf("expected only one undo group for the coalesced inserts")
	}
}

// TestMotionBetweenEditsOpensNewUndoGroup reproduces spec §4.3's "An
// implicit commit occurs when the cursor moves across a commit boundary
// (any non-edit operation following an edit)": a motion between two edits
// splits them into two separately undoable groups.
func TestMotionBetweenEditsOpensNewUndoGroup(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("ab")
	e.MoveLeft() // non-edit op: closes the first group
	e.Insert("c")

	if got := e.Buf.String(); got != "acb" {
		t.Fatalf("expected %q, got %q", "acb", got)
	}
	if !e.Undo() {
		t.Fatalf("expected a first undo step")
	}
	if got := e.Buf.String(); got != "ab" {
		t.Fatalf("expected the second group's edit alone reverted, got %q", got)
	}
	if !e.Undo() {
		t.Fatalf("expected a second undo step")
	}
	if got := e.Buf.String(); got != "" {
		t.Fatalf("expected the first group's edit reverted, got %q", got)
	}
}

func TestExplicitCommitSplitsGroupsWithoutMotion(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("a")
	e.Commit()
	e.Insert("b")

	if !e.Undo() {
		t.Fatalf("expected a first undo step")
	}
	if got := e.Buf.String(); got != "a" {
		t.Fatalf("expected only the second insert reverted, got %q", got)
	}
}

func TestDeleteBackwardJoinsPreviousLine(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("foo\nbar")
	e.Cursor = Cursor{Line: 1, Col: 0}
	e.DeleteBackward()
	if got := e.Buf.String(); got != "foobar" {
		t.Fatalf("expected joined line %q, got %q", "foobar", got)
	}
	if e.Cursor.Line != 0 || e.Cursor.Col != 3 {
		t.Fatalf("expected cursor at the join point (0,3), got %+v", e.Cursor)
	}
}

func TestDeleteBackwardRemovesGraphemeCluster(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("漢字")
	e.DeleteBackward()
	if got := e.Buf.String(); got != "漢" {
		t.Fatalf("expected one grapheme removed, got %q", got)
	}
}

func TestDeleteForwardJoinsNextLine(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("foo\nbar")
	e.Cursor = Cursor{Line: 0, Col: 3}
	e.DeleteForward()
	if got := e.Buf.String(); got != "foobar" {
		t.Fatalf("expected joined line %q, got %q", "foobar", got)
	}
}

func TestMoveLeftRightWrapLines(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("ab\ncd")
	e.Commit()
	e.Cursor = Cursor{Line: 1, Col: 0}
	e.MoveLeft()
	if e.Cursor.Line != 0 || e.Cursor.Col != 2 {
		t.Fatalf("expected wrap to end of previous line, got %+v", e.Cursor)
	}
	e.MoveRight()
	if e.Cursor.Line != 1 || e.Cursor.Col != 0 {
		t.Fatalf("expected wrap to start of next line, got %+v", e.Cursor)
	}
}

// TestMoveUpDownPreservesDesiredColumn reproduces the cursor invariant:
// moving through a short line and back to a long one restores the
// original column.
func TestMoveUpDownPreservesDesiredColumn(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("long line\nhi\nlong line")
	e.Commit()
	e.Cursor = Cursor{Line: 2, Col: 9, DesiredCol: 9}

	e.MoveUp() // onto "hi", column clamped to 2
	if e.Cursor.Col != 2 {
		t.Fatalf("expected clamp to short line length, got %d", e.Cursor.Col)
	}
	e.MoveUp() // back onto the first long line, desired column restored
	if e.Cursor.Col != 9 {
		t.Fatalf("expected desired column restored to 9, got %d", e.Cursor.Col)
	}
}

func TestDeleteRangeSingleLine(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("hello world")
	e.Commit()
	e.DeleteRange(0, 5, 0, 11)
	if got := e.Buf.String(); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestDeleteRangeMultiLine(t *testing.T) {
	e := NewEditBuffer()
	e.Insert("one\ntwo\nthree")
	e.Commit()
	e.DeleteRange(0, 1, 2, 2)
	if got := e.Buf.String(); got != "oree" {
		t.Fatalf("expected %q, got %q", "oree", got)
	}
}
