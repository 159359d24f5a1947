package text

import (
	textunicode "github.com/kungfusheep/opentuigo/unicode"
)

// Cursor is a (line, column) position, columns addressed by byte offset
// within the line, plus the desired column remembered across vertical
// moves (so j/k through a short line and back to a long one restores the
// original column, matching cmd/minivim's Window.Col bookkeeping).
type Cursor struct {
	Line, Col int
	DesiredCol int
}

// editSnapshot is one committed undo/redo entry: a full copy of the
// buffer's lines and the cursor at that point. Grounded on cmd/minivim's
// EditorState{Lines, Cursor, Col} + saveUndo/undo/redo.
type editSnapshot struct {
	lines  []string
	cursor Cursor
}

// EditBuffer pairs a Buffer with a cursor and snapshot-based undo/redo
// history. Invariant: Cursor is always a valid grapheme boundary; Undo
// exactly reverses the sequence of Commit-ed edits.
//
// Commit boundaries are normally implicit (spec §4.3: "An implicit commit
// occurs when the cursor moves across a commit boundary (any non-edit
// operation following an edit)"): the first mutating call after a boundary
// pushes a pre-edit snapshot and opens a group; further mutating calls
// coalesce into that same group; the next non-edit call (a motion, or an
// explicit Commit) closes the group so the following edit opens a fresh
// one. Explicit Commit is still exposed for callers that want a boundary
// without an intervening motion (e.g. between two back-to-back Inserts
// that should undo separately).
type EditBuffer struct {
	Buf    *Buffer
	Cursor Cursor

	undoStack []editSnapshot
	redoStack []editSnapshot
	pending   bool // an edit group is open: its pre-edit snapshot is already on undoStack
}

// NewEditBuffer wraps an empty Buffer.
func NewEditBuffer() *EditBuffer {
	return &EditBuffer{Buf: New()}
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// snapshot captures the current lines/cursor without touching the stacks.
func (e *EditBuffer) snapshot() editSnapshot {
	return editSnapshot{lines: cloneLines(e.Buf.lines), cursor: e.Cursor}
}

// beginEdit opens a new undo group if one isn't already open, capturing
// the pre-edit state. Every mutating operation calls this first.
func (e *EditBuffer) beginEdit() {
	if e.pending {
		return
	}
	e.undoStack = append(e.undoStack, e.snapshot())
	e.redoStack = nil
	e.pending = true
}

// Commit closes the currently open edit group (if any), so that the next
// mutating call opens a fresh undo boundary instead of coalescing into the
// previous group. Equivalent to the implicit boundary a motion creates,
// exposed for callers that want to force a split without moving the
// cursor.
func (e *EditBuffer) Commit() {
	e.pending = false
}

// Undo restores the most recently committed state, pushing the current
// state onto the redo stack. No-op if there is nothing to undo.
func (e *EditBuffer) Undo() bool {
	e.pending = false
	if len(e.undoStack) == 0 {
		return false
	}
	e.redoStack = append(e.redoStack, e.snapshot())
	prev := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.Buf.lines = cloneLines(prev.lines)
	e.Cursor = prev.cursor
	return true
}

// Redo re-applies the most recently undone state. No-op if there is
// nothing to redo.
func (e *EditBuffer) Redo() bool {
	e.pending = false
	if len(e.redoStack) == 0 {
		return false
	}
	e.undoStack = append(e.undoStack, e.snapshot())
	next := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.Buf.lines = cloneLines(next.lines)
	e.Cursor = next.cursor
	return true
}

func (e *EditBuffer) clampCursor() {
	if e.Cursor.Line < 0 {
		e.Cursor.Line = 0
	}
	if e.Cursor.Line >= e.Buf.LineCount() {
		e.Cursor.Line = e.Buf.LineCount() - 1
	}
	n := len(e.Buf.Line(e.Cursor.Line))
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
	if e.Cursor.Col > n {
		e.Cursor.Col = n
	}
}

// Insert inserts s at the cursor, advancing the cursor past it. Multi-line
// s (containing "\n") splits the current line accordingly.
func (e *EditBuffer) Insert(s string) {
	e.beginEdit()
	line := e.Buf.Line(e.Cursor.Line)
	before := line[:e.Cursor.Col]
	after := line[e.Cursor.Col:]

	parts := splitLines(s)
	if len(parts) == 1 {
		e.Buf.lines[e.Cursor.Line] = before + parts[0] + after
		e.Cursor.Col = len(before) + len(parts[0])
		e.syncDesiredCol()
		return
	}

	e.Buf.lines[e.Cursor.Line] = before + parts[0]
	tail := make([]string, len(parts)-1)
	copy(tail, parts[1:])
	tail[len(tail)-1] += after

	rest := make([]string, len(e.Buf.lines)-e.Cursor.Line-1)
	copy(rest, e.Buf.lines[e.Cursor.Line+1:])
	e.Buf.lines = append(e.Buf.lines[:e.Cursor.Line+1], append(tail, rest...)...)

	e.Cursor.Line += len(parts) - 1
	e.Cursor.Col = len(parts[len(parts)-1])
	e.syncDesiredCol()
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// DeleteBackward deletes the grapheme cluster before the cursor (backspace),
// joining with the previous line at column 0.
func (e *EditBuffer) DeleteBackward() {
	e.beginEdit()
	if e.Cursor.Col == 0 {
		if e.Cursor.Line == 0 {
			return
		}
		prevLen := len(e.Buf.Line(e.Cursor.Line - 1))
		e.Buf.lines[e.Cursor.Line-1] += e.Buf.Line(e.Cursor.Line)
		e.Buf.removeLineAt(e.Cursor.Line)
		e.Cursor.Line--
		e.Cursor.Col = prevLen
		e.syncDesiredCol()
		return
	}
	line := e.Buf.Line(e.Cursor.Line)
	g := lastGrapheme(line[:e.Cursor.Col], "")
	start := e.Cursor.Col - len(g)
	if g == "" {
		start = e.Cursor.Col - 1
	}
	e.Buf.lines[e.Cursor.Line] = line[:start] + line[e.Cursor.Col:]
	e.Cursor.Col = start
	e.syncDesiredCol()
}

func lastGrapheme(s string, fallback string) string {
	var last string
	for _, g := range textunicode.Graphemes(s) {
		last = g.Text
	}
	if last == "" {
		return fallback
	}
	return last
}

// DeleteForward deletes the grapheme cluster at the cursor (delete key),
// joining with the next line at end of line.
func (e *EditBuffer) DeleteForward() {
	e.beginEdit()
	line := e.Buf.Line(e.Cursor.Line)
	if e.Cursor.Col >= len(line) {
		if e.Cursor.Line >= e.Buf.LineCount()-1 {
			return
		}
		e.Buf.lines[e.Cursor.Line] = line + e.Buf.Line(e.Cursor.Line+1)
		e.Buf.removeLineAt(e.Cursor.Line + 1)
		return
	}
	_, size := textunicode.FirstGrapheme(line[e.Cursor.Col:])
	if size == 0 {
		size = 1
	}
	e.Buf.lines[e.Cursor.Line] = line[:e.Cursor.Col] + line[e.Cursor.Col+size:]
}

// DeleteRange deletes text from (startLine,startCol) to (endLine,endCol)
// (end exclusive), matching the Range semantics used by motion operators.
func (e *EditBuffer) DeleteRange(startLine, startCol, endLine, endCol int) {
	e.beginEdit()
	if startLine == endLine {
		line := e.Buf.Line(startLine)
		e.Buf.lines[startLine] = line[:startCol] + line[endCol:]
		e.Cursor = Cursor{Line: startLine, Col: startCol}
		e.syncDesiredCol()
		return
	}
	startText := e.Buf.Line(startLine)[:startCol]
	endText := e.Buf.Line(endLine)[endCol:]
	merged := startText + endText
	n := endLine - startLine
	e.Buf.lines[startLine] = merged
	e.Buf.lines = append(e.Buf.lines[:startLine+1], e.Buf.lines[startLine+1+n:]...)
	e.Cursor = Cursor{Line: startLine, Col: startCol}
	e.syncDesiredCol()
}

// MoveLeft moves the cursor left by one grapheme cluster, wrapping to the
// end of the previous line at column 0.
func (e *EditBuffer) MoveLeft() {
	e.pending = false
	if e.Cursor.Col == 0 {
		if e.Cursor.Line > 0 {
			e.Cursor.Line--
			e.Cursor.Col = len(e.Buf.Line(e.Cursor.Line))
		}
		e.syncDesiredCol()
		return
	}
	line := e.Buf.Line(e.Cursor.Line)
	g := lastGrapheme(line[:e.Cursor.Col], "")
	e.Cursor.Col -= len(g)
	if len(g) == 0 {
		e.Cursor.Col--
	}
	e.syncDesiredCol()
}

// MoveRight moves the cursor right by one grapheme cluster, wrapping to the
// start of the next line at end of line.
func (e *EditBuffer) MoveRight() {
	e.pending = false
	line := e.Buf.Line(e.Cursor.Line)
	if e.Cursor.Col >= len(line) {
		if e.Cursor.Line < e.Buf.LineCount()-1 {
			e.Cursor.Line++
			e.Cursor.Col = 0
		}
		e.syncDesiredCol()
		return
	}
	_, size := textunicode.FirstGrapheme(line[e.Cursor.Col:])
	if size == 0 {
		size = 1
	}
	e.Cursor.Col += size
	e.syncDesiredCol()
}

// MoveUp moves the cursor up one line, restoring the desired column.
func (e *EditBuffer) MoveUp() {
	e.pending = false
	if e.Cursor.Line == 0 {
		return
	}
	e.Cursor.Line--
	e.restoreDesiredCol()
}

// MoveDown moves the cursor down one line, restoring the desired column.
func (e *EditBuffer) MoveDown() {
	e.pending = false
	if e.Cursor.Line >= e.Buf.LineCount()-1 {
		return
	}
	e.Cursor.Line++
	e.restoreDesiredCol()
}

func (e *EditBuffer) syncDesiredCol() {
	e.Cursor.DesiredCol = e.Cursor.Col
}

func (e *EditBuffer) restoreDesiredCol() {
	n := len(e.Buf.Line(e.Cursor.Line))
	if e.Cursor.DesiredCol > n {
		e.Cursor.Col = n
	} else {
		e.Cursor.Col = e.Cursor.DesiredCol
	}
}

// MoveWordForward moves to the start of the next word, grounded on
// cmd/minivim's wordForward.
func (e *EditBuffer) MoveWordForward() {
	e.pending = false
	line := e.Buf.Line(e.Cursor.Line)
	next := textunicode.WordForward(line, e.Cursor.Col)
	if next >= len(line) && e.Cursor.Line < e.Buf.LineCount()-1 {
		e.Cursor.Line++
		e.Cursor.Col = 0
	} else {
		e.Cursor.Col = next
	}
	e.syncDesiredCol()
}

// MoveWordBackward moves to the start of the previous word, grounded on
// cmd/minivim's wordBackward.
func (e *EditBuffer) MoveWordBackward() {
	e.pending = false
	if e.Cursor.Col == 0 {
		if e.Cursor.Line > 0 {
			e.Cursor.Line--
			e.Cursor.Col = len(e.Buf.Line(e.Cursor.Line))
		}
	}
	line := e.Buf.Line(e.Cursor.Line)
	e.Cursor.Col = textunicode.WordBackward(line, e.Cursor.Col)
	e.syncDesiredCol()
}

// MoveWordEnd moves to the end of the current or next word, grounded on
// cmd/minivim's wordEnd.
func (e *EditBuffer) MoveWordEnd() {
	e.pending = false
	line := e.Buf.Line(e.Cursor.Line)
	e.Cursor.Col = textunicode.WordEnd(line, e.Cursor.Col)
	if e.Cursor.Col > 0 {
		e.Cursor.Col--
	}
	e.syncDesiredCol()
}
