package piecetext

import (
	"fmt"
	"testing"

	"github.com/wildp/treenote/internal/charbuf"
)

// typeStr inserts every rune of s one at a time at the end of line,
// exactly like a user typing, so the coalescing token sees a run of
// same-kind-same-position calls.
func typeStr(t *Text, buf *charbuf.Buffer, line int, s string) (line2, pos int) {
	pos = t.LineLength(line)
	for _, r := range s {
		start, n := buf.Append(string(r))
		_, inc := t.InsertStr(line, pos, buf, Piece{StartIndex: start, ByteLength: n, DisplayLength: 1})
		pos += inc
	}
	return line, pos
}

func ExampleText_InsertStr() {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")
	fmt.Println(text.ToStr(0))
	// Output:
	// hello
}

func TestInsertStrCoalescesSequentialTyping(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")
	if got := len(text.hist.commands); got != 1 {
		t.Fatalf("expected 1 history entry for 5 sequential inserts, got %d", got)
	}
}

func TestInsertStrBreaksCoalescingOnCursorJump(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "ab")
	// Insert at position 0 instead of continuing at the end: should not
	// coalesce with the previous command.
	start, n := buf.Append("x")
	text.InsertStr(0, 0, buf, Piece{StartIndex: start, ByteLength: n, DisplayLength: 1})
	if got := len(text.hist.commands); got != 2 {
		t.Fatalf("expected 2 history entries after a non-adjacent insert, got %d", got)
	}
	if got := text.ToStr(0); got != "xab" {
		t.Errorf("expected %q got %q", "xab", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")
	before := text.ToStr(0)

	if !text.Undo() {
		t.Fatal("expected Undo to succeed")
	}
	if got := text.ToStr(0); got != "" {
		t.Errorf("expected empty line after undoing coalesced insert, got %q", got)
	}
	if !text.Redo() {
		t.Fatal("expected Redo to succeed")
	}
	if got := text.ToStr(0); got != before {
		t.Errorf("expected %q after redo, got %q", before, got)
	}
}

func TestDeleteCharBeforeCoalescesBackspacing(t *testing.T) {
	buf := charbuf.New()
	text := New()
	line, pos := typeStr(text, buf, 0, "hello")
	text.ResetToken()

	for i := 0; i < 5; i++ {
		_, dec := text.DeleteCharBefore(line, pos)
		pos -= dec
	}
	if got := text.ToStr(0); got != "" {
		t.Fatalf("expected empty line after deleting every char, got %q", got)
	}
	// Five sequential backspaces from the same cursor tail should
	// coalesce into a single history entry on top of the single insert.
	if got := len(text.hist.commands); got != 2 {
		t.Fatalf("expected 2 history entries (insert + coalesced delete), got %d", got)
	}

	for text.Undo() {
	}
	if got := text.ToStr(0); got != "" {
		t.Errorf("expected empty line after undoing everything, got %q", got)
	}
	for text.Redo() {
	}
	// Redoing all the way back replays both the insert and the delete,
	// landing on the same (empty) state the history cursor started at.
	if got := text.ToStr(0); got != "" {
		t.Errorf("expected empty line after redoing everything, got %q", got)
	}
}

func TestDeleteCharCurrentDeletesForward(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")

	text.DeleteCharCurrent(0, 0)
	if got := text.ToStr(0); got != "ello" {
		t.Errorf("expected %q got %q", "ello", got)
	}

	if !text.Undo() {
		t.Fatal("expected Undo to succeed")
	}
	if got := text.ToStr(0); got != "hello" {
		t.Errorf("expected %q after undo, got %q", "hello", got)
	}
}

func TestMakeLineBreakAndJoinRoundTrip(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "helloworld")

	if !text.MakeLineBreak(0, 5) {
		t.Fatal("expected MakeLineBreak to succeed")
	}
	if got, want := text.LineCount(), 2; got != want {
		t.Fatalf("expected %d lines, got %d", want, got)
	}
	if got := text.ToStr(0); got != "hello" {
		t.Errorf("expected %q got %q", "hello", got)
	}
	if got := text.ToStr(1); got != "world" {
		t.Errorf("expected %q got %q", "world", got)
	}

	if !text.MakeLineJoin(0) {
		t.Fatal("expected MakeLineJoin to succeed")
	}
	if got, want := text.LineCount(), 1; got != want {
		t.Fatalf("expected %d line after join, got %d", want, got)
	}
	if got := text.ToStr(0); got != "helloworld" {
		t.Errorf("expected %q got %q", "helloworld", got)
	}

	if !text.Undo() {
		t.Fatal("expected undo of line_join to succeed")
	}
	if got, want := text.LineCount(), 2; got != want {
		t.Fatalf("expected %d lines after undoing the join, got %d", want, got)
	}
	if got := text.ToStr(0); got != "hello" || text.ToStr(1) != "world" {
		t.Errorf("expected the original split restored, got %q / %q", text.ToStr(0), text.ToStr(1))
	}
}

func TestLineBreakAtStartInsertsBlankLineAbove(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")

	text.MakeLineBreak(0, 0)
	if got := text.ToStr(0); got != "" {
		t.Errorf("expected blank line at index 0, got %q", got)
	}
	if got := text.ToStr(1); got != "hello" {
		t.Errorf("expected original content pushed to line 1, got %q", got)
	}
}

func TestMultibyteInsertAndDelete(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "héllo") // é is 2 bytes, 1 codepoint

	if got, want := text.LineLength(0), 5; got != want {
		t.Fatalf("expected display length %d, got %d", want, got)
	}
	if got := text.ToStr(0); got != "héllo" {
		t.Fatalf("expected %q got %q", "héllo", got)
	}

	// Delete the 'é' (display position 2, the char before position 2).
	text.ResetToken()
	text.DeleteCharBefore(0, 2)
	if got := text.ToStr(0); got != "hllo" {
		t.Errorf("expected %q got %q", "hllo", got)
	}

	if !text.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if got := text.ToStr(0); got != "héllo" {
		t.Errorf("expected %q after undo, got %q", "héllo", got)
	}
}

func TestToSubstrClipsToWindow(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello world")

	if got := text.ToSubstr(0, 6, 5); got != "world" {
		t.Errorf("expected %q got %q", "world", got)
	}
	if got := text.ToSubstr(0, 0, 5); got != "hello" {
		t.Errorf("expected %q got %q", "hello", got)
	}
}

func TestEmptyTextIsEmpty(t *testing.T) {
	text := New()
	if !text.Empty() {
		t.Error("expected a freshly constructed Text to be Empty")
	}
	buf := charbuf.New()
	typeStr(text, buf, 0, "x")
	if text.Empty() {
		t.Error("expected Text to stop being Empty after an insert")
	}
}

func TestMakeCopyIsIndependent(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")

	dup := text.MakeCopy()
	if got := dup.ToStr(0); got != "hello" {
		t.Fatalf("expected copy to start with %q, got %q", "hello", got)
	}
	if dup.Undo() {
		t.Error("expected the copy to start with empty, non-undoable history")
	}

	typeStr(dup, buf, 0, " there")
	if got := text.ToStr(0); got != "hello" {
		t.Errorf("expected original to be unaffected by edits to the copy, got %q", got)
	}
}

func TestInsertStrClampsOutOfRangeLine(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "abc")

	start, n := buf.Append("x")
	text.InsertStr(5, 99, buf, Piece{StartIndex: start, ByteLength: n, DisplayLength: 1})
	if got := text.ToStr(0); got != "abcx" {
		t.Errorf("expected out-of-range insert clamped to end of last line, got %q", got)
	}
}

func TestBufferMonogamyPanics(t *testing.T) {
	bufA := charbuf.New()
	bufB := charbuf.New()
	text := NewFromPiece(bufA, Piece{})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when inserting from a second buffer")
		}
	}()
	start, n := bufB.Append("x")
	text.InsertStr(0, 0, bufB, Piece{StartIndex: start, ByteLength: n, DisplayLength: 1})
}

func TestExecClearsRedoStackOnNewEdit(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "hello")
	text.ResetToken()
	if !text.Undo() {
		t.Fatal("expected undo to succeed")
	}
	// A fresh edit now truncates the redoable suffix (spec §4.3's
	// clear_hist_if_needed): the "hello" insert should no longer be
	// reachable via Redo once "hi" has been typed in its place.
	typeStr(text, buf, 0, "hi")
	if got := text.ToStr(0); got != "hi" {
		t.Fatalf("expected %q got %q", "hi", got)
	}
	if text.Redo() {
		t.Error("expected no redoable entry after a new edit truncated the history")
	}
}

// TestDeleteCharBeforePromotesToMultiCmd exercises the MultiCmd promotion
// path: backspacing across a singleton piece boundary (the 'x' inserted
// non-contiguously) forces the coalescing state machine to wrap the
// existing top command and append a new child, per spec §9's note on
// promoting a singleton command to a multi_cmd.
func TestDeleteCharBeforePromotesToMultiCmd(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "ab")
	// Insert "x" at the front: buffer-contiguous with nothing already in
	// the piece table at pos 0, so this starts its own command and
	// prepends a piece, giving the line two distinct pieces: "x" + "ab".
	start, n := buf.Append("x")
	text.InsertStr(0, 0, buf, Piece{StartIndex: start, ByteLength: n, DisplayLength: 1})
	if got := text.ToStr(0); got != "xab" {
		t.Fatalf("setup: expected %q got %q", "xab", got)
	}

	text.ResetToken()
	// Backspace three times from the end: deletes 'b', 'a' (both from the
	// second piece, a ShrinkRHS that is then replaced by a DeleteEntry), then 'x' (a
	// different piece entirely) — the third backspace must coalesce onto
	// the same history entry via MultiCmd promotion rather than starting a
	// fresh one, since the token still matches line/pos.
	pos := text.LineLength(0)
	for i := 0; i < 3; i++ {
		_, dec := text.DeleteCharBefore(0, pos)
		pos -= dec
	}
	if got := text.ToStr(0); got != "" {
		t.Fatalf("expected empty line after deleting every char, got %q", got)
	}
	if got := len(text.hist.commands); got != 3 {
		t.Fatalf("expected 3 history entries (the two separate inserts, plus one coalesced delete), got %d", got)
	}
	if _, ok := text.hist.commands[2].(*MultiCmd); !ok {
		t.Fatalf("expected the coalesced delete to have been promoted to a MultiCmd, got %T", text.hist.commands[2])
	}

	if !text.Undo() {
		t.Fatal("expected undo of the multi_cmd delete to succeed")
	}
	if got := text.ToStr(0); got != "xab" {
		t.Errorf("expected %q after undoing the multi_cmd delete, got %q", "xab", got)
	}
	if !text.Redo() {
		t.Fatal("expected redo of the multi_cmd delete to succeed")
	}
	if got := text.ToStr(0); got != "" {
		t.Errorf("expected %q after redoing the multi_cmd delete, got %q", "", got)
	}
}

func TestMakeLineJoinNoOpOnLastLine(t *testing.T) {
	text := New()
	if text.MakeLineJoin(0) {
		t.Error("expected MakeLineJoin to reject joining past the last line")
	}
}

func TestMakeLineBreakNoOpPastLineCount(t *testing.T) {
	text := New()
	if text.MakeLineBreak(5, 0) {
		t.Error("expected MakeLineBreak to reject a line index past line count")
	}
}

func TestInsertStrEmptyPieceIsNoOp(t *testing.T) {
	buf := charbuf.New()
	text := New()
	added, inc := text.InsertStr(0, 0, buf, Piece{DisplayLength: 0})
	if added || inc != 0 {
		t.Errorf("expected a zero-length insert to be a no-op, got added=%v inc=%d", added, inc)
	}
}

func TestDeleteCharBeforeAtLineStartIsNoOp(t *testing.T) {
	buf := charbuf.New()
	text := New()
	typeStr(text, buf, 0, "a")
	added, dec := text.DeleteCharBefore(0, 0)
	if added || dec != 0 {
		t.Errorf("expected DeleteCharBefore at pos 0 to be a no-op, got added=%v dec=%d", added, dec)
	}
}

func TestGetCurrentCmdName(t *testing.T) {
	buf := charbuf.New()
	text := New()
	if got := text.GetCurrentCmdName(); got != CmdNone {
		t.Fatalf("expected CmdNone on empty history, got %v", got)
	}
	typeStr(text, buf, 0, "a")
	if got := text.GetCurrentCmdName(); got != CmdInsertText {
		t.Errorf("expected CmdInsertText, got %v", got)
	}
	text.ResetToken()
	text.DeleteCharBefore(0, 1)
	if got := text.GetCurrentCmdName(); got != CmdDeleteText {
		t.Errorf("expected CmdDeleteText, got %v", got)
	}
}
