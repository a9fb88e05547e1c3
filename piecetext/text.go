package piecetext

import (
	"github.com/wildp/treenote/internal/charbuf"
)

// maxHistoryEntries bounds the undo history so it cannot grow without
// limit. spec §9 notes the original bound (the largest representable
// distance) is effectively unreachable and that implementations may
// pick a smaller constant as long as the halving-on-overflow policy
// (history.clearIfNeeded) is preserved.
const maxHistoryEntries = 10000

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenInsertion
	tokenDeletionBefore
	tokenDeletionCurrent
	tokenLineBreak
	tokenLineJoin
)

// token records the tail of the last public mutation, so the next public
// call can decide whether to coalesce into the last history entry or
// start a new one (spec §3.1, §4.4).
type token struct {
	kind tokenKind
	line int
	pos  int
}

func (t *token) check(kind tokenKind, line, pos int) bool {
	return t.kind == kind && t.line == line && t.pos == pos
}

func (t *token) acquire(kind tokenKind, line, pos int) {
	t.kind, t.line, t.pos = kind, line, pos
}

// reset forgets the coalescing context. Callers invoke this whenever a
// user action outside this engine breaks the run of keystrokes (a mouse
// click, an arrow-key cursor move, switching notes).
func (t *token) reset() {
	*t = token{}
}

// history is the undo/redo command log plus its cursor (spec §3.1).
// Commands [0, pos) are applied; [pos, end) are redoable.
type history struct {
	commands []Command
	pos      int
}

// clearIfNeeded implements spec §4.3's clear_hist_if_needed, called by
// exec before a new command is appended.
func (h *history) clearIfNeeded() {
	switch {
	case h.pos < len(h.commands):
		h.commands = h.commands[:h.pos]
	case h.pos == len(h.commands):
		if h.pos == maxHistoryEntries {
			half := h.pos / 2
			trimmed := make([]Command, len(h.commands)-half)
			copy(trimmed, h.commands[half:])
			h.commands = trimmed
			h.pos = len(h.commands)
		}
	default:
		panic(&InvariantError{Op: "history: pos exceeds length"})
	}
}

func (h *history) push(cmd Command) {
	h.commands = append(h.commands, cmd)
	h.pos = len(h.commands)
}

// CmdName classifies a command for GetCurrentCmdName (spec §4.5).
type CmdName int

const (
	CmdNone CmdName = iota
	CmdInsertText
	CmdDeleteText
	CmdLineBreak
	CmdLineJoin
	CmdError
)

var cmdNameByLabel = map[string]CmdName{
	"insert_text": CmdInsertText,
	"delete_text": CmdDeleteText,
	"line_break":  CmdLineBreak,
	"line_join":   CmdLineJoin,
	"error":       CmdError,
}

// Text is a single note's piece table: an ordered, always-non-empty
// sequence of lines, a handle to the shared buffer its pieces point
// into, its undo/redo history, and the coalescing token.
//
// A Text is not safe for concurrent use.
type Text struct {
	lines  [][]Piece
	buffer *charbuf.Buffer
	hist   history
	tok    token
}

// New returns an empty Text: no buffer, one empty line, empty history.
func New() *Text {
	return &Text{lines: [][]Piece{nil}}
}

// NewFromPiece returns a Text with a single line containing piece (or an
// empty line, if piece.DisplayLength == 0), referencing buf.
func NewFromPiece(buf *charbuf.Buffer, piece Piece) *Text {
	t := &Text{buffer: buf}
	if piece.DisplayLength > 0 {
		t.lines = [][]Piece{{piece}}
	} else {
		t.lines = [][]Piece{nil}
	}
	return t
}

// AddLine appends a new line during bulk loading. If t has no buffer
// handle yet, buf becomes it; otherwise AddLine enforces buffer monogamy
// (spec §3.1, §3.2) exactly like InsertStr.
func (t *Text) AddLine(buf *charbuf.Buffer, piece Piece) {
	if t.buffer == nil {
		t.buffer = buf
	} else if t.buffer != buf {
		panic(&BufferMonogamyError{Op: "AddLine"})
	}
	if piece.DisplayLength > 0 {
		t.lines = append(t.lines, []Piece{piece})
	} else {
		t.lines = append(t.lines, nil)
	}
}

// MakeCopy returns a deep copy of t's lines and pieces, sharing the same
// buffer handle. History is not copied — the copy starts with a fresh,
// empty history and a reset token, per spec §6.
func (t *Text) MakeCopy() *Text {
	newLines := make([][]Piece, len(t.lines))
	for i, l := range t.lines {
		if l == nil {
			continue
		}
		nl := make([]Piece, len(l))
		copy(nl, l)
		newLines[i] = nl
	}
	return &Text{lines: newLines, buffer: t.buffer}
}

// ResetToken forgets the coalescing context (spec §6, token.reset).
func (t *Text) ResetToken() {
	t.tok.reset()
}

// LineCount returns the number of lines in the text. Always >= 1.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// LineLength returns the display length (codepoint count) of line.
func (t *Text) LineLength(line int) int {
	if line < 0 || line >= len(t.lines) {
		return 0
	}
	return lineDisplayLength(t.lines[line])
}

// Empty reports whether the history is empty and every line is an empty
// piece sequence (spec §4.5).
func (t *Text) Empty() bool {
	if len(t.hist.commands) != 0 {
		return false
	}
	for _, l := range t.lines {
		if len(l) != 0 {
			return false
		}
	}
	return true
}

// ToStr concatenates the byte slices of every piece on line by reading
// through the buffer handle.
func (t *Text) ToStr(line int) string {
	l := t.lines[line]
	if t.buffer == nil {
		if len(l) == 0 {
			return ""
		}
		panic(&MissingBufferError{Op: "ToStr"})
	}
	ranges := make([][2]int, len(l))
	for i, p := range l {
		ranges[i] = [2]int{p.StartIndex, p.ByteLength}
	}
	views := t.buffer.ToStrView(ranges)
	total := 0
	for _, v := range views {
		total += len(v)
	}
	out := make([]byte, 0, total)
	for _, v := range views {
		out = append(out, v...)
	}
	return string(out)
}

// ToSubstr returns the substring of line starting at display-position pos
// spanning length codepoints, clipped to the line's pieces.
func (t *Text) ToSubstr(line, pos, length int) string {
	l := t.lines[line]
	if t.buffer == nil {
		if len(l) == 0 {
			return ""
		}
		panic(&MissingBufferError{Op: "ToSubstr"})
	}
	ranges := make([][2]int, len(l))
	for i, p := range l {
		ranges[i] = [2]int{p.StartIndex, p.ByteLength}
	}

	byteStart := 0
	remaining := pos
	for _, p := range l {
		if remaining <= 0 {
			break
		}
		if remaining >= p.DisplayLength {
			byteStart += p.ByteLength
			remaining -= p.DisplayLength
		} else {
			byteStart += byteOffsetForDisplayPos(t.buffer, p, remaining)
			remaining = 0
		}
	}

	byteLen := 0
	covered := 0
	for _, p := range l {
		if covered >= pos+length {
			break
		}
		pieceStart := covered
		pieceEnd := covered + p.DisplayLength
		covered = pieceEnd
		if pieceEnd <= pos {
			continue
		}
		lo := pos
		if lo < pieceStart {
			lo = pieceStart
		}
		hi := pos + length
		if hi > pieceEnd {
			hi = pieceEnd
		}
		if hi <= lo {
			continue
		}
		loOff := byteOffsetForDisplayPos(t.buffer, p, lo-pieceStart)
		hiOff := byteOffsetForDisplayPos(t.buffer, p, hi-pieceStart)
		byteLen += hiOff - loOff
	}

	return string(t.buffer.ToSubstrView(ranges, byteStart, byteLen))
}

// GetCurrentCmdName classifies the command at the history cursor (spec
// §4.5).
func (t *Text) GetCurrentCmdName() CmdName {
	if t.hist.pos == 0 {
		return CmdNone
	}
	label := classifyCommand(t.hist.commands[t.hist.pos-1])
	return cmdNameByLabel[label]
}

// Undo reverses the command immediately before the history cursor and
// moves the cursor back over it.
func (t *Text) Undo() bool {
	if t.hist.pos == 0 {
		return false
	}
	t.hist.pos--
	t.invokeReverse(t.hist.commands[t.hist.pos])
	return true
}

// Redo re-applies the command at the history cursor and advances past
// it.
func (t *Text) Redo() bool {
	if t.hist.pos >= len(t.hist.commands) {
		return false
	}
	t.invoke(t.hist.commands[t.hist.pos])
	t.hist.pos++
	return true
}

// exec truncates the redo suffix, invokes cmd, and appends it to history
// (spec §4.3).
func (t *Text) exec(cmd Command) {
	t.hist.clearIfNeeded()
	t.invoke(cmd)
	t.hist.push(cmd)
}

// getTopSubCmd returns the command the next coalescing decision should
// inspect: the last history entry, or — if that entry is a MultiCmd —
// its last child (spec §9: "descending one level through multi_cmd").
func (t *Text) getTopSubCmd() Command {
	n := len(t.hist.commands)
	if n == 0 {
		return nil
	}
	top := t.hist.commands[n-1]
	if m, ok := top.(*MultiCmd); ok {
		if len(m.Commands) == 0 {
			return nil
		}
		return m.Commands[len(m.Commands)-1]
	}
	return top
}

// setTopSubCmd replaces whatever getTopSubCmd would currently return,
// writing through to the MultiCmd's last slot if the top entry is one.
func (t *Text) setTopSubCmd(newCmd Command) {
	n := len(t.hist.commands)
	top := t.hist.commands[n-1]
	if m, ok := top.(*MultiCmd); ok {
		m.Commands[len(m.Commands)-1] = newCmd
		return
	}
	t.hist.commands[n-1] = newCmd
}

// promoteTopAndAppend wraps the current top history entry in a MultiCmd
// (if it is not one already), appends newCmd as its newest child, and
// invokes it.
func (t *Text) promoteTopAndAppend(newCmd Command) {
	n := len(t.hist.commands)
	top := t.hist.commands[n-1]
	m, ok := top.(*MultiCmd)
	if !ok {
		m = &MultiCmd{Commands: []Command{top}}
		t.hist.commands[n-1] = m
	}
	m.Commands = append(m.Commands, newCmd)
	t.invoke(newCmd)
}

// InsertStr inserts piece (already appended to buf by the caller) at
// display-position pos on line, coalescing into the last history entry
// when possible (spec §4.4.1). It returns whether a new history entry
// was added and how far the cursor should advance.
func (t *Text) InsertStr(line, pos int, buf *charbuf.Buffer, piece Piece) (newCommandAdded bool, cursorInc int) {
	if t.buffer == nil {
		t.buffer = buf
	} else if t.buffer != buf {
		panic(&BufferMonogamyError{Op: "InsertStr"})
	}

	if piece.DisplayLength == 0 {
		return false, 0
	}

	if line >= len(t.lines) {
		line = len(t.lines) - 1
		pos = lineDisplayLength(t.lines[line]) // clamp explicitly to line end
	}

	mergeEntryIdx := -1

	if t.tok.check(tokenInsertion, line, pos) && len(t.hist.commands) > 0 {
		sumPos := 0
		for i, entry := range t.lines[line] {
			sumPos += entry.DisplayLength
			if pos < sumPos {
				break
			} else if pos == sumPos {
				if entry.StartIndex+entry.ByteLength == piece.StartIndex {
					mergeEntryIdx = i
				}
				break
			}
		}

		if mergeEntryIdx >= 0 {
			cancel := true
			switch c := t.getTopSubCmd().(type) {
			case *SplitInsert:
				if c.Line == line {
					growEntryRHS(&c.Inserted, piece.DisplayLength, piece.ByteLength)
					cancel = false
				}
			case *GrowRHS:
				if c.Line == line {
					c.DisplayAmt += piece.DisplayLength
					c.ByteAmt += piece.ByteLength
					cancel = false
				}
			case *InsertEntry:
				if c.Line == line {
					growEntryRHS(&c.Inserted, piece.DisplayLength, piece.ByteLength)
					cancel = false
				}
			}
			if cancel {
				mergeEntryIdx = -1
			}
		}
	}

	switch {
	case mergeEntryIdx >= 0:
		growEntryRHS(&t.lines[line][mergeEntryIdx], piece.DisplayLength, piece.ByteLength)
	case pos == 0:
		t.exec(&InsertEntry{Line: line, EntryIndex: 0, Inserted: piece})
	default:
		accumulated := 0
		tableLine := t.lines[line]
		for i := 0; i < len(tableLine); i++ {
			p := tableLine[i]
			if pos < accumulated+p.DisplayLength {
				t.exec(&SplitInsert{Line: line, OriginalEntryIndex: i, PosInEntry: pos - accumulated, Inserted: piece})
				break
			} else if pos == accumulated+p.DisplayLength || i+1 == len(tableLine) {
				if p.StartIndex+p.ByteLength == piece.StartIndex {
					t.exec(&GrowRHS{Line: line, EntryIndex: i, DisplayAmt: piece.DisplayLength, ByteAmt: piece.ByteLength})
				} else {
					t.exec(&InsertEntry{Line: line, EntryIndex: i + 1, Inserted: piece})
				}
				break
			}
			accumulated += p.DisplayLength
		}
	}

	t.tok.acquire(tokenInsertion, line, pos+piece.DisplayLength)
	return mergeEntryIdx < 0, piece.DisplayLength
}

// InsertString is convenience sugar over InsertStr: it appends s to buf
// itself and builds the Piece, for callers that don't need to manage the
// buffer append separately (spec leaves piece construction to the
// caller; this mirrors the teacher's Buf.Insert/Write taking raw bytes
// directly rather than a pre-built piece).
func (t *Text) InsertString(line, pos int, buf *charbuf.Buffer, s string) (newCommandAdded bool, cursorInc int) {
	if s == "" {
		return false, 0
	}
	start, byteLen := buf.Append(s)
	piece := Piece{StartIndex: start, ByteLength: byteLen, DisplayLength: runeCount(s)}
	return t.InsertStr(line, pos, buf, piece)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// DeleteCharBefore deletes the codepoint immediately before display-
// position pos on line, coalescing into the last history entry when
// possible (spec §4.4.2).
func (t *Text) DeleteCharBefore(line, pos int) (newCommandAdded bool, cursorDec int) {
	if pos == 0 {
		return false, 0
	}

	commandMerged := false
	newCommandIssued := false

	if t.tok.check(tokenDeletionBefore, line, pos) && len(t.hist.commands) > 0 {
		entryIdx, posInEntry, ok := entryIndexWithinLine(t.lines[line], pos-1)
		if ok {
			success := true

			switch c := t.getTopSubCmd().(type) {
			case *SplitDelete:
				if t.lines[line][entryIdx].DisplayLength == 1 {
					if entryIdx+1 < len(t.lines[line]) {
						beforeCopy := t.lines[line][entryIdx+1]
						t.invokeReverse(c)
						afterCopy := t.lines[line][entryIdx]
						replaced := &ShrinkLHS{
							Line: line, EntryIndex: entryIdx,
							DisplayAmt: afterCopy.DisplayLength - beforeCopy.DisplayLength,
							ByteAmt:    afterCopy.ByteLength - beforeCopy.ByteLength,
						}
						t.setTopSubCmd(replaced)
						t.invoke(replaced)
					} else {
						success = false
					}
				} else {
					entry := &t.lines[line][entryIdx]
					byteAmt := 1
					if entry.hasMultibyte() {
						byteAmt = lastCharByteLen(t.buffer, *entry)
					}
					shrinkEntryRHS(entry, 1, byteAmt)
					c.LBoundaryPos--
				}
			case *ShrinkRHS:
				if t.lines[line][entryIdx].DisplayLength == 1 {
					t.invokeReverse(c)
					replaced := &DeleteEntry{
						Line: line, EntryIndex: entryIdx,
						Deleted:        t.lines[line][entryIdx],
						MergePosInPrev: makeMergeInfo(t.lines[line], entryIdx),
					}
					t.setTopSubCmd(replaced)
					t.invoke(replaced)
				} else {
					entry := &t.lines[line][entryIdx]
					byteAmt := 1
					if entry.hasMultibyte() {
						byteAmt = lastCharByteLen(t.buffer, *entry)
					}
					shrinkEntryRHS(entry, 1, byteAmt)
					c.DisplayAmt++
					c.ByteAmt += byteAmt
				}
			case *ShrinkLHS:
				success = t.appendDeleteBeforeSubCmd(line, entryIdx, posInEntry)
			case *DeleteEntry:
				success = t.appendDeleteBeforeSubCmd(line, entryIdx, posInEntry)
			default:
				success = false
			}

			if success {
				cursorDec = 1
				commandMerged = true
				newCommandIssued = true
			}
		}
	}

	for i := 0; !newCommandIssued && i < len(t.lines[line]); {
		p := t.lines[line][i]
		accumulated := lineDisplayLength(t.lines[line][:i])
		if p.DisplayLength == 0 {
			i++
			continue
		}
		switch {
		case pos == accumulated+p.DisplayLength:
			if p.DisplayLength == 1 {
				t.exec(&DeleteEntry{Line: line, EntryIndex: i, Deleted: p, MergePosInPrev: makeMergeInfo(t.lines[line], i)})
			} else {
				byteAmt := 1
				if p.hasMultibyte() {
					byteAmt = lastCharByteLen(t.buffer, p)
				}
				t.exec(&ShrinkRHS{Line: line, EntryIndex: i, DisplayAmt: 1, ByteAmt: byteAmt})
			}
			cursorDec = 1
			newCommandIssued = true
		case pos == accumulated+1:
			byteAmt := 1
			if p.hasMultibyte() {
				byteAmt = firstCharByteLen(t.buffer, p)
			}
			t.exec(&ShrinkLHS{Line: line, EntryIndex: i, DisplayAmt: 1, ByteAmt: byteAmt})
			cursorDec = 1
			newCommandIssued = true
		case pos < accumulated+p.DisplayLength:
			t.exec(&SplitDelete{Line: line, OriginalEntryIndex: i, LBoundaryPos: pos - 1 - accumulated, RBoundaryPos: pos - accumulated})
			cursorDec = 1
			newCommandIssued = true
		}
		i++
	}

	t.tok.acquire(tokenDeletionBefore, line, pos-cursorDec)
	return !commandMerged && newCommandIssued, cursorDec
}

// appendDeleteBeforeSubCmd builds and invokes the next sub-command of a
// promoted MultiCmd for DeleteCharBefore's coalescing path, following
// the same location logic as the first-time (non-coalescing) path.
func (t *Text) appendDeleteBeforeSubCmd(line, entryIdx, posInEntry int) bool {
	p := t.lines[line][entryIdx]
	switch {
	case p.DisplayLength == 1:
		t.promoteTopAndAppend(&DeleteEntry{Line: line, EntryIndex: entryIdx, Deleted: p, MergePosInPrev: makeMergeInfo(t.lines[line], entryIdx)})
	case posInEntry == 0:
		byteAmt := 1
		if p.hasMultibyte() {
			byteAmt = firstCharByteLen(t.buffer, p)
		}
		t.promoteTopAndAppend(&ShrinkLHS{Line: line, EntryIndex: entryIdx, DisplayAmt: 1, ByteAmt: byteAmt})
	case posInEntry+1 < p.DisplayLength:
		t.promoteTopAndAppend(&SplitDelete{Line: line, OriginalEntryIndex: entryIdx, LBoundaryPos: posInEntry, RBoundaryPos: posInEntry + 1})
	case posInEntry+1 == p.DisplayLength:
		byteAmt := 1
		if p.hasMultibyte() {
			byteAmt = lastCharByteLen(t.buffer, p)
		}
		t.promoteTopAndAppend(&ShrinkRHS{Line: line, EntryIndex: entryIdx, DisplayAmt: 1, ByteAmt: byteAmt})
	default:
		return false
	}
	return true
}

// DeleteCharCurrent deletes the codepoint at display-position pos on
// line (cursor position is unchanged); coalescing mirrors
// DeleteCharBefore with lhs/rhs roles swapped (spec §4.4.3).
func (t *Text) DeleteCharCurrent(line, pos int) (newCommandAdded bool) {
	commandMerged := false
	newCommandIssued := false

	if t.tok.check(tokenDeletionCurrent, line, pos) && len(t.hist.commands) > 0 {
		entryIdx, posInEntry, ok := entryIndexWithinLine(t.lines[line], pos)
		if ok {
			success := true

			switch c := t.getTopSubCmd().(type) {
			case *SplitDelete:
				if t.lines[line][entryIdx].DisplayLength == 1 {
					if entryIdx > 0 {
						beforeCopy := t.lines[line][entryIdx-1]
						t.invokeReverse(c)
						afterCopy := t.lines[line][entryIdx-1]
						replaced := &ShrinkRHS{
							Line: line, EntryIndex: entryIdx - 1,
							DisplayAmt: afterCopy.DisplayLength - beforeCopy.DisplayLength,
							ByteAmt:    afterCopy.ByteLength - beforeCopy.ByteLength,
						}
						t.setTopSubCmd(replaced)
						t.invoke(replaced)
					} else {
						success = false
					}
				} else {
					entry := &t.lines[line][entryIdx]
					byteAmt := 1
					if entry.hasMultibyte() {
						byteAmt = firstCharByteLen(t.buffer, *entry)
					}
					shrinkEntryLHS(entry, 1, byteAmt)
					c.RBoundaryPos++
				}
			case *ShrinkLHS:
				if t.lines[line][entryIdx].DisplayLength == 1 {
					t.invokeReverse(c)
					replaced := &DeleteEntry{
						Line: line, EntryIndex: entryIdx,
						Deleted:        t.lines[line][entryIdx],
						MergePosInPrev: makeMergeInfo(t.lines[line], entryIdx),
					}
					t.setTopSubCmd(replaced)
					t.invoke(replaced)
				} else {
					entry := &t.lines[line][entryIdx]
					byteAmt := 1
					if entry.hasMultibyte() {
						byteAmt = firstCharByteLen(t.buffer, *entry)
					}
					shrinkEntryLHS(entry, 1, byteAmt)
					c.DisplayAmt++
					c.ByteAmt += byteAmt
				}
			case *ShrinkRHS:
				success = t.appendDeleteCurrentSubCmd(line, entryIdx, posInEntry)
			case *DeleteEntry:
				success = t.appendDeleteCurrentSubCmd(line, entryIdx, posInEntry)
			default:
				success = false
			}

			if success {
				commandMerged = true
				newCommandIssued = true
			}
		}
	}

	for i := 0; !newCommandIssued && i < len(t.lines[line]); {
		p := t.lines[line][i]
		accumulated := lineDisplayLength(t.lines[line][:i])
		if p.DisplayLength == 0 {
			i++
			continue
		}
		switch {
		case pos == accumulated:
			if p.DisplayLength == 1 {
				t.exec(&DeleteEntry{Line: line, EntryIndex: i, Deleted: p, MergePosInPrev: makeMergeInfo(t.lines[line], i)})
			} else {
				byteAmt := 1
				if p.hasMultibyte() {
					byteAmt = firstCharByteLen(t.buffer, p)
				}
				t.exec(&ShrinkLHS{Line: line, EntryIndex: i, DisplayAmt: 1, ByteAmt: byteAmt})
			}
			newCommandIssued = true
		case pos == accumulated+p.DisplayLength-1:
			byteAmt := 1
			if p.hasMultibyte() {
				byteAmt = lastCharByteLen(t.buffer, p)
			}
			t.exec(&ShrinkRHS{Line: line, EntryIndex: i, DisplayAmt: 1, ByteAmt: byteAmt})
			newCommandIssued = true
		case pos < accumulated+p.DisplayLength-1:
			t.exec(&SplitDelete{Line: line, OriginalEntryIndex: i, LBoundaryPos: pos - accumulated, RBoundaryPos: pos + 1 - accumulated})
			newCommandIssued = true
		}
		i++
	}

	t.tok.acquire(tokenDeletionCurrent, line, pos)
	return !commandMerged && newCommandIssued
}

// appendDeleteCurrentSubCmd mirrors appendDeleteBeforeSubCmd for
// DeleteCharCurrent's lhs/rhs-swapped coalescing promotion.
func (t *Text) appendDeleteCurrentSubCmd(line, entryIdx, posInEntry int) bool {
	p := t.lines[line][entryIdx]
	switch {
	case p.DisplayLength == 1:
		t.promoteTopAndAppend(&DeleteEntry{Line: line, EntryIndex: entryIdx, Deleted: p, MergePosInPrev: makeMergeInfo(t.lines[line], entryIdx)})
	case posInEntry == 0:
		byteAmt := 1
		if p.hasMultibyte() {
			byteAmt = firstCharByteLen(t.buffer, p)
		}
		t.promoteTopAndAppend(&ShrinkLHS{Line: line, EntryIndex: entryIdx, DisplayAmt: 1, ByteAmt: byteAmt})
	case posInEntry+1 < p.DisplayLength:
		t.promoteTopAndAppend(&SplitDelete{Line: line, OriginalEntryIndex: entryIdx, LBoundaryPos: posInEntry, RBoundaryPos: posInEntry + 1})
	case posInEntry+1 == p.DisplayLength:
		byteAmt := 1
		if p.hasMultibyte() {
			byteAmt = lastCharByteLen(t.buffer, p)
		}
		t.promoteTopAndAppend(&ShrinkRHS{Line: line, EntryIndex: entryIdx, DisplayAmt: 1, ByteAmt: byteAmt})
	default:
		return false
	}
	return true
}

// MakeLineBreak splits line at display-position pos (spec §4.4.4).
func (t *Text) MakeLineBreak(line, pos int) bool {
	if line >= len(t.lines) || pos > t.LineLength(line) {
		return false
	}
	t.exec(&LineBreakCmd{LineBefore: line, PosBefore: pos})
	t.tok.acquire(tokenLineBreak, line, pos)
	return true
}

// MakeLineJoin merges the line below line into line (spec §4.4.5).
func (t *Text) MakeLineJoin(line int) bool {
	if line+1 >= len(t.lines) {
		return false
	}
	posAfter := t.LineLength(line)
	t.exec(&LineJoinCmd{LineAfter: line, PosAfter: posAfter})
	t.tok.acquire(tokenLineJoin, line, posAfter)
	return true
}
