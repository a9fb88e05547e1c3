package piecetext

// Command is the closed tagged union of every reversible edit a Text can
// record in its history (spec §3.1). Go has no native sum type, so the
// union is represented as an interface implemented by pointer-typed
// variants — pointers so that coalescing can mutate the most recent
// history entry in place (spec §9) rather than replacing it wholesale.
type Command interface {
	commandName() string
}

// SplitInsert records inserting a new piece strictly inside an existing
// one, splitting it in two around the insertion.
type SplitInsert struct {
	Line               int
	OriginalEntryIndex int
	PosInEntry         int
	Inserted           Piece
}

func (*SplitInsert) commandName() string { return "insert_text" }

// SplitDelete records excising a display-range [LBoundaryPos,
// RBoundaryPos) from the middle of a piece, leaving two pieces behind.
type SplitDelete struct {
	Line               int
	OriginalEntryIndex int
	LBoundaryPos       int
	RBoundaryPos       int
}

func (*SplitDelete) commandName() string { return "delete_text" }

// GrowRHS records extending a piece's right edge by DisplayAmt
// codepoints / ByteAmt bytes.
type GrowRHS struct {
	Line       int
	EntryIndex int
	DisplayAmt int
	ByteAmt    int
}

func (*GrowRHS) commandName() string { return "insert_text" }

// ShrinkRHS is the inverse shape of GrowRHS: shrinking a piece's right
// edge.
type ShrinkRHS struct {
	Line       int
	EntryIndex int
	DisplayAmt int
	ByteAmt    int
}

func (*ShrinkRHS) commandName() string { return "delete_text" }

// ShrinkLHS records shrinking a piece's left edge (advancing StartIndex).
type ShrinkLHS struct {
	Line       int
	EntryIndex int
	DisplayAmt int
	ByteAmt    int
}

func (*ShrinkLHS) commandName() string { return "delete_text" }

// InsertEntry records splicing a whole new piece into a line at
// EntryIndex.
type InsertEntry struct {
	Line       int
	EntryIndex int
	Inserted   Piece
}

func (*InsertEntry) commandName() string { return "insert_text" }

// DeleteEntry records removing a whole piece from a line. MergePosInPrev
// is non-nil iff removing it fused its two neighbours (because they
// became buffer-adjacent); its value is the display position within the
// surviving (fused) piece where the seam used to be, computed once at
// command-construction time (spec §9) since the information is gone by
// the time undo runs.
type DeleteEntry struct {
	Line           int
	EntryIndex     int
	Deleted        Piece
	MergePosInPrev *int
}

func (*DeleteEntry) commandName() string { return "delete_text" }

// LineBreakCmd records splitting a line in two at PosBefore.
type LineBreakCmd struct {
	LineBefore int
	PosBefore  int
}

func (*LineBreakCmd) commandName() string { return "line_break" }

// LineJoinCmd records merging LineAfter+1 into LineAfter. PosAfter
// captures where the seam sits, so the inverse (a line break) knows
// where to split again.
type LineJoinCmd struct {
	LineAfter int
	PosAfter  int
}

func (*LineJoinCmd) commandName() string { return "line_join" }

// MultiCmd groups an ordered sequence of commands that invoke/undo as a
// single atomic history entry.
type MultiCmd struct {
	Commands []Command
}

// commandName on MultiCmd is never consulted directly — classifyCommand
// descends into its first child instead, since a multi-command's name
// depends on what it contains.
func (*MultiCmd) commandName() string { return "error" }

// invoke dispatches cmd to its forward primitive.
func (t *Text) invoke(cmd Command) {
	if t.buffer == nil {
		t.invokeNoBuffer(cmd)
		return
	}
	switch c := cmd.(type) {
	case *SplitInsert:
		t.splitEntryAndInsert(c.Line, c.OriginalEntryIndex, c.PosInEntry, c.Inserted)
	case *SplitDelete:
		t.splitEntryRemoveInside(c.Line, c.OriginalEntryIndex, c.LBoundaryPos, c.RBoundaryPos)
	case *GrowRHS:
		growEntryRHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *ShrinkRHS:
		shrinkEntryRHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *ShrinkLHS:
		shrinkEntryLHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *InsertEntry:
		t.insertEntryNaive(c.Line, c.EntryIndex, c.Inserted)
	case *DeleteEntry:
		t.deleteEntryAndMerge(c.Line, c.EntryIndex)
	case *LineBreakCmd:
		t.splitLines(c.LineBefore, c.PosBefore)
	case *LineJoinCmd:
		t.joinLines(c.LineAfter)
	case *MultiCmd:
		for _, sub := range c.Commands {
			t.invoke(sub)
		}
	default:
		panic(&InvariantError{Op: "invoke: unknown command variant"})
	}
}

// invokeNoBuffer handles the special case (spec §4.3) where no buffer
// has been associated yet: only line_break at position 0, line_join, and
// multi_cmd compositions of those are legal.
func (t *Text) invokeNoBuffer(cmd Command) {
	switch c := cmd.(type) {
	case *LineBreakCmd:
		if c.PosBefore != 0 {
			panic(&InvariantError{Op: "invoke: line_break at nonzero pos with no buffer"})
		}
		t.splitLines(c.LineBefore, c.PosBefore)
	case *LineJoinCmd:
		t.joinLines(c.LineAfter)
	case *MultiCmd:
		for _, sub := range c.Commands {
			t.invokeNoBuffer(sub)
		}
	default:
		panic(&MissingBufferError{Op: "invoke: non-empty text must have an associated buffer"})
	}
}

// invokeReverse dispatches cmd to its inverse primitive.
func (t *Text) invokeReverse(cmd Command) {
	if t.buffer == nil {
		t.invokeReverseNoBuffer(cmd)
		return
	}
	switch c := cmd.(type) {
	case *SplitInsert:
		t.undoSplitEntryAndInsert(c.Line, c.OriginalEntryIndex)
	case *SplitDelete:
		t.undoSplitEntryRemoveInside(c.Line, c.OriginalEntryIndex, c.RBoundaryPos)
	case *GrowRHS:
		shrinkEntryRHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *ShrinkRHS:
		growEntryRHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *ShrinkLHS:
		unshrinkEntryLHS(&t.lines[c.Line][c.EntryIndex], c.DisplayAmt, c.ByteAmt)
	case *InsertEntry:
		t.deleteEntryAndMerge(c.Line, c.EntryIndex)
	case *DeleteEntry:
		t.undoDeleteEntryAndMerge(c.Line, c.EntryIndex, c.Deleted, c.MergePosInPrev)
	case *LineBreakCmd:
		t.joinLines(c.LineBefore)
	case *LineJoinCmd:
		t.splitLines(c.LineAfter, c.PosAfter)
	case *MultiCmd:
		for i := len(c.Commands) - 1; i >= 0; i-- {
			t.invokeReverse(c.Commands[i])
		}
	default:
		panic(&InvariantError{Op: "invoke_reverse: unknown command variant"})
	}
}

func (t *Text) invokeReverseNoBuffer(cmd Command) {
	switch c := cmd.(type) {
	case *LineBreakCmd:
		t.joinLines(c.LineBefore)
	case *LineJoinCmd:
		if c.PosAfter != 0 {
			panic(&InvariantError{Op: "invoke_reverse: line_join at nonzero pos with no buffer"})
		}
		t.splitLines(c.LineAfter, c.PosAfter)
	case *MultiCmd:
		for i := len(c.Commands) - 1; i >= 0; i-- {
			t.invokeReverseNoBuffer(c.Commands[i])
		}
	default:
		panic(&MissingBufferError{Op: "invoke_reverse: non-empty text must have an associated buffer"})
	}
}

// classifyCommand implements get_current_cmd_name's per-command mapping
// (spec §4.5), descending through a MultiCmd to its first child.
func classifyCommand(cmd Command) string {
	for {
		m, ok := cmd.(*MultiCmd)
		if !ok {
			break
		}
		if len(m.Commands) == 0 {
			return "error"
		}
		cmd = m.Commands[0]
	}
	return cmd.commandName()
}
