package piecetext

// This file implements the eleven primitive mutators of spec §4.2, each
// paired with its exact inverse. Only deleteEntryAndMerge and joinLines
// can ever create two buffer-adjacent pieces; both detect and fuse them
// immediately, which is the only way canonicality (spec §3.2 invariant
// 1) can be threatened and the only place it is defended.

// growEntryRHS extends p's right edge. Its inverse is shrinkEntryRHS
// with the same arguments.
func growEntryRHS(p *Piece, displayAmt, byteAmt int) {
	p.DisplayLength += displayAmt
	p.ByteLength += byteAmt
}

// shrinkEntryRHS is the inverse of growEntryRHS.
func shrinkEntryRHS(p *Piece, displayAmt, byteAmt int) {
	p.DisplayLength -= displayAmt
	p.ByteLength -= byteAmt
}

// shrinkEntryLHS shrinks p's left edge, advancing StartIndex. Its
// inverse is unshrinkEntryLHS.
func shrinkEntryLHS(p *Piece, displayAmt, byteAmt int) {
	p.StartIndex += byteAmt
	p.DisplayLength -= displayAmt
	p.ByteLength -= byteAmt
}

// unshrinkEntryLHS is the inverse of shrinkEntryLHS.
func unshrinkEntryLHS(p *Piece, displayAmt, byteAmt int) {
	p.StartIndex -= byteAmt
	p.DisplayLength += displayAmt
	p.ByteLength += byteAmt
}

// insertEntryNaive splices entry into line at index i with no attempt at
// merging. Its inverse is deleteEntryAndMerge at the same index (which,
// for a piece that was just naively inserted, never has anything to
// merge, since insertEntryNaive never creates adjacency on its own).
func (t *Text) insertEntryNaive(line, i int, entry Piece) {
	l := t.lines[line]
	l = append(l, Piece{})
	copy(l[i+1:], l[i:])
	l[i] = entry
	t.lines[line] = l
}

// makeMergeInfo computes delete_entry's merge_pos_in_prev: if removing
// the piece at entryIndex would make its neighbours buffer-adjacent,
// this returns the display length of the piece before it (the position
// within the fused piece where the old seam sits); otherwise nil. Must
// be computed before the deletion happens — the adjacency is gone
// afterward.
func makeMergeInfo(line []Piece, entryIndex int) *int {
	if entryIndex == 0 || entryIndex == len(line)-1 {
		return nil
	}
	before := line[entryIndex-1]
	after := line[entryIndex+1]
	if before.StartIndex+before.ByteLength == after.StartIndex {
		pos := before.DisplayLength
		return &pos
	}
	return nil
}

// deleteEntryAndMerge removes the piece at index i, fusing its
// neighbours if doing so makes them buffer-adjacent. Its inverse is
// undoDeleteEntryAndMerge, which needs the merge position recorded by
// makeMergeInfo at command-construction time to know whether (and
// where) to split the fused piece back apart.
func (t *Text) deleteEntryAndMerge(line, i int) {
	l := t.lines[line]
	mergeAfter := false
	if i > 0 && i+1 < len(l) {
		before := &l[i-1]
		after := l[i+1]
		if before.StartIndex+before.ByteLength == after.StartIndex {
			before.DisplayLength += after.DisplayLength
			before.ByteLength += after.ByteLength
			mergeAfter = true
		}
	}
	if mergeAfter {
		l = append(l[:i], l[i+2:]...)
	} else {
		l = append(l[:i], l[i+1:]...)
	}
	t.lines[line] = l
}

// undoDeleteEntryAndMerge is the inverse of deleteEntryAndMerge.
func (t *Text) undoDeleteEntryAndMerge(line, idx int, entry Piece, mergePos *int) {
	if idx == 0 || mergePos == nil {
		t.insertEntryNaive(line, idx, entry)
	} else {
		t.splitEntryAndInsert(line, idx-1, *mergePos, entry)
	}
}

// splitEntryAndInsert splits the piece at original_entry_index at
// display-position posInEntry, inserting entry between the two halves.
// Its inverse is undoSplitEntryAndInsert.
func (t *Text) splitEntryAndInsert(line, originalEntryIndex, posInEntry int, entry Piece) {
	l := t.lines[line]
	original := l[originalEntryIndex]

	leftBytes := byteOffsetForDisplayPos(t.buffer, original, posInEntry)

	right := Piece{
		StartIndex:    original.StartIndex + leftBytes,
		DisplayLength: original.DisplayLength - posInEntry,
		ByteLength:    original.ByteLength - leftBytes,
	}

	l[originalEntryIndex].DisplayLength = posInEntry
	l[originalEntryIndex].ByteLength = leftBytes

	newLine := make([]Piece, 0, len(l)+2)
	newLine = append(newLine, l[:originalEntryIndex+1]...)
	newLine = append(newLine, entry, right)
	newLine = append(newLine, l[originalEntryIndex+1:]...)
	t.lines[line] = newLine
}

// undoSplitEntryAndInsert is the inverse of splitEntryAndInsert: it is
// exactly a delete_entry at the index the inserted piece was placed at,
// which should re-fuse the two halves of the original piece.
func (t *Text) undoSplitEntryAndInsert(line, originalEntryIndex int) {
	t.deleteEntryAndMerge(line, originalEntryIndex+1)
}

// splitEntryRemoveInside excises the display range [lBoundaryPos,
// rBoundaryPos) from the piece at i, leaving two pieces behind (assumes
// lBoundaryPos > 0; a removal starting at 0 should use shrinkEntryLHS
// instead, per spec §4.2). Its inverse is undoSplitEntryRemoveInside.
func (t *Text) splitEntryRemoveInside(line, i, lBoundaryPos, rBoundaryPos int) {
	l := t.lines[line]
	original := l[i]

	leftBytes := byteOffsetForDisplayPos(t.buffer, original, lBoundaryPos)
	skippedBytes := byteOffsetForDisplayPos(t.buffer, original, rBoundaryPos)

	right := Piece{
		StartIndex:    original.StartIndex + skippedBytes,
		DisplayLength: original.DisplayLength - rBoundaryPos,
		ByteLength:    original.ByteLength - skippedBytes,
	}

	l[i].DisplayLength = lBoundaryPos
	l[i].ByteLength = leftBytes

	newLine := make([]Piece, 0, len(l)+1)
	newLine = append(newLine, l[:i+1]...)
	newLine = append(newLine, right)
	newLine = append(newLine, l[i+1:]...)
	t.lines[line] = newLine
}

// undoSplitEntryRemoveInside re-fuses the two halves split out by
// splitEntryRemoveInside back into the single piece they came from,
// spanning from the left half's start to the right half's end (the
// removed range included again).
func (t *Text) undoSplitEntryRemoveInside(line, originalEntryIndex, rBoundaryPos int) {
	l := t.lines[line]
	original := &l[originalEntryIndex]
	sndHalf := l[originalEntryIndex+1]

	original.DisplayLength = rBoundaryPos + sndHalf.DisplayLength
	original.ByteLength = (sndHalf.StartIndex - original.StartIndex) + sndHalf.ByteLength

	t.lines[line] = append(l[:originalEntryIndex+1], l[originalEntryIndex+2:]...)
}

// splitLines inserts a new empty line after lineIdx, moving the suffix
// of lineIdx's content past display-position pos into it (splitting the
// straddling piece if pos falls inside one). Its inverse is joinLines.
func (t *Text) splitLines(lineIdx, pos int) {
	if pos == 0 {
		insertAt := lineIdx
		if insertAt > len(t.lines) {
			insertAt = len(t.lines)
		}
		t.lines = append(t.lines, nil)
		copy(t.lines[insertAt+1:], t.lines[insertAt:])
		t.lines[insertAt] = nil
		return
	}

	insertAt := lineIdx + 1
	if insertAt > len(t.lines) {
		insertAt = len(t.lines)
	}
	t.lines = append(t.lines, nil)
	copy(t.lines[insertAt+1:], t.lines[insertAt:])
	t.lines[insertAt] = nil

	fst := t.lines[lineIdx]
	if len(fst) == 0 {
		return
	}

	ignoredCount := 0
	splitAt := len(fst)
	var snd []Piece

	for i := 0; i < len(fst); i++ {
		p := fst[i]
		if ignoredCount >= pos {
			splitAt = i
			break
		} else if ignoredCount+p.DisplayLength > pos {
			toIgnore := pos - ignoredCount
			ignoredBytes := byteOffsetForDisplayPos(t.buffer, p, toIgnore)

			snd = append(snd, Piece{
				StartIndex:    p.StartIndex + ignoredBytes,
				DisplayLength: p.DisplayLength - toIgnore,
				ByteLength:    p.ByteLength - ignoredBytes,
			})

			fst[i].DisplayLength = toIgnore
			fst[i].ByteLength = ignoredBytes

			splitAt = i + 1
			break
		} else {
			ignoredCount += p.DisplayLength
		}
	}

	snd = append(snd, fst[splitAt:]...)
	t.lines[lineIdx] = fst[:splitAt]
	t.lines[insertAt] = snd
}

// joinLines appends the contents of line lineAfter+1 onto lineAfter,
// fusing the seam if the two lines' adjoining pieces are
// buffer-adjacent, then erases line lineAfter+1. Its inverse is
// splitLines at the display length lineAfter had before the join.
func (t *Text) joinLines(lineAfter int) {
	fst := t.lines[lineAfter]
	snd := t.lines[lineAfter+1]

	if len(snd) > 0 {
		if len(fst) > 0 {
			last := &fst[len(fst)-1]
			if last.StartIndex+last.ByteLength == snd[0].StartIndex {
				last.DisplayLength += snd[0].DisplayLength
				last.ByteLength += snd[0].ByteLength
				fst = append(fst, snd[1:]...)
			} else {
				fst = append(fst, snd...)
			}
		} else {
			fst = snd
		}
	}

	t.lines[lineAfter] = fst
	t.lines = append(t.lines[:lineAfter+1], t.lines[lineAfter+2:]...)
}
