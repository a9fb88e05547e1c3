// Package motion decouples "how the cursor moves" from "how the text is
// edited" (piecetext.Text has no cursor of its own — every public
// mutation takes an explicit line/pos pair). Adapted from
// bgrundmann-e/motion/motion.go's Motion interface, generalized from a
// single flat buf.Buf/buf.Reader pair to a piecetext.Text plus a Cursor
// carrying (line, pos) since the text here is a sequence of lines, not
// one contiguous byte stream.
package motion

import "github.com/wildp/treenote/piecetext"

// Cursor is a (line, display-position) pair into a piecetext.Text.
type Cursor struct {
	Line int
	Pos  int
}

// A Motion moves a Cursor within t. Returns false if the motion is
// impossible (e.g. RuneBackward at the very start of the text), leaving
// the cursor unchanged.
type Motion interface {
	Move(t *piecetext.Text, c *Cursor) bool
}

type motion func(*piecetext.Text, *Cursor) bool

func (f motion) Move(t *piecetext.Text, c *Cursor) bool {
	return f(t, c)
}

// New creates a new motion from a function.
func New(move func(*piecetext.Text, *Cursor) bool) Motion {
	return motion(move)
}

// RuneForward moves one codepoint forward, wrapping onto the next line.
var RuneForward = New(func(t *piecetext.Text, c *Cursor) bool {
	if c.Pos < t.LineLength(c.Line) {
		c.Pos++
		return true
	}
	if c.Line+1 < t.LineCount() {
		c.Line++
		c.Pos = 0
		return true
	}
	return false
})

// RuneBackward moves one codepoint backward, wrapping onto the previous
// line's end.
var RuneBackward = New(func(t *piecetext.Text, c *Cursor) bool {
	if c.Pos > 0 {
		c.Pos--
		return true
	}
	if c.Line > 0 {
		c.Line--
		c.Pos = t.LineLength(c.Line)
		return true
	}
	return false
})

// LineStart moves to the beginning of the current line.
var LineStart = New(func(t *piecetext.Text, c *Cursor) bool {
	if c.Pos == 0 {
		return false
	}
	c.Pos = 0
	return true
})

// LineEnd moves to the end of the current line.
var LineEnd = New(func(t *piecetext.Text, c *Cursor) bool {
	end := t.LineLength(c.Line)
	if c.Pos == end {
		return false
	}
	c.Pos = end
	return true
})

// LineUp moves to the line above, clamping the column to its length.
var LineUp = New(func(t *piecetext.Text, c *Cursor) bool {
	if c.Line == 0 {
		return false
	}
	c.Line--
	if max := t.LineLength(c.Line); c.Pos > max {
		c.Pos = max
	}
	return true
})

// LineDown moves to the line below, clamping the column to its length.
var LineDown = New(func(t *piecetext.Text, c *Cursor) bool {
	if c.Line+1 >= t.LineCount() {
		return false
	}
	c.Line++
	if max := t.LineLength(c.Line); c.Pos > max {
		c.Pos = max
	}
	return true
})
