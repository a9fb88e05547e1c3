// Package view renders a piecetext.Text to a termbox-go terminal screen.
// Adapted from bgrundmann-e/view/view.go: the teacher renders a single
// flat buf.Buf by walking a byte Reader and advancing one terminal
// column per rune; this version walks a piecetext.Text line by line
// (lines are already split, so there is no '\n' to scan for) and asks
// github.com/mattn/go-runewidth for each rune's on-screen column width,
// since the teacher's one-column-per-rune assumption is wrong for tabs
// past its hardcoded 4-column case and for wide (e.g. CJK) glyphs.
package view

import (
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/wildp/treenote/motion"
	"github.com/wildp/treenote/piecetext"
)

// View renders the visible window of a Text's lines and tracks
// scrolling and the terminal cursor position.
type View struct {
	text          *piecetext.Text
	firstLine     int
	width, height int
	cursor        motion.Cursor
}

// Init attaches the view to t, starting at the top with the cursor at
// the very beginning.
func (v *View) Init(t *piecetext.Text) {
	v.text = t
	v.firstLine = 0
	v.width = 80
	v.height = 25
	v.cursor = motion.Cursor{}
}

// Cursor returns the view's current cursor position.
func (v *View) Cursor() motion.Cursor {
	return v.cursor
}

// SetCursor positions the cursor directly (e.g. after a mouse click).
func (v *View) SetCursor(c motion.Cursor) {
	v.cursor = c
}

// MoveCursor moves the view's cursor by m, scrolling to keep it visible.
func (v *View) MoveCursor(m motion.Motion) {
	m.Move(v.text, &v.cursor)
	v.scrollToCursor()
}

func (v *View) scrollToCursor() {
	if v.cursor.Line < v.firstLine {
		v.firstLine = v.cursor.Line
	}
	if v.height > 0 && v.cursor.Line >= v.firstLine+v.height {
		v.firstLine = v.cursor.Line - v.height + 1
	}
}

// PageDown scrolls the view down by roughly one screenful, leaving a
// two-line overlap.
func (v *View) PageDown() {
	lines := v.text.LineCount()
	v.firstLine += v.height - 2
	if max := lines - v.height + 1; v.firstLine > max {
		v.firstLine = max
	}
	if v.firstLine < 0 {
		v.firstLine = 0
	}
}

// PageUp scrolls the view up by roughly one screenful.
func (v *View) PageUp() {
	v.firstLine -= v.height - 2
	if v.firstLine < 0 {
		v.firstLine = 0
	}
}

// Display redraws the terminal from the view's current scroll position.
func (v *View) Display() {
	const coldef = termbox.ColorDefault
	termbox.Clear(coldef, coldef)
	w, h := termbox.Size()
	v.width, v.height = w, h
	termbox.HideCursor()

	y := 0
	for line := v.firstLine; line < v.text.LineCount() && y < h; line, y = line+1, y+1 {
		x := 0
		runes := []rune(v.text.ToStr(line))
		for pos, r := range runes {
			if line == v.cursor.Line && pos == v.cursor.Pos {
				termbox.SetCursor(x, y)
			}
			width := runewidth.RuneWidth(r)
			if r == '\t' {
				width = 4 - x%4
				for i := 0; i < width && x < w; i++ {
					termbox.SetCell(x, y, ' ', coldef, coldef)
					x++
				}
				continue
			}
			if x >= w {
				break
			}
			termbox.SetCell(x, y, r, coldef, coldef)
			x += width
		}
		if line == v.cursor.Line && v.cursor.Pos == len(runes) {
			termbox.SetCursor(x, y)
		}
	}

	termbox.Flush()
}
