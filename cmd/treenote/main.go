// Command treenote is a minimal terminal front-end over the piecetext
// engine: one scratch note, rendered and edited through termbox-go.
// Keybindings follow nsf-godit's main.go event-dispatch shape (a single
// switch over termbox.Event in the main loop) without that program's
// multi-view/multi-buffer machinery, which is out of scope here. No
// file I/O is performed — spec.md excludes a persistence format as a
// Non-goal, so the note exists only for the lifetime of the process,
// optionally seeded from a single command-line argument.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nsf/termbox-go"

	"github.com/wildp/treenote/internal/charbuf"
	"github.com/wildp/treenote/internal/view"
	"github.com/wildp/treenote/motion"
	"github.com/wildp/treenote/notetree"
	"github.com/wildp/treenote/piecetext"
)

func main() {
	flag.Parse()
	seed := flag.Arg(0)

	buf := charbuf.New()
	tree := notetree.New()
	root := tree.AddRoot("scratch")

	if seed != "" {
		root.Note.Text.InsertString(0, 0, buf, seed)
	}

	if err := termbox.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "treenote:", err)
		os.Exit(1)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	v := &view.View{}
	v.Init(root.Note.Text)
	v.Display()

	for {
		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey && ev.Type != termbox.EventResize {
			continue
		}
		if ev.Type == termbox.EventKey {
			if !handleKey(v, root.Note.Text, buf, &ev) {
				return
			}
		}
		v.Display()
	}
}

// handleKey applies one key event to text through v's cursor, returning
// false when the program should exit.
func handleKey(v *view.View, text *piecetext.Text, buf *charbuf.Buffer, ev *termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return false
	case termbox.KeyArrowLeft:
		v.MoveCursor(motion.RuneBackward)
		text.ResetToken()
	case termbox.KeyArrowRight:
		v.MoveCursor(motion.RuneForward)
		text.ResetToken()
	case termbox.KeyArrowUp:
		v.MoveCursor(motion.LineUp)
		text.ResetToken()
	case termbox.KeyArrowDown:
		v.MoveCursor(motion.LineDown)
		text.ResetToken()
	case termbox.KeyHome, termbox.KeyCtrlA:
		v.MoveCursor(motion.LineStart)
		text.ResetToken()
	case termbox.KeyEnd, termbox.KeyCtrlE:
		v.MoveCursor(motion.LineEnd)
		text.ResetToken()
	case termbox.KeyEnter, termbox.KeyCtrlJ:
		c := v.Cursor()
		text.MakeLineBreak(c.Line, c.Pos)
		v.SetCursor(motion.Cursor{Line: c.Line + 1, Pos: 0})
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		c := v.Cursor()
		if c.Pos == 0 && c.Line > 0 {
			joinLine := c.Line - 1
			joinPos := text.LineLength(joinLine)
			text.MakeLineJoin(joinLine)
			v.SetCursor(motion.Cursor{Line: joinLine, Pos: joinPos})
			break
		}
		_, dec := text.DeleteCharBefore(c.Line, c.Pos)
		v.SetCursor(motion.Cursor{Line: c.Line, Pos: c.Pos - dec})
	case termbox.KeyDelete, termbox.KeyCtrlD:
		c := v.Cursor()
		if c.Pos == text.LineLength(c.Line) && c.Line+1 < text.LineCount() {
			text.MakeLineJoin(c.Line)
			break
		}
		text.DeleteCharCurrent(c.Line, c.Pos)
	case termbox.KeyCtrlZ, termbox.KeyCtrlSlash:
		text.Undo()
		clampCursor(v, text)
	case termbox.KeyCtrlY, termbox.KeyCtrlR:
		text.Redo()
		clampCursor(v, text)
	case termbox.KeySpace:
		insertRune(v, text, buf, ' ')
	case termbox.KeyTab:
		insertRune(v, text, buf, '\t')
	default:
		if ev.Ch != 0 {
			insertRune(v, text, buf, ev.Ch)
		}
	}
	return true
}

func insertRune(v *view.View, text *piecetext.Text, buf *charbuf.Buffer, r rune) {
	c := v.Cursor()
	_, inc := text.InsertString(c.Line, c.Pos, buf, string(r))
	v.SetCursor(motion.Cursor{Line: c.Line, Pos: c.Pos + inc})
}

func clampCursor(v *view.View, text *piecetext.Text) {
	c := v.Cursor()
	if c.Line >= text.LineCount() {
		c.Line = text.LineCount() - 1
	}
	if max := text.LineLength(c.Line); c.Pos > max {
		c.Pos = max
	}
	v.SetCursor(c)
}
