package piecetext

import (
	"testing"

	"github.com/wildp/treenote/internal/charbuf"
)

func TestByteOffsetForDisplayPosASCIIFastPath(t *testing.T) {
	buf := charbuf.New()
	start, n := buf.Append("hello")
	p := Piece{StartIndex: start, DisplayLength: 5, ByteLength: n}
	for k := 0; k <= 5; k++ {
		if got := byteOffsetForDisplayPos(buf, p, k); got != k {
			t.Errorf("ascii piece: byteOffsetForDisplayPos(%d) = %d, want %d", k, got, k)
		}
	}
}

func TestByteOffsetForDisplayPosMultibyte(t *testing.T) {
	buf := charbuf.New()
	start, n := buf.Append("héllo") // h(1) é(2) l(1) l(1) o(1) = 6 bytes, 5 codepoints
	p := Piece{StartIndex: start, DisplayLength: 5, ByteLength: n}

	want := []int{0, 1, 3, 4, 5, 6}
	for k, w := range want {
		if got := byteOffsetForDisplayPos(buf, p, k); got != w {
			t.Errorf("byteOffsetForDisplayPos(%d) = %d, want %d", k, got, w)
		}
	}
}

func TestFirstLastCharByteLen(t *testing.T) {
	buf := charbuf.New()
	start, n := buf.Append("héllo")
	p := Piece{StartIndex: start, DisplayLength: 5, ByteLength: n}

	if got := firstCharByteLen(buf, p); got != 1 {
		t.Errorf("firstCharByteLen = %d, want 1", got)
	}
	if got := lastCharByteLen(buf, p); got != 1 {
		t.Errorf("lastCharByteLen = %d, want 1", got)
	}

	start2, n2 := buf.Append("é")
	p2 := Piece{StartIndex: start2, DisplayLength: 1, ByteLength: n2}
	if got := firstCharByteLen(buf, p2); got != 2 {
		t.Errorf("firstCharByteLen = %d, want 2", got)
	}
	if got := lastCharByteLen(buf, p2); got != 2 {
		t.Errorf("lastCharByteLen = %d, want 2", got)
	}
}

func TestEntryIndexWithinLine(t *testing.T) {
	line := []Piece{
		{StartIndex: 0, DisplayLength: 3, ByteLength: 3},
		{StartIndex: 10, DisplayLength: 2, ByteLength: 2},
	}

	idx, posInEntry, ok := entryIndexWithinLine(line, 0)
	if !ok || idx != 0 || posInEntry != 0 {
		t.Errorf("pos 0: got idx=%d posInEntry=%d ok=%v", idx, posInEntry, ok)
	}

	idx, posInEntry, ok = entryIndexWithinLine(line, 3)
	if !ok || idx != 1 || posInEntry != 0 {
		t.Errorf("pos 3: got idx=%d posInEntry=%d ok=%v", idx, posInEntry, ok)
	}

	_, _, ok = entryIndexWithinLine(line, 5)
	if ok {
		t.Error("pos at line end: expected ok=false")
	}
}

func TestHasMultibyte(t *testing.T) {
	ascii := Piece{DisplayLength: 3, ByteLength: 3}
	if ascii.hasMultibyte() {
		t.Error("expected ascii piece to report no multibyte content")
	}
	mb := Piece{DisplayLength: 3, ByteLength: 5}
	if !mb.hasMultibyte() {
		t.Error("expected piece with byteLength > displayLength to report multibyte content")
	}
}
