package piecetext

import (
	"unicode/utf8"

	"github.com/wildp/treenote/internal/charbuf"
)

// Piece is a single contiguous reference into a shared buffer: the byte
// offset it starts at, how many codepoints it spans (DisplayLength), and
// how many bytes it spans (ByteLength). ByteLength >= DisplayLength
// always; equality holds iff the fragment is pure ASCII.
type Piece struct {
	StartIndex    int
	DisplayLength int
	ByteLength    int
}

// hasMultibyte reports whether p contains at least one multibyte
// codepoint (the mb_flag of spec §3.1, inverted for a more natural Go
// boolean name at the call site).
func (p Piece) hasMultibyte() bool {
	return p.DisplayLength != p.ByteLength
}

// entryHasNoMBChar is the literal query name spec §3.1 gives this
// boolean ("entry_has_no_mb_char"), kept alongside hasMultibyte because
// the primitive mutators below read most naturally in the positive
// form the original used at each call site.
func entryHasNoMBChar(p Piece) bool {
	return !p.hasMultibyte()
}

// byteOffsetForDisplayPos is the UTF-8 position resolver of spec §4.1:
// given a piece and a display-position k within it, return the byte
// offset of the k-th codepoint boundary relative to p.StartIndex. Fast
// path for all-ASCII pieces; slow path walks codepoints one at a time.
func byteOffsetForDisplayPos(buf *charbuf.Buffer, p Piece, k int) int {
	if entryHasNoMBChar(p) {
		return k
	}
	data := buf.Slice(p.StartIndex, p.ByteLength)
	offset := 0
	for i := 0; i < k; i++ {
		offset += charbuf.NextCodepoint(data[offset:])
	}
	return offset
}

// firstCharByteLen returns the byte length of the first codepoint in p.
func firstCharByteLen(buf *charbuf.Buffer, p Piece) int {
	if entryHasNoMBChar(p) {
		return 1
	}
	data := buf.Slice(p.StartIndex, p.ByteLength)
	return charbuf.NextCodepoint(data)
}

// lastCharByteLen returns the byte length of the last codepoint in p.
func lastCharByteLen(buf *charbuf.Buffer, p Piece) int {
	if entryHasNoMBChar(p) {
		return 1
	}
	data := buf.Slice(p.StartIndex, p.ByteLength)
	_, size := utf8.DecodeLastRune(data)
	if size == 0 {
		return 1
	}
	return size
}

// entryIndexWithinLine walks pieces accumulating display lengths and
// returns the index of the first piece containing display-position pos,
// along with pos translated into that piece's local coordinate space.
// ok is false if pos is at or beyond the end of the line (spec §4.1).
func entryIndexWithinLine(line []Piece, pos int) (idx int, posInEntry int, ok bool) {
	accumulated := 0
	for i, p := range line {
		if pos >= accumulated && pos < accumulated+p.DisplayLength {
			return i, pos - accumulated, true
		}
		accumulated += p.DisplayLength
	}
	return 0, 0, false
}

// lineDisplayLength sums the display lengths of every piece on a line.
func lineDisplayLength(line []Piece) int {
	total := 0
	for _, p := range line {
		total += p.DisplayLength
	}
	return total
}
