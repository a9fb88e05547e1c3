// Package piecetext implements the core text engine for a single note: a
// piece-table of lines backed by a shared append-only character buffer
// (internal/charbuf), and a coalescing undo/redo history whose commands
// are exact inverses of one another.
//
// A Text is always non-empty (at least one, possibly empty, line) and
// does not own the buffer it references — the buffer outlives every
// Text built on top of it. Everything here is single-threaded: a Text
// must not be used from more than one goroutine at a time.
package piecetext
