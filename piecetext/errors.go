package piecetext

import "github.com/pkg/errors"

// BufferMonogamyError is raised when a Text is asked to reference a
// second, different buffer than the one it already holds a handle to.
// This is a programmer error: callers must route every edit to a Text
// through the same charbuf.Buffer it was created with.
type BufferMonogamyError struct {
	Op string
}

func (e *BufferMonogamyError) Error() string {
	return errors.Wrap(errors.New("text cannot reference entries from more than one buffer"), e.Op).Error()
}

// MissingBufferError is raised when a read query (ToStr, ToSubstr) is
// asked to resolve a non-empty line but the Text has never been given a
// buffer handle.
type MissingBufferError struct {
	Op string
}

func (e *MissingBufferError) Error() string {
	return errors.Wrap(errors.New("non-empty text must have an associated buffer"), e.Op).Error()
}

// InvariantError reports a violation of an internal invariant that
// should be unreachable from a correctly used Text (e.g. the history
// cursor exceeding the length of the history).
type InvariantError struct {
	Op string
}

func (e *InvariantError) Error() string {
	return errors.Wrap(errors.New("internal invariant violated"), e.Op).Error()
}
