package input

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when Parse is called with a zero-length slice.
var ErrEmpty = errors.New("input: empty")

// ErrIncomplete is returned when the available bytes are a valid prefix of
// a recognized sequence but the final byte hasn't arrived yet. The caller
// must retain the unconsumed tail (data[consumed:]) and append more bytes
// before calling Parse again.
var ErrIncomplete = errors.New("input: incomplete sequence")

// UnrecognizedSequenceError is returned when a well-formed-looking escape
// sequence doesn't match any supported grammar. Bytes is the span the
// caller should skip (typically one byte, but a full malformed CSI
// sequence once its final byte is known).
type UnrecognizedSequenceError struct {
	Bytes []byte
}

func (e *UnrecognizedSequenceError) Error() string {
	return fmt.Sprintf("input: unrecognized sequence %q", e.Bytes)
}

// InvalidUTF8Error is returned when a byte claims to start a multi-byte
// UTF-8 sequence but the following bytes don't form valid UTF-8.
type InvalidUTF8Error struct {
	Bytes []byte
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("input: invalid utf-8 %x", e.Bytes)
}
