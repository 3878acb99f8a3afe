package strand

import (
	"bytes"
	"fmt"
)

// Cursor is an immutable read position within a byte buffer. The buffer is shared
// between all cursors derived from the same input and is never written to.
// Moving a cursor always produces a new Cursor value.
type Cursor struct {
	buf    []byte
	offset int
}

// NewCursor returns a cursor positioned at the first byte of buf.
func NewCursor(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// Offset returns the position of the cursor within the underlying buffer.
func (c Cursor) Offset() int {
	return c.offset
}

// Len returns the number of bytes left to read.
func (c Cursor) Len() int {
	return len(c.buf) - c.offset
}

// Done reports whether all input has been consumed.
func (c Cursor) Done() bool {
	return c.offset >= len(c.buf)
}

// Remaining returns the unread bytes. The returned slice aliases the input
// and must not be modified.
func (c Cursor) Remaining() []byte {
	return c.buf[c.offset:]
}

// Peek returns the next byte without consuming it.
func (c Cursor) Peek() (byte, bool) {
	if c.Done() {
		return 0, false
	}

	return c.buf[c.offset], true
}

// HasPrefix reports whether the unread bytes start with prefix.
func (c Cursor) HasPrefix(prefix []byte) bool {
	return bytes.HasPrefix(c.Remaining(), prefix)
}

// Advance returns a new cursor n bytes further into the input.
// Returns ErrOutOfBounds if fewer than n bytes are left.
func (c Cursor) Advance(n int) (Cursor, error) {
	if n < 0 || n > c.Len() {
		return c, &DecodeError{
			Kind:   KindOutOfBounds,
			Offset: c.offset,
			Err:    fmt.Errorf("advance by %d with %d bytes left", n, c.Len()),
		}
	}

	return Cursor{buf: c.buf, offset: c.offset + n}, nil
}

// SliceUntil consumes bytes while pred holds and returns the consumed span
// together with a cursor positioned at the first byte for which pred failed.
func (c Cursor) SliceUntil(pred func(byte) bool) ([]byte, Cursor) {
	end := c.offset
	for end < len(c.buf) && pred(c.buf[end]) {
		end++
	}

	return c.buf[c.offset:end], Cursor{buf: c.buf, offset: end}
}

// span returns the bytes between c and a cursor further into the same input.
func (c Cursor) span(to Cursor) []byte {
	return c.buf[c.offset:to.offset]
}

// skip advances by n bytes. Callers must have checked that n bytes are available.
func (c Cursor) skip(n int) Cursor {
	return Cursor{buf: c.buf, offset: c.offset + n}
}
