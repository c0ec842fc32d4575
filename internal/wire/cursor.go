package wire

import "fmt"

// Cursor is a bounded reader over an immutable message buffer.
//
// The read position only moves forward, and only through Read. Absolute
// lookups go through PeekAt and do not move the position; compression
// pointers do not use it, they resolve through the name table. The cursor
// deals in raw bytes; integer interpretation belongs to the field decoders.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
// The cursor keeps a reference to buf; callers must not mutate it while
// the cursor is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of bytes not yet consumed.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Position returns the current absolute offset from the start of the buffer.
func (c *Cursor) Position() int {
	return c.pos
}

// Read consumes the next n bytes and returns them as a slice into the
// underlying buffer. Callers that retain the bytes past the decode must
// copy them.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrIncomplete, n, c.pos, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// PeekAt returns the byte at the given absolute offset without moving the
// read position.
func (c *Cursor) PeekAt(off int) (byte, error) {
	if off < 0 || off >= len(c.buf) {
		return 0, fmt.Errorf("%w: offset %d outside message of %d bytes",
			ErrOffsetOutOfRange, off, len(c.buf))
	}
	return c.buf[off], nil
}
