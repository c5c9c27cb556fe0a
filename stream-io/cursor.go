package streamio

import (
	fasttypeconversion "github.com/usherasnick/Useful-Go-Gadgets/fast-type-conversion"
)

// Cursor reads an in-memory byte sequence from an explicit position.
//
// The position starts at 0 and may be moved past the end, in which case the
// remaining view is empty.
type Cursor struct {
	buf []byte
	pos uint64
}

// NewCursor returns a Cursor over b. The cursor does not copy b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// NewStringCursor returns a Cursor over the bytes of s without copying them.
func NewStringCursor(s string) *Cursor {
	return &Cursor{buf: fasttypeconversion.String2Bytes(s)}
}

// Bytes returns the underlying sequence.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Position returns the current position.
func (c *Cursor) Position() uint64 {
	return c.pos
}

// SetPosition moves the cursor to pos.
func (c *Cursor) SetPosition(pos uint64) {
	c.pos = pos
}

// Remaining returns the bytes from the position to the end.
func (c *Cursor) Remaining() []byte {
	start := c.pos
	if n := uint64(len(c.buf)); start > n {
		start = n
	}
	return c.buf[start:]
}

// IsEmpty reports whether nothing is left to read.
func (c *Cursor) IsEmpty() bool {
	return c.pos >= uint64(len(c.buf))
}

// Read copies up to len(p) remaining bytes into p. It never fails.
func (c *Cursor) Read(p []byte) (int, error) {
	rem := c.Remaining()
	n := len(p)
	if len(rem) < n {
		n = len(rem)
	}
	copyBytes(p, rem, n)
	c.pos += uint64(n)
	return n, nil
}

// ReadExact fills p or, when fewer than len(p) bytes remain, fails with
// ErrUnexpectedEOF without moving the position.
func (c *Cursor) ReadExact(p []byte) error {
	rem := c.Remaining()
	if len(p) > len(rem) {
		return ErrUnexpectedEOF
	}
	copyBytes(p, rem, len(p))
	c.pos += uint64(len(p))
	return nil
}

// FillBuf returns the remaining bytes. It never fails and never copies.
func (c *Cursor) FillBuf() ([]byte, error) {
	return c.Remaining(), nil
}

// Consume advances the position by n.
func (c *Cursor) Consume(n int) {
	c.pos += uint64(n)
}

// copyBytes copies n bytes of src into dst. Single bytes are assigned
// directly.
func copyBytes(dst, src []byte, n int) {
	if n == 1 {
		dst[0] = src[0]
		return
	}
	copy(dst[:n], src[:n])
}
