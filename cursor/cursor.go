// Package cursor provides a byte-indexed view over a source string, shared
// by the scanner and the attribute parser as their common read position
// into the original string.
package cursor

import "strings"

// Cursor is a mutable byte offset into Input. It never copies Input.
type Cursor struct {
	Input string
	Pos   int
}

// New creates a Cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{Input: input}
}

// Done reports whether the cursor has reached the end of the input.
func (c *Cursor) Done() bool {
	return c.Pos >= len(c.Input)
}

// Len returns the number of bytes remaining.
func (c *Cursor) Len() int {
	return len(c.Input) - c.Pos
}

// Rest returns the unread tail of the input.
func (c *Cursor) Rest() string {
	return c.Input[c.Pos:]
}

// PeekByte returns the byte at the cursor, or 0 if Done.
func (c *Cursor) PeekByte() byte {
	if c.Done() {
		return 0
	}
	return c.Input[c.Pos]
}

// PeekByteAt returns the byte offset bytes ahead of the cursor, or 0 if out of range.
func (c *Cursor) PeekByteAt(offset int) byte {
	i := c.Pos + offset
	if i < 0 || i >= len(c.Input) {
		return 0
	}
	return c.Input[i]
}

// HasPrefix reports whether the unread tail starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Advance moves the cursor forward n bytes, clamped to the input length.
func (c *Cursor) Advance(n int) {
	c.Pos += n
	if c.Pos > len(c.Input) {
		c.Pos = len(c.Input)
	}
}

// SkipWhitespace advances over ASCII space/tab/newline/CR bytes.
func (c *Cursor) SkipWhitespace() {
	for !c.Done() {
		switch c.PeekByte() {
		case ' ', '\t', '\n', '\r':
			c.Advance(1)
		default:
			return
		}
	}
}

// IndexFrom returns the absolute index of the first occurrence of b at or
// after the cursor's current position, or -1 if not found.
func (c *Cursor) IndexFrom(b byte) int {
	rel := strings.IndexByte(c.Rest(), b)
	if rel == -1 {
		return -1
	}
	return c.Pos + rel
}

// Slice returns Input[c.Pos:end].
func (c *Cursor) Slice(end int) string {
	return c.Input[c.Pos:end]
}
