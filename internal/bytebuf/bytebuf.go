// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bytebuf provides the two halves of the packed-dictionary byte
// array: a growable write Buffer with a seekable cursor used while
// compiling, and a bounds-checked read Cursor over an immutable byte slice
// used during lookups.
//
// The two are deliberately separate types: a compiled dictionary shares one
// immutable byte slice between any number of concurrent lookups, and each
// lookup owns its own Cursor.
package bytebuf

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports a read or seek past the end of the data.
var ErrOutOfRange = errors.New("out of range")

// Buffer is a resizable byte array with a write cursor.  Writes land at the
// cursor, overwriting existing bytes and growing the array as needed.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer returns a Buffer with an initial limit of size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

func (b *Buffer) ensure(size int) {
	if size <= len(b.buf) {
		return
	}
	newLimit := 2 * len(b.buf)
	if size > newLimit {
		newLimit = size
	}
	grown := make([]byte, newLimit)
	copy(grown, b.buf)
	b.buf = grown
}

// PutByte writes a single byte at the cursor.
func (b *Buffer) PutByte(c byte) {
	b.ensure(b.pos + 1)
	b.buf[b.pos] = c
	b.pos++
}

// Put writes p at the cursor.
func (b *Buffer) Put(p []byte) {
	b.ensure(b.pos + len(p))
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetPos moves the cursor.  The position must lie within [0, Len()].
func (b *Buffer) SetPos(pos int) {
	if pos < 0 || pos > len(b.buf) {
		panic(fmt.Sprintf("bytebuf: SetPos(%d) outside buffer of %d bytes", pos, len(b.buf)))
	}
	b.pos = pos
}

// Len returns the current limit of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Used returns the bytes written so far, up to the cursor.  The slice
// aliases the buffer and is invalidated by further writes.
func (b *Buffer) Used() []byte {
	return b.buf[:b.pos]
}

// Truncate discards everything past the cursor, making the cursor the new
// limit.
func (b *Buffer) Truncate() {
	b.buf = b.buf[:b.pos]
}

// AppendBuffer writes the used portion of other at the cursor.
func (b *Buffer) AppendBuffer(other *Buffer) {
	b.Put(other.Used())
}

// Cursor reads over an immutable byte slice.  It never mutates the
// underlying data; copies of a Cursor advance independently.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte) Cursor {
	return Cursor{data: data}
}

// ReadByte returns the byte at the cursor and advances past it.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("%w: read at %d, limit %d", ErrOutOfRange, c.pos, len(c.data))
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Next returns the n bytes at the cursor and advances past them.  The
// returned slice aliases the underlying data.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: read of %d bytes at %d, limit %d", ErrOutOfRange, n, c.pos, len(c.data))
	}
	p := c.data[c.pos : c.pos+n]
	c.pos += n
	return p, nil
}

// Seek moves the cursor to pos.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: seek to %d, limit %d", ErrOutOfRange, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// Pos returns the cursor position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying data.
func (c *Cursor) Len() int {
	return len(c.data)
}
