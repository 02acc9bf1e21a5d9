// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"encoding/binary"
	"fmt"

	"github.com/rsarathy/cdict/internal/bytebuf"
	"github.com/rsarathy/cdict/internal/vint"
)

// rootHeaderLen is the size of the fixed header holding the root node's
// offset as a big-endian uint32.
const rootHeaderLen = 4

// edge is one outgoing transition of a trie node, keyed by the input byte
// it consumes.  off is the child's position in the packed buffer.
type edge struct {
	input byte
	off   int32
}

// writeEdges emits the edge section of a node record: the child count, the
// fixed record width, and one record per edge in ascending input-byte
// order.  Each record is the input byte followed by the child offset as a
// VInt padded with 0x00 up to the record width.
func writeEdges(b *bytebuf.Buffer, edges []edge) {
	width := 2
	for _, e := range edges {
		if w := 1 + vint.Size(e.off); w > width {
			width = w
		}
	}
	vint.Write(b, int32(len(edges)))
	vint.Write(b, int32(width))
	for _, e := range edges {
		b.PutByte(e.input)
		n := 1 + vint.Write(b, e.off)
		for ; n < width; n++ {
			b.PutByte(0)
		}
	}
}

// readEdgeHeader decodes the child count and record width at the cursor,
// leaving it positioned at the first edge record.
func readEdgeHeader(c *bytebuf.Cursor) (count, width int32, err error) {
	count, err = vint.Read(c)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: edge count: %s", ErrCorrupt, err)
	}
	width, err = vint.Read(c)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: edge width: %s", ErrCorrupt, err)
	}
	if count < 0 || width < 2 {
		return 0, 0, fmt.Errorf("%w: %d edges of width %d", ErrCorrupt, count, width)
	}
	return count, width, nil
}

// findChild binary-searches the fixed-width edge records starting at the
// cursor for the record whose input byte is key.  On a hit it returns the
// child's buffer offset and ok; on a miss ok is false.  The cursor
// position afterwards is unspecified.
func findChild(c *bytebuf.Cursor, count, width int32, key byte) (off int32, ok bool, err error) {
	base := c.Pos()
	lo, hi := int32(0), count-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if err := c.Seek(base + int(mid)*int(width)); err != nil {
			return 0, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		b, err := c.ReadByte()
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
		switch {
		case b < key:
			lo = mid + 1
		case b > key:
			hi = mid - 1
		default:
			off, err := vint.Read(c)
			if err != nil {
				return 0, false, fmt.Errorf("%w: edge offset: %s", ErrCorrupt, err)
			}
			if off < rootHeaderLen || int(off) >= c.Len() {
				return 0, false, fmt.Errorf("%w: edge offset %d outside buffer of %d bytes", ErrCorrupt, off, c.Len())
			}
			return off, true, nil
		}
	}
	return 0, false, nil
}

// writeRootOffset stores off in the buffer's fixed header.
func writeRootOffset(b *bytebuf.Buffer, off int32) {
	saved := b.Pos()
	b.SetPos(0)
	var hdr [rootHeaderLen]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(off))
	b.Put(hdr[:])
	b.SetPos(saved)
}

// readRootOffset decodes and validates the root offset of a packed buffer.
func readRootOffset(buf []byte) (int32, error) {
	if len(buf) < rootHeaderLen {
		return 0, fmt.Errorf("%w: %d-byte buffer has no root header", ErrCorrupt, len(buf))
	}
	off := int32(binary.BigEndian.Uint32(buf[:rootHeaderLen]))
	if off < rootHeaderLen || int(off) >= len(buf) {
		return 0, fmt.Errorf("%w: root offset %d outside buffer of %d bytes", ErrCorrupt, off, len(buf))
	}
	return off, nil
}
