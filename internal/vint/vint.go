// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package vint reads and writes 32-bit integers in a variable number of
// bytes: little-endian groups of 7 bits, with the high bit of each byte set
// while more groups follow.  Small non-negative integers take one byte;
// negative integers always take MaxLen bytes.
package vint

import (
	"errors"

	"github.com/rsarathy/cdict/internal/bytebuf"
)

// MaxLen is the largest encoding of a 32-bit integer: ceil(32/7) bytes.
const MaxLen = 5

const (
	continuationBit = 0x80
	payloadMask     = 0x7F
)

// ErrTooLong reports an encoding that runs past MaxLen bytes, which no
// 32-bit integer produces.
var ErrTooLong = errors.New("vint longer than 5 bytes")

// Write encodes v at the buffer's cursor and returns the number of bytes
// written.
func Write(b *bytebuf.Buffer, v int32) int {
	u := uint32(v)
	n := 1
	for u&^payloadMask != 0 {
		b.PutByte(byte(u&payloadMask | continuationBit))
		u >>= 7
		n++
	}
	b.PutByte(byte(u))
	return n
}

// Size returns the number of bytes Write would use for v without writing.
func Size(v int32) int {
	u := uint32(v)
	n := 1
	for u&^payloadMask != 0 {
		u >>= 7
		n++
	}
	return n
}

// Read decodes a value at the cursor, advancing past it.
func Read(c *bytebuf.Cursor) (int32, error) {
	var v uint32
	shift := 0
	for i := 0; i < MaxLen; i++ {
		cur, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if cur&continuationBit == 0 {
			return int32(v | uint32(cur)<<shift), nil
		}
		v |= uint32(cur&payloadMask) << shift
		shift += 7
	}
	return 0, ErrTooLong
}
