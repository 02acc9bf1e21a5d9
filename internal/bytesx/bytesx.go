// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bytesx provides an immutable byte-string value type.
//
// Bytes is backed by a Go string, so it is comparable with ==, usable as a
// map key, and ordered byte-wise unsigned by the built-in comparison.  All
// slicing helpers return new values and never mutate their receivers or
// arguments.
package bytesx

import (
	"github.com/dgryski/go-farm"
)

// Bytes is an immutable sequence of unsigned bytes.
type Bytes string

// Empty is the distinguished zero-length byte string.
const Empty Bytes = ""

// New copies b into an immutable Bytes.  A nil slice becomes Empty.
func New(b []byte) Bytes {
	return Bytes(b)
}

func (b Bytes) Len() int {
	return len(b)
}

// Raw returns a fresh copy of the underlying bytes.
func (b Bytes) Raw() []byte {
	return []byte(b)
}

// Compare orders byte-wise unsigned: -1, 0 or 1.
func (b Bytes) Compare(other Bytes) int {
	switch {
	case b < other:
		return -1
	case b > other:
		return 1
	default:
		return 0
	}
}

// Hash32 returns a 32-bit hash of the contents that is stable across runs
// and platforms.
func (b Bytes) Hash32() uint32 {
	return farm.Fingerprint32([]byte(b))
}

// CommonPrefix returns the longest prefix shared by b and other.
func (b Bytes) CommonPrefix(other Bytes) Bytes {
	n := len(b)
	if len(other) < n {
		n = len(other)
	}
	i := 0
	for i < n && b[i] == other[i] {
		i++
	}
	return b[:i]
}

// Suffix returns the bytes of b from offset on; Empty if offset runs past
// the end.
func (b Bytes) Suffix(offset int) Bytes {
	if offset >= len(b) {
		return Empty
	}
	return b[offset:]
}

// Append returns b followed by other.
func (b Bytes) Append(other Bytes) Bytes {
	if len(other) == 0 {
		return b
	}
	if len(b) == 0 {
		return other
	}
	return b + other
}

// Prepend returns other followed by b.
func (b Bytes) Prepend(other Bytes) Bytes {
	return other.Append(b)
}
