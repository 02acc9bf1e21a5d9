// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require.Equal(t, Empty, New(nil))
	require.Equal(t, Empty, New([]byte{}))

	raw := []byte("abc")
	b := New(raw)
	raw[0] = 'x'
	require.Equal(t, Bytes("abc"), b)
}

func TestCompareIsUnsigned(t *testing.T) {
	require.Equal(t, -1, New([]byte{0x7F}).Compare(New([]byte{0x80})))
	require.Equal(t, 1, New([]byte{0xFF}).Compare(New([]byte{0x00})))
	require.Equal(t, 0, New([]byte("abc")).Compare(New([]byte("abc"))))
	require.Equal(t, -1, New([]byte("ab")).Compare(New([]byte("abc"))))
}

func TestCommonPrefix(t *testing.T) {
	require.Equal(t, Bytes("ab"), Bytes("abc").CommonPrefix("abd"))
	require.Equal(t, Bytes("abc"), Bytes("abc").CommonPrefix("abcdef"))
	require.Equal(t, Empty, Bytes("abc").CommonPrefix("xyz"))
	require.Equal(t, Empty, Empty.CommonPrefix("abc"))
}

func TestSuffix(t *testing.T) {
	require.Equal(t, Bytes("cd"), Bytes("abcd").Suffix(2))
	require.Equal(t, Bytes("abcd"), Bytes("abcd").Suffix(0))
	require.Equal(t, Empty, Bytes("abcd").Suffix(4))
	require.Equal(t, Empty, Bytes("abcd").Suffix(9))
}

func TestAppendPrepend(t *testing.T) {
	require.Equal(t, Bytes("abcd"), Bytes("ab").Append("cd"))
	require.Equal(t, Bytes("ab"), Bytes("ab").Append(Empty))
	require.Equal(t, Bytes("cd"), Empty.Append("cd"))
	require.Equal(t, Bytes("cdab"), Bytes("ab").Prepend("cd"))
}

func TestRawCopies(t *testing.T) {
	b := Bytes("abc")
	raw := b.Raw()
	raw[0] = 'x'
	require.Equal(t, Bytes("abc"), b)
}

func TestHash32(t *testing.T) {
	require.Equal(t, Bytes("abc").Hash32(), Bytes("abc").Hash32())
	require.NotEqual(t, Bytes("abc").Hash32(), Bytes("abd").Hash32())
}
