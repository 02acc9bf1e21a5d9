// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsarathy/cdict/internal/bytebuf"
)

func TestEncodings(t *testing.T) {
	for _, tc := range []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	} {
		b := bytebuf.NewBuffer(8)
		n := Write(b, tc.v)
		require.Equal(t, tc.want, b.Used(), "encoding of %d", tc.v)
		require.Equal(t, len(tc.want), n)
		require.Equal(t, len(tc.want), Size(tc.v))

		c := bytebuf.NewCursor(b.Used())
		got, err := Read(&c)
		require.NoError(t, err)
		require.Equal(t, tc.v, got)
		require.Equal(t, len(tc.want), c.Pos())
	}
}

func TestRoundTrip(t *testing.T) {
	b := bytebuf.NewBuffer(64)
	values := []int32{0, 1, 42, 127, 128, 255, 1 << 14, 1<<31 - 1, -1, -1 << 31}
	for _, v := range values {
		Write(b, v)
	}
	c := bytebuf.NewCursor(b.Used())
	for _, v := range values {
		got, err := Read(&c)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
	require.Equal(t, b.Pos(), c.Pos())
}

func TestReadTooLong(t *testing.T) {
	c := bytebuf.NewCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := Read(&c)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestReadTruncated(t *testing.T) {
	c := bytebuf.NewCursor([]byte{0x80, 0x80})
	_, err := Read(&c)
	require.ErrorIs(t, err, bytebuf.ErrOutOfRange)
}

func TestMaxLen(t *testing.T) {
	require.Equal(t, MaxLen, Size(-1))
	require.Equal(t, MaxLen, Size(-1<<31))
}
