// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashDictLen(t *testing.T) {
	d := NewHashDict()
	require.Zero(t, d.Len())
	require.NoError(t, d.Put([]byte("a"), []byte("1")))
	require.NoError(t, d.Put([]byte("b"), []byte("2")))
	require.NoError(t, d.Put([]byte("a"), []byte("3")))
	require.Equal(t, 2, d.Len())
}

func TestDerefHashDictInterning(t *testing.T) {
	d := NewDerefHashDict()
	for i := 0; i < 100; i++ {
		require.NoError(t, d.Put([]byte(fmt.Sprintf("key%02d", i)), []byte("shared")))
	}
	require.Equal(t, 100, d.Len())
	require.Equal(t, 1, d.Values())

	got, ok, err := d.Get([]byte("key42"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("shared"), got)
}
