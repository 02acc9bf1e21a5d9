// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicTrieStaysMutable(t *testing.T) {
	d := NewBasicTrie()
	require.NoError(t, d.Put([]byte("a"), []byte("1")))
	got, ok, err := d.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), got)

	// No compile step: later puts are visible immediately.
	require.NoError(t, d.Put([]byte("a"), []byte("2")))
	require.NoError(t, d.Put([]byte("ab"), []byte("3")))
	got, _, err = d.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got)
	require.Equal(t, 2, d.Len())
}

func TestDerefTrieInterning(t *testing.T) {
	d := NewDerefTrie()
	for i := 0; i < 100; i++ {
		require.NoError(t, d.Put([]byte(fmt.Sprintf("key%02d", i)), []byte("shared")))
	}
	require.Equal(t, 100, d.Len())
	require.Equal(t, 1, d.Values())

	got, ok, err := d.Get([]byte("key07"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("shared"), got)
}
