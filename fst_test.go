// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSTLifecycle(t *testing.T) {
	d := NewFST()
	require.NoError(t, d.Put([]byte("k"), []byte("v")))

	_, _, err := d.Get([]byte("k"))
	require.ErrorIs(t, err, ErrNotCompiled)
	require.Nil(t, d.Bytes())
	require.ErrorIs(t, d.Save(filepath.Join(t.TempDir(), "d.cdict")), ErrNotCompiled)

	d.Compile()
	packed := d.Bytes()
	require.NotEmpty(t, packed)

	require.ErrorIs(t, d.Put([]byte("k2"), []byte("v2")), ErrCompiled)
	require.ErrorIs(t, d.PutPrefix([]byte("k2"), []byte("v2")), ErrCompiled)

	d.Compile()
	require.Equal(t, packed, d.Bytes())

	got, ok, err := d.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), got)
}

// Values that extend each other along nested keys are stored once: the
// shared value prefix lands on the shared key prefix.
func TestFSTSharesValuePrefixes(t *testing.T) {
	d := NewFST()
	require.NoError(t, d.Put([]byte("a"), []byte("2025")))
	require.NoError(t, d.Put([]byte("ab"), []byte("202500")))
	d.Compile()

	got, ok, err := d.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("2025"), got)

	got, ok, err = d.Get([]byte("ab"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("202500"), got)

	require.Equal(t, 1, bytes.Count(d.Bytes(), []byte("2025")))
}

// Keys mapped to the same value leave identical suffix subtrees behind,
// which serialize to a single shared record.
func TestFSTDeduplicatesSuffixes(t *testing.T) {
	same := NewFST()
	for i := 0; i < 100; i++ {
		require.NoError(t, same.Put([]byte(fmt.Sprintf("key%02d", i)), []byte("shared-value")))
	}
	same.Compile()
	require.Equal(t, 1, bytes.Count(same.Bytes(), []byte("shared-value")))
	// The 100 leaf records alone take 300 bytes unless they share one record.
	require.Less(t, len(same.Bytes()), 100)

	distinct := NewFST()
	for i := 0; i < 100; i++ {
		require.NoError(t, distinct.Put([]byte(fmt.Sprintf("key%02d", i)), []byte(fmt.Sprintf("value-%04d", i))))
	}
	distinct.Compile()
	require.Less(t, len(same.Bytes()), len(distinct.Bytes()))
}

func TestFSTEmptyValueRoundTrip(t *testing.T) {
	d := NewFST()
	require.NoError(t, d.Put([]byte("flag"), []byte{}))
	require.NoError(t, d.Put([]byte("word"), []byte("x")))
	d.Compile()

	got, ok, err := d.Get([]byte("flag"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, got)

	got, ok, err = d.Get([]byte("word"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("x"), got)
}

func TestFSTSaveLoad(t *testing.T) {
	d := NewFST()
	require.NoError(t, d.PutPrefix([]byte("tele"), []byte("far")))
	require.NoError(t, d.Put([]byte("telephone"), []byte("farspeak")))
	d.Compile()

	path := filepath.Join(t.TempDir(), "words.fst")
	require.NoError(t, d.Save(path))

	loaded, err := LoadFST(path)
	require.NoError(t, err)
	require.Equal(t, d.Bytes(), loaded.Bytes())
	got, ok, err := loaded.Get([]byte("telephone"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("farspeak"), got)
	got, ok, err = loaded.Get([]byte("telegraph"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("far"), got)

	mapped, err := OpenFST(path)
	require.NoError(t, err)
	got, ok, err = mapped.Get([]byte("telephone"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("farspeak"), got)
	require.NoError(t, mapped.Close())
	require.NoError(t, mapped.Close())
}

func TestFSTGetCorruptFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badflags.fst")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x00, 0x00, 0x04, 0xF0}, 0o644))
	d, err := LoadFST(path)
	require.NoError(t, err)
	_, _, err = d.Get([]byte("a"))
	require.ErrorIs(t, err, ErrCorrupt)
}

// The reference dataset: 25k six-digit postal codes in one dense range,
// each mapped to one of four region values.  Dense key ranges leave
// structurally identical subtrees everywhere, so suffix dedup collapses
// the bulk of the transducer.
func TestFSTCompressionBound(t *testing.T) {
	fst := NewFST()
	trie := NewCompiledTrie()
	for i := 0; i < 25000; i++ {
		key := []byte(fmt.Sprintf("5%05d", i))
		value := []byte(fmt.Sprintf("region-%02d", i%4))
		require.NoError(t, fst.Put(key, value))
		require.NoError(t, trie.Put(key, value))
	}
	fst.Compile()
	trie.Compile()

	require.LessOrEqual(t, len(fst.Bytes()), 100*1024)
	require.Less(t, len(fst.Bytes()), len(trie.Bytes()))

	for _, i := range []int{0, 1, 2, 3, 9999, 24999} {
		got, ok, err := fst.Get([]byte(fmt.Sprintf("5%05d", i)))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte(fmt.Sprintf("region-%02d", i%4)), got)
	}
	_, ok, err := fst.Get([]byte("525000"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFSTRandomOracle(t *testing.T) {
	rng := testRNG()
	oracle := make(map[string]string)
	d := NewFST()
	for len(oracle) < 2000 {
		key := make([]byte, 8)
		rng.Read(key)
		value := []byte(fmt.Sprintf("value-%d", rng.Intn(8)))
		oracle[string(key)] = string(value)
		require.NoError(t, d.Put(key, value))
	}
	d.Compile()

	for k, v := range oracle {
		got, ok, err := d.Get([]byte(k))
		require.NoError(t, err)
		require.True(t, ok, "key %x", k)
		require.Equal(t, []byte(v), got)
	}
	for i := 0; i < 500; i++ {
		key := make([]byte, 9)
		rng.Read(key)
		_, ok, err := d.Get(key)
		require.NoError(t, err)
		require.False(t, ok)
	}
}
