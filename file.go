// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// writeFileAtomic writes data to a temporary sibling of path, syncs it,
// marks it read-only, and renames it into place, so readers never observe
// a partially written dictionary.
func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.Name(), err)
	}
	if err := os.Chmod(f.Name(), 0o444); err != nil {
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// loadPacked reads a packed dictionary into the heap and validates its
// header.
func loadPacked(path string) ([]byte, int32, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	rootOff, err := readRootOffset(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return buf, rootOff, nil
}

// mmapPacked maps a packed dictionary read-only and validates its header.
// Lookups touch scattered offsets, so the mapping is advised for random
// access.
func mmapPacked(path string) ([]byte, int32, func() error, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, 0, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Size == 0 {
		return nil, 0, nil, fmt.Errorf("%s: %w: empty file", path, ErrCorrupt)
	}
	buf, err := unix.Mmap(fd, 0, int(st.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if err := unix.Madvise(buf, unix.MADV_RANDOM); err != nil {
		unix.Munmap(buf)
		return nil, 0, nil, fmt.Errorf("madvise %s: %w", path, err)
	}
	rootOff, err := readRootOffset(buf)
	if err != nil {
		unix.Munmap(buf)
		return nil, 0, nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, rootOff, func() error { return unix.Munmap(buf) }, nil
}

// LoadTrie reads a packed CompiledTrie from path into memory.
func LoadTrie(path string, opts ...Option) (*CompiledTrie, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	buf, rootOff, err := loadPacked(path)
	if err != nil {
		return nil, err
	}
	return &CompiledTrie{opts: o, packed: buf, rootOff: rootOff}, nil
}

// OpenTrie maps a packed CompiledTrie from path without reading it into
// the heap.  The caller must Close the returned dictionary.
func OpenTrie(path string, opts ...Option) (*CompiledTrie, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	buf, rootOff, closer, err := mmapPacked(path)
	if err != nil {
		return nil, err
	}
	return &CompiledTrie{opts: o, packed: buf, rootOff: rootOff, closer: closer}, nil
}

// LoadFST reads a packed FST from path into memory.
func LoadFST(path string, opts ...Option) (*FST, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	buf, rootOff, err := loadPacked(path)
	if err != nil {
		return nil, err
	}
	return &FST{opts: o, packed: buf, rootOff: rootOff}, nil
}

// OpenFST maps a packed FST from path without reading it into the heap.
// The caller must Close the returned dictionary.
func OpenFST(path string, opts ...Option) (*FST, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	buf, rootOff, closer, err := mmapPacked(path)
	if err != nil {
		return nil, err
	}
	return &FST{opts: o, packed: buf, rootOff: rootOff, closer: closer}, nil
}
