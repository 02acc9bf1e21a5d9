// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"github.com/rsarathy/cdict/internal/bytesx"
)

type btNode struct {
	children  map[byte]*btNode
	value     bytesx.Bytes
	hasValue  bool
	prefixEnd bool
}

// BasicTrie is a mutable pointer-based trie Dictionary.  Unlike the
// compiled dictionaries it stays mutable forever; it serves as the
// uncompressed counterpart the packed variants are measured against.
type BasicTrie struct {
	root *btNode
	keys int
}

var _ Dictionary = (*BasicTrie)(nil)

// NewBasicTrie returns an empty BasicTrie.
func NewBasicTrie() *BasicTrie {
	return &BasicTrie{root: &btNode{}}
}

// Put associates value with key, replacing any existing association.
func (d *BasicTrie) Put(key, value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return d.put(key, bytesx.New(value), false)
}

// PutPrefix is Put, additionally marking key as a prefix that Get may
// report for longer keys that descend through it.
func (d *BasicTrie) PutPrefix(key, value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return d.put(key, bytesx.New(value), true)
}

func (d *BasicTrie) put(key []byte, value bytesx.Bytes, prefixEnd bool) error {
	if key == nil {
		return ErrNilKey
	}
	node := d.root
	for _, b := range key {
		child, ok := node.children[b]
		if !ok {
			child = &btNode{}
			if node.children == nil {
				node.children = make(map[byte]*btNode)
			}
			node.children[b] = child
		}
		node = child
	}
	if !node.hasValue {
		d.keys++
	}
	node.value = value
	node.hasValue = true
	node.prefixEnd = prefixEnd
	return nil
}

// Get returns the value for key, or the value of the longest prefix of key
// stored with PutPrefix.
func (d *BasicTrie) Get(key []byte) ([]byte, bool, error) {
	if key == nil {
		return nil, false, ErrNilKey
	}
	node := d.root
	var prefix *btNode
	for i := 0; i < len(key); i++ {
		if node.prefixEnd {
			prefix = node
		}
		child, ok := node.children[key[i]]
		if !ok {
			node = nil
			break
		}
		node = child
	}
	if node != nil && node.hasValue {
		return node.value.Raw(), true, nil
	}
	if prefix != nil {
		return prefix.value.Raw(), true, nil
	}
	return nil, false, nil
}

// Len returns the number of stored keys.
func (d *BasicTrie) Len() int {
	return d.keys
}

// DerefTrie is a BasicTrie that interns values, so keys mapped to equal
// values share a single stored copy.
type DerefTrie struct {
	BasicTrie
	intern map[bytesx.Bytes]bytesx.Bytes
}

var _ Dictionary = (*DerefTrie)(nil)

// NewDerefTrie returns an empty DerefTrie.
func NewDerefTrie() *DerefTrie {
	return &DerefTrie{
		BasicTrie: BasicTrie{root: &btNode{}},
		intern:    make(map[bytesx.Bytes]bytesx.Bytes),
	}
}

// Put associates value with key, replacing any existing association.
func (d *DerefTrie) Put(key, value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return d.put(key, d.internValue(bytesx.New(value)), false)
}

// PutPrefix is Put, additionally marking key as a prefix that Get may
// report for longer keys that descend through it.
func (d *DerefTrie) PutPrefix(key, value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return d.put(key, d.internValue(bytesx.New(value)), true)
}

func (d *DerefTrie) internValue(v bytesx.Bytes) bytesx.Bytes {
	if canon, ok := d.intern[v]; ok {
		return canon
	}
	d.intern[v] = v
	return v
}

// Values returns the number of distinct stored values.
func (d *DerefTrie) Values() int {
	return len(d.intern)
}
