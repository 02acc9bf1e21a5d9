// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"fmt"

	"github.com/rsarathy/cdict/internal/bytebuf"
	"github.com/rsarathy/cdict/internal/bytesx"
	"github.com/rsarathy/cdict/internal/vint"
)

// CompiledTrie node flags.
const (
	trieFlagHasValue  = 0x01
	trieFlagPrefixEnd = 0x02

	trieFlagKnown = trieFlagHasValue | trieFlagPrefixEnd
)

// ctNode is a trie node while the dictionary is still mutable.
type ctNode struct {
	children map[byte]*ctNode
	// valueOff is the node's value as an offset into the interned value
	// table, or -1 when the node carries no value.
	valueOff  int32
	prefixEnd bool
	// off is the node's position in the packed buffer, assigned during
	// Compile.
	off int32
}

func newCTNode() *ctNode {
	return &ctNode{valueOff: -1}
}

// CompiledTrie is a CompiledDictionary that interns every distinct value
// once in a table at the front of the packed buffer; trie nodes refer to
// their value by table offset, so keys sharing a value share its storage.
type CompiledTrie struct {
	opts options

	// Mutable state, released by Compile.
	root     *ctNode
	values   *bytebuf.Buffer
	valueOff map[bytesx.Bytes]int32
	keys     int

	// Compiled state.
	packed  []byte
	rootOff int32
	closer  func() error
}

var _ CompiledDictionary = (*CompiledTrie)(nil)

// NewCompiledTrie returns an empty mutable CompiledTrie.
func NewCompiledTrie(opts ...Option) *CompiledTrie {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CompiledTrie{
		opts:     o,
		root:     newCTNode(),
		values:   bytebuf.NewBuffer(64),
		valueOff: make(map[bytesx.Bytes]int32),
	}
}

// Put associates value with key, replacing any existing association.
func (d *CompiledTrie) Put(key, value []byte) error {
	return d.put(key, value, false)
}

// PutPrefix is Put, additionally marking key as a prefix that Get may
// report for longer keys that descend through it.
func (d *CompiledTrie) PutPrefix(key, value []byte) error {
	return d.put(key, value, true)
}

func (d *CompiledTrie) put(key, value []byte, prefixEnd bool) error {
	if d.packed != nil {
		return ErrCompiled
	}
	if key == nil {
		return ErrNilKey
	}
	if value == nil {
		return ErrNilValue
	}
	node := d.root
	for _, b := range key {
		child, ok := node.children[b]
		if !ok {
			child = newCTNode()
			if node.children == nil {
				node.children = make(map[byte]*ctNode)
			}
			node.children[b] = child
		}
		node = child
	}
	if node.valueOff < 0 {
		d.keys++
	}
	node.valueOff = d.internValue(bytesx.New(value))
	node.prefixEnd = prefixEnd
	return nil
}

// internValue stores v in the value table if it is not there yet and
// returns its table offset.
func (d *CompiledTrie) internValue(v bytesx.Bytes) int32 {
	if off, ok := d.valueOff[v]; ok {
		return off
	}
	off := int32(d.values.Pos())
	vint.Write(d.values, int32(v.Len()))
	d.values.Put([]byte(v))
	d.valueOff[v] = off
	return off
}

// Compile packs the trie into a single immutable byte array.  Nodes are
// written deepest level first so that every edge points at an
// already-written child.
func (d *CompiledTrie) Compile() {
	if d.packed != nil {
		return
	}
	buf := bytebuf.NewBuffer(rootHeaderLen + d.values.Pos())
	buf.Put(make([]byte, rootHeaderLen))
	buf.AppendBuffer(d.values)

	levels := levelOrder(d.root)
	nodes := 0
	for i := len(levels) - 1; i >= 0; i-- {
		for _, n := range levels[i] {
			d.writeNode(buf, n)
			nodes++
		}
	}
	writeRootOffset(buf, d.root.off)
	buf.Truncate()

	d.packed = buf.Used()
	d.rootOff = d.root.off
	d.opts.logger.Info("compiled trie",
		"keys", d.keys,
		"nodes", nodes,
		"values", len(d.valueOff),
		"bytes", len(d.packed),
		"fingerprint", bytesx.New(d.packed).Hash32())
	d.root = nil
	d.values = nil
	d.valueOff = nil
}

func (d *CompiledTrie) writeNode(b *bytebuf.Buffer, n *ctNode) {
	n.off = int32(b.Pos())
	var flags byte
	if n.valueOff >= 0 {
		flags |= trieFlagHasValue
	}
	if n.prefixEnd {
		flags |= trieFlagPrefixEnd
	}
	b.PutByte(flags)
	if n.valueOff >= 0 {
		vint.Write(b, n.valueOff)
	}
	edges := make([]edge, 0, len(n.children))
	for _, in := range sortedInputs(n.children) {
		edges = append(edges, edge{input: in, off: n.children[in].off})
	}
	writeEdges(b, edges)
}

// Get returns the value for key, or the value of the longest prefix of key
// stored with PutPrefix.  Get is safe for concurrent use once the
// dictionary is compiled; every call reads through its own cursor.
func (d *CompiledTrie) Get(key []byte) ([]byte, bool, error) {
	if d.packed == nil {
		return nil, false, ErrNotCompiled
	}
	if key == nil {
		return nil, false, ErrNilKey
	}
	c := bytebuf.NewCursor(d.packed)
	if err := c.Seek(int(d.rootOff)); err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
	}

	prefixOff := int32(-1)
	for i := 0; ; i++ {
		flags, err := c.ReadByte()
		if err != nil {
			return nil, false, fmt.Errorf("%w: node flags: %s", ErrCorrupt, err)
		}
		if flags&^trieFlagKnown != 0 {
			return nil, false, fmt.Errorf("%w: unknown node flags %#02x", ErrCorrupt, flags)
		}
		valueOff := int32(-1)
		if flags&trieFlagHasValue != 0 {
			if valueOff, err = vint.Read(&c); err != nil {
				return nil, false, fmt.Errorf("%w: value offset: %s", ErrCorrupt, err)
			}
		}
		if flags&trieFlagPrefixEnd != 0 {
			if valueOff < 0 {
				return nil, false, fmt.Errorf("%w: prefix end without value", ErrCorrupt)
			}
			prefixOff = valueOff
		}
		if i == len(key) {
			if valueOff >= 0 {
				return d.readValue(valueOff)
			}
			break
		}
		count, width, err := readEdgeHeader(&c)
		if err != nil {
			return nil, false, err
		}
		child, ok, err := findChild(&c, count, width, key[i])
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		if err := c.Seek(int(child)); err != nil {
			return nil, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
		}
	}
	if prefixOff >= 0 {
		return d.readValue(prefixOff)
	}
	return nil, false, nil
}

// readValue decodes the interned value at the given table offset.
func (d *CompiledTrie) readValue(off int32) ([]byte, bool, error) {
	c := bytebuf.NewCursor(d.packed)
	if err := c.Seek(rootHeaderLen + int(off)); err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
	}
	n, err := vint.Read(&c)
	if err != nil || n < 0 {
		return nil, false, fmt.Errorf("%w: value length at %d", ErrCorrupt, off)
	}
	p, err := c.Next(int(n))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
	}
	out := make([]byte, n)
	copy(out, p)
	return out, true, nil
}

// Bytes returns the packed buffer, or nil before Compile.  The caller must
// not modify it.
func (d *CompiledTrie) Bytes() []byte {
	return d.packed
}

// Save writes the packed buffer to path atomically.
func (d *CompiledTrie) Save(path string) error {
	if d.packed == nil {
		return ErrNotCompiled
	}
	return writeFileAtomic(path, d.packed)
}

// Close releases the mapping of a dictionary returned by OpenTrie.  It is
// a no-op for dictionaries built in memory.
func (d *CompiledTrie) Close() error {
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	d.packed = nil
	return c()
}

// levelOrder returns the nodes of the trie grouped by depth, shallowest
// level first.
func levelOrder(root *ctNode) [][]*ctNode {
	var levels [][]*ctNode
	cur := []*ctNode{root}
	for len(cur) > 0 {
		levels = append(levels, cur)
		var next []*ctNode
		for _, n := range cur {
			for _, in := range sortedInputs(n.children) {
				next = append(next, n.children[in])
			}
		}
		cur = next
	}
	return levels
}
