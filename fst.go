// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"encoding/binary"
	"fmt"

	"github.com/rsarathy/cdict/internal/bytebuf"
	"github.com/rsarathy/cdict/internal/bytesx"
	"github.com/rsarathy/cdict/internal/vint"
)

// FST node flags.
const (
	fstFlagKeyEnd    = 0x01
	fstFlagPrefixEnd = 0x02
	fstFlagHasValue  = 0x04

	fstFlagKnown = fstFlagKeyEnd | fstFlagPrefixEnd | fstFlagHasValue
)

// fstNode is a transducer node while the dictionary is still mutable.  Its
// value is a segment of the full values of the keys below it; a lookup
// concatenates the segments it passes through.
type fstNode struct {
	children map[byte]*fstNode
	value    bytesx.Bytes
	hasValue bool
	keyEnd   bool
	// prefixEnd marks a key stored with PutPrefix.
	prefixEnd bool
	depth     int32
	// off is the node's position in the packed buffer, assigned during
	// Compile.
	off int32
}

// FST is a CompiledDictionary that stores each value split along the edges
// of the key trie, so keys with a shared prefix store the shared prefix of
// their values exactly once.  During compilation, structurally identical
// suffix subtrees at the same depth collapse into a single record;
// identical subtrees at different depths are written separately.
type FST struct {
	opts options

	// Mutable state, released by Compile.
	root *fstNode
	keys int

	// Compiled state.
	packed  []byte
	rootOff int32
	closer  func() error
}

var _ CompiledDictionary = (*FST)(nil)

// NewFST returns an empty mutable FST.
func NewFST(opts ...Option) *FST {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FST{opts: o, root: &fstNode{}}
}

// Put associates value with key, replacing any existing association.
func (d *FST) Put(key, value []byte) error {
	return d.put(key, value, false)
}

// PutPrefix is Put, additionally marking key as a prefix that Get may
// report for longer keys that descend through it.
func (d *FST) PutPrefix(key, value []byte) error {
	return d.put(key, value, true)
}

// put walks the key, redistributing value segments as it goes: each node
// on the path keeps the longest prefix shared between its current segment
// and the incoming remainder, pushing the rest of its old segment down
// onto all of its children.  Whatever remains of the incoming value after
// the walk is stored on the terminal node.
func (d *FST) put(key, value []byte, prefixEnd bool) error {
	if d.packed != nil {
		return ErrCompiled
	}
	if key == nil {
		return ErrNilKey
	}
	if value == nil {
		return ErrNilValue
	}
	remainder := bytesx.New(value)
	node := d.root
	for i, b := range key {
		remainder = node.distribute(remainder)
		child, ok := node.children[b]
		if !ok {
			child = &fstNode{depth: int32(i + 1)}
			if node.children == nil {
				node.children = make(map[byte]*fstNode)
			}
			node.children[b] = child
		}
		node = child
	}
	if !node.keyEnd {
		d.keys++
	}
	node.value = remainder
	node.hasValue = true
	node.keyEnd = true
	node.prefixEnd = prefixEnd
	return nil
}

// distribute reconciles the node's value segment with an incoming
// remainder and returns what is left of the remainder for deeper nodes.
func (n *fstNode) distribute(remainder bytesx.Bytes) bytesx.Bytes {
	if !n.hasValue {
		n.value = remainder
		n.hasValue = true
		return bytesx.Empty
	}
	common := n.value.CommonPrefix(remainder)
	if pushed := n.value.Suffix(common.Len()); pushed.Len() > 0 {
		for _, child := range n.children {
			child.value = child.value.Prepend(pushed)
			child.hasValue = true
		}
	}
	n.value = common
	return remainder.Suffix(common.Len())
}

// Compile packs the transducer into a single immutable byte array.  Nodes
// are written deepest level first so that every edge points at an
// already-written child, and a node whose subtree is structurally
// identical to one already written at the same depth reuses the earlier
// record.
func (d *FST) Compile() {
	if d.packed != nil {
		return
	}
	buf := bytebuf.NewBuffer(64)
	buf.Put(make([]byte, rootHeaderLen))

	levels := fstLevelOrder(d.root)
	cache := make(map[string]int32)
	nodes, reused := 0, 0
	for i := len(levels) - 1; i >= 0; i-- {
		for _, n := range levels[i] {
			sig := n.signature()
			if off, ok := cache[sig]; ok {
				n.off = off
				reused++
				continue
			}
			d.writeNode(buf, n)
			cache[sig] = n.off
			nodes++
		}
	}
	writeRootOffset(buf, d.root.off)
	buf.Truncate()

	d.packed = buf.Used()
	d.rootOff = d.root.off
	d.opts.logger.Info("compiled fst",
		"keys", d.keys,
		"nodes", nodes,
		"reused", reused,
		"bytes", len(d.packed),
		"fingerprint", bytesx.New(d.packed).Hash32())
	d.root = nil
}

// signature encodes everything a node record depends on, including the
// already-assigned offsets of its children, plus the node's depth, so two
// nodes at the same depth share a signature exactly when their packed
// subtrees are byte-identical.
func (n *fstNode) signature() string {
	sig := make([]byte, 0, 16+5*len(n.children)+n.value.Len())
	sig = binary.BigEndian.AppendUint32(sig, uint32(len(n.children)))
	for _, in := range sortedInputs(n.children) {
		sig = append(sig, in)
		sig = binary.BigEndian.AppendUint32(sig, uint32(n.children[in].off))
	}
	sig = binary.BigEndian.AppendUint32(sig, uint32(n.value.Len()))
	sig = append(sig, n.value.Raw()...)
	sig = binary.BigEndian.AppendUint32(sig, uint32(n.depth))
	sig = append(sig, n.flags())
	return string(sig)
}

func (n *fstNode) flags() byte {
	var flags byte
	if n.keyEnd {
		flags |= fstFlagKeyEnd
	}
	if n.prefixEnd {
		flags |= fstFlagPrefixEnd
	}
	if n.value.Len() > 0 {
		flags |= fstFlagHasValue
	}
	return flags
}

func (d *FST) writeNode(b *bytebuf.Buffer, n *fstNode) {
	n.off = int32(b.Pos())
	b.PutByte(n.flags())
	if n.value.Len() > 0 {
		vint.Write(b, int32(n.value.Len()))
		b.Put([]byte(n.value))
	}
	edges := make([]edge, 0, len(n.children))
	for _, in := range sortedInputs(n.children) {
		edges = append(edges, edge{input: in, off: n.children[in].off})
	}
	writeEdges(b, edges)
}

// Get returns the value for key, or the value of the longest prefix of key
// stored with PutPrefix.  Get is safe for concurrent use once the
// dictionary is compiled; every call reads through its own cursor and
// accumulator.
func (d *FST) Get(key []byte) ([]byte, bool, error) {
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

	acc := []byte{}
	var prefixVal []byte
	prefixFound := false
	for i := 0; ; i++ {
		flags, err := c.ReadByte()
		if err != nil {
			return nil, false, fmt.Errorf("%w: node flags: %s", ErrCorrupt, err)
		}
		if flags&^byte(fstFlagKnown) != 0 {
			return nil, false, fmt.Errorf("%w: unknown node flags %#02x", ErrCorrupt, flags)
		}
		if flags&fstFlagHasValue != 0 {
			n, err := vint.Read(&c)
			if err != nil || n <= 0 {
				return nil, false, fmt.Errorf("%w: value segment length", ErrCorrupt)
			}
			seg, err := c.Next(int(n))
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s", ErrCorrupt, err)
			}
			acc = append(acc, seg...)
		}
		if i == len(key) {
			if flags&fstFlagKeyEnd != 0 {
				return acc, true, nil
			}
			break
		}
		if flags&fstFlagPrefixEnd != 0 {
			prefixVal = append([]byte(nil), acc...)
			prefixFound = true
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
	if prefixFound {
		return prefixVal, true, nil
	}
	return nil, false, nil
}

// Bytes returns the packed buffer, or nil before Compile.  The caller must
// not modify it.
func (d *FST) Bytes() []byte {
	return d.packed
}

// Save writes the packed buffer to path atomically.
func (d *FST) Save(path string) error {
	if d.packed == nil {
		return ErrNotCompiled
	}
	return writeFileAtomic(path, d.packed)
}

// Close releases the mapping of a dictionary returned by OpenFST.  It is a
// no-op for dictionaries built in memory.
func (d *FST) Close() error {
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	d.packed = nil
	return c()
}

func fstLevelOrder(root *fstNode) [][]*fstNode {
	var levels [][]*fstNode
	cur := []*fstNode{root}
	for len(cur) > 0 {
		levels = append(levels, cur)
		var next []*fstNode
		for _, n := range cur {
			for _, in := range sortedInputs(n.children) {
				next = append(next, n.children[in])
			}
		}
		cur = next
	}
	return levels
}
