// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cdict implements compact in-memory dictionaries from byte-string
// keys to byte-string values, with exact and longest-matching-prefix
// lookups.
//
// The interesting implementations are the two compiled variants, which pack
// a trie into a single immutable, position-independent byte array and answer
// lookups in O(len(key)) by binary-searching sorted fixed-width edge arrays:
//
//   - CompiledTrie stores each distinct value once in an interned value
//     table at the front of the buffer; trie nodes refer to values by
//     offset.
//   - FST splits values along edges so that shared value prefixes are
//     stored on shared key prefixes, and deduplicates structurally
//     identical suffix subtrees at the same depth during serialization;
//     identical subtrees at different depths are not merged.
//
// A packed dictionary looks like:
//
//	┌────────────────────────┐
//	│ root offset (4B, BE)   │
//	├────────────────────────┤
//	│ value table            │  CompiledTrie only:
//	│ (VInt len ∥ bytes)*    │  each distinct value once
//	├────────────────────────┤
//	│ node records,          │
//	│ deepest level first    │
//	│                        │
//	└────────────────────────┘
//
// Each node record is a flag byte, an optional value section, and a sorted
// array of fixed-width edges:
//
//	 0    1    2    3    4    5
//	+----+----------+-----+-----+------------------+
//	|flag| value    |#kids|width| edge records ... |
//	+----+----------+-----+-----+------------------+
//
// where each edge record is exactly width bytes: the input byte, then the
// child's buffer offset as a VInt padded with 0x00.
//
// Mutation is single-threaded: all Put calls must happen before Compile,
// and Compile before any Get.  After Compile the buffer is immutable and a
// single dictionary may serve any number of concurrent Gets; every lookup
// owns its own cursor.
package cdict
