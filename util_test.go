// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedInputs(t *testing.T) {
	children := map[byte]int{0xFF: 1, 0x00: 2, 0x80: 3, 'a': 4}
	require.Equal(t, []byte{0x00, 'a', 0x80, 0xFF}, sortedInputs(children))
	require.Empty(t, sortedInputs(map[byte]int(nil)))
}
