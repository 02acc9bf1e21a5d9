// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"slices"
)

// sortedInputs returns the keys of a child map in ascending unsigned byte
// order, the order edge records are laid out in.
func sortedInputs[N any](children map[byte]N) []byte {
	inputs := make([]byte, 0, len(children))
	for in := range children {
		inputs = append(inputs, in)
	}
	slices.Sort(inputs)
	return inputs
}
