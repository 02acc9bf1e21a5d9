// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Gen-testdata prints key:value pairs shaped like a postal-code table:
// many distinct keys drawn from a small alphabet, mapped to a handful of
// distinct values.  The shared key prefixes and repeated values are what
// the packed dictionary formats are built to compress.
package main

import (
	"flag"
	"fmt"

	"lukechampine.com/frand"
)

var (
	nPairs  = flag.Int("n", 25000, "number of pairs to generate")
	nValues = flag.Int("values", 4, "number of distinct values")
	seed    = flag.Uint64("seed", 0, "random seed, 0 for nondeterministic output")
)

const keyAlphabet = "0123456789"

func main() {
	flag.Parse()
	rng := frand.New()
	if *seed != 0 {
		var key [32]byte
		key[0] = byte(*seed)
		key[1] = byte(*seed >> 8)
		key[2] = byte(*seed >> 16)
		key[3] = byte(*seed >> 24)
		rng = frand.NewCustom(key[:], 1024, 12)
	}

	values := make([]string, *nValues)
	for i := range values {
		values[i] = fmt.Sprintf("region-%02d", i)
	}

	seen := make(map[string]struct{}, *nPairs)
	for len(seen) < *nPairs {
		key := make([]byte, 6)
		for i := range key {
			key[i] = keyAlphabet[rng.Intn(len(keyAlphabet))]
		}
		if _, ok := seen[string(key)]; ok {
			continue
		}
		seen[string(key)] = struct{}{}
		fmt.Printf("%s:%s\n", key, values[rng.Intn(len(values))])
	}
}
