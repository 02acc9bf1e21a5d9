// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Cdict builds packed dictionaries from key:value text files and queries
// them back.
//
//	cdict build words.txt words.cdict
//	cdict get words.cdict hello world
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/rsarathy/cdict"
)

func main() {
	os.Exit(Main())
}

var (
	useFST   = flag.Bool("fst", false, "use the value-splitting FST format instead of the interned-value trie")
	useMmap  = flag.Bool("mmap", false, "get: map the dictionary instead of reading it into memory")
	asPrefix = flag.Bool("prefix", false, "build: mark every key as a prefix for longest-prefix lookups")
	sep      = flag.String("sep", ":", "build: single-byte separator between key and value")
)

func Main() int {
	cli.ArgsHelp = "build <pairs-file> <out-file>  |  get <dict-file> <key>..."
	cli.MinArgs = 2
	cli.MaxArgs = -1
	cli.Main()
	args := flag.Args()
	switch args[0] {
	case "build":
		if len(args) != 3 {
			return log.FErrf("build takes exactly a pairs file and an output file")
		}
		return build(args[1], args[2])
	case "get":
		return get(args[1], args[2:])
	default:
		return log.FErrf("unknown command %q", args[0])
	}
}

func build(in, out string) int {
	if len(*sep) != 1 {
		return log.FErrf("separator must be a single byte, got %q", *sep)
	}
	f, err := os.Open(in)
	if err != nil {
		return log.FErrf("open %s: %v", in, err)
	}
	defer f.Close()

	var opts []cdict.Option
	if log.LogVerbose() {
		opts = append(opts, cdict.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	var dict cdict.CompiledDictionary
	if *useFST {
		dict = cdict.NewFST(opts...)
	} else {
		dict = cdict.NewCompiledTrie(opts...)
	}

	put := dict.Put
	if *asPrefix {
		put = dict.PutPrefix
	}
	n, lineNo := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		key, value, ok := splitPair(line, (*sep)[0])
		if !ok {
			return log.FErrf("%s: line %d has no separator %q", in, lineNo, *sep)
		}
		if err := put(key, value); err != nil {
			return log.FErrf("put: %v", err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return log.FErrf("read %s: %v", in, err)
	}

	dict.Compile()
	if err := dict.Save(out); err != nil {
		return log.FErrf("save %s: %v", out, err)
	}
	log.Infof("packed %d entries from %s into %s (%d bytes)", n, in, out, len(dict.Bytes()))
	return 0
}

func get(path string, keys []string) int {
	var dict cdict.Dictionary
	var err error
	switch {
	case *useFST && *useMmap:
		var d *cdict.FST
		if d, err = cdict.OpenFST(path); err == nil {
			defer d.Close()
			dict = d
		}
	case *useFST:
		dict, err = cdict.LoadFST(path)
	case *useMmap:
		var d *cdict.CompiledTrie
		if d, err = cdict.OpenTrie(path); err == nil {
			defer d.Close()
			dict = d
		}
	default:
		dict, err = cdict.LoadTrie(path)
	}
	if err != nil {
		return log.FErrf("load %s: %v", path, err)
	}

	missing := 0
	for _, key := range keys {
		value, ok, err := dict.Get([]byte(key))
		if err != nil {
			return log.FErrf("get %q: %v", key, err)
		}
		if !ok {
			fmt.Printf("%s: <absent>\n", key)
			missing++
			continue
		}
		fmt.Printf("%s: %s\n", key, value)
	}
	return missing
}

// special case of SplitN that doesn't require allocation
func splitPair(s []byte, sep byte) (l []byte, r []byte, ok bool) {
	m := bytes.IndexByte(s, sep)
	if m < 0 {
		return nil, nil, false
	}
	return s[:m], s[m+1:], true
}
