// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

import (
	"errors"
	"io"
	"log/slog"
)

var (
	// ErrNilKey reports a Put or Get with a nil key.
	ErrNilKey = errors.New("nil key")
	// ErrNilValue reports a Put with a nil value.
	ErrNilValue = errors.New("nil value")
	// ErrCompiled reports a Put after Compile.
	ErrCompiled = errors.New("dictionary is already compiled")
	// ErrNotCompiled reports a Get or Save before Compile.
	ErrNotCompiled = errors.New("dictionary is not compiled")
	// ErrCorrupt reports a packed buffer that does not decode as a
	// dictionary.
	ErrCorrupt = errors.New("corrupt dictionary buffer")
)

// Dictionary is a mutable map from byte-string keys to byte-string values.
//
// Get distinguishes a stored empty value from an absent key: it returns
// (nil, false, nil) when the key is absent and (value, true, nil) when it
// is present, even if value is empty.
type Dictionary interface {
	// Put associates value with key, replacing any existing association.
	Put(key, value []byte) error
	// PutPrefix is Put, additionally marking key as a prefix that Get may
	// report for longer keys that descend through it.
	PutPrefix(key, value []byte) error
	// Get returns the value for key.  If no exact entry exists but some
	// prefix of key was stored with PutPrefix, Get returns the value of
	// the longest such prefix.
	Get(key []byte) ([]byte, bool, error)
}

// CompiledDictionary is a Dictionary with a two-phase lifecycle: Puts build
// an in-memory trie, Compile packs it into a single immutable byte array,
// and only then may Get, Bytes and Save be called.
type CompiledDictionary interface {
	Dictionary

	// Compile packs the dictionary.  Further Puts fail with ErrCompiled;
	// calling Compile again has no effect.
	Compile()
	// Bytes returns the packed buffer.  The caller must not modify it.
	Bytes() []byte
	// Save writes the packed buffer to path atomically.
	Save(path string) error
}

type options struct {
	logger *slog.Logger
}

// Option configures a dictionary at construction time.
type Option func(*options)

// WithLogger sets the logger the dictionary reports compilation statistics
// to.  By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
