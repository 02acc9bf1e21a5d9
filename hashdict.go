// Copyright 2025 The cdict Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdict

// HashDict is the simplest Dictionary: a Go map.  It supports exact
// lookups only; PutPrefix stores the entry but the prefix marking has no
// effect on Get.
type HashDict struct {
	m map[string]string
}

var _ Dictionary = (*HashDict)(nil)

// NewHashDict returns an empty HashDict.
func NewHashDict() *HashDict {
	return &HashDict{m: make(map[string]string)}
}

// Put associates value with key, replacing any existing association.
func (d *HashDict) Put(key, value []byte) error {
	if key == nil {
		return ErrNilKey
	}
	if value == nil {
		return ErrNilValue
	}
	d.m[string(key)] = string(value)
	return nil
}

// PutPrefix stores the entry like Put.  HashDict cannot answer
// longest-prefix lookups, so the marking is dropped.
func (d *HashDict) PutPrefix(key, value []byte) error {
	return d.Put(key, value)
}

// Get returns the value stored for exactly key.
func (d *HashDict) Get(key []byte) ([]byte, bool, error) {
	if key == nil {
		return nil, false, ErrNilKey
	}
	v, ok := d.m[string(key)]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Len returns the number of stored keys.
func (d *HashDict) Len() int {
	return len(d.m)
}

// DerefHashDict is a HashDict that interns values, so keys mapped to equal
// values share a single stored copy.
type DerefHashDict struct {
	m      map[string]string
	intern map[string]string
}

var _ Dictionary = (*DerefHashDict)(nil)

// NewDerefHashDict returns an empty DerefHashDict.
func NewDerefHashDict() *DerefHashDict {
	return &DerefHashDict{
		m:      make(map[string]string),
		intern: make(map[string]string),
	}
}

// Put associates value with key, replacing any existing association.
func (d *DerefHashDict) Put(key, value []byte) error {
	if key == nil {
		return ErrNilKey
	}
	if value == nil {
		return ErrNilValue
	}
	v := string(value)
	canon, ok := d.intern[v]
	if !ok {
		canon = v
		d.intern[v] = v
	}
	d.m[string(key)] = canon
	return nil
}

// PutPrefix stores the entry like Put; the prefix marking is dropped.
func (d *DerefHashDict) PutPrefix(key, value []byte) error {
	return d.Put(key, value)
}

// Get returns the value stored for exactly key.
func (d *DerefHashDict) Get(key []byte) ([]byte, bool, error) {
	if key == nil {
		return nil, false, ErrNilKey
	}
	v, ok := d.m[string(key)]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Len returns the number of stored keys.
func (d *DerefHashDict) Len() int {
	return len(d.m)
}

// Values returns the number of distinct stored values.
func (d *DerefHashDict) Values() int {
	return len(d.intern)
}
