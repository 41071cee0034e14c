// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ordmap implements a generic map that remembers insertion order.

Items are appended to a slice of key-value pairs, and a Go map holds
the index of each key in that slice, so lookup is a single map access
and iteration follows the order in which keys were first added.
Replacing the value for an existing key keeps its original position.
There is no deletion: the users of this package (the asset catalog
and its hot-reload watch list) never remove entries, which keeps
the indexes stable.
*/
package ordmap

import "fmt"

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map that combines the order of a slice
// and the fast key lookup of a map.
type Map[K comparable, V any] struct {

	// Order is the list of keys and values in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int `display:"-"`
}

// New returns a new ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		Map: make(map[K]int),
	}
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Reset removes all entries.
func (om *Map[K, V]) Reset() {
	om.Map = nil
	om.Order = nil
}

// Add sets the value for the given key. A new key is appended to the
// end of the order; an existing key keeps its position and has its
// value replaced. It returns true if the key was new.
func (om *Map[K, V]) Add(key K, val V) bool {
	om.Init()
	if idx, has := om.Map[key]; has {
		om.Order[idx].Value = val
		return false
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	return true
}

// Has returns whether the given key is in the map.
func (om *Map[K, V]) Has(key K) bool {
	_, has := om.Map[key]
	return has
}

// ValueByKey returns the value for the given key,
// or the zero value if the key is missing.
func (om *Map[K, V]) ValueByKey(key K) V {
	v, _ := om.ValueByKeyTry(key)
	return v
}

// ValueByKeyTry returns the value for the given key,
// and false if the key is missing.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if idx, ok := om.Map[key]; ok {
		return om.Order[idx].Value, true
	}
	var zv V
	return zv, false
}

// ValueByIndex returns the value at the given position in the order.
func (om *Map[K, V]) ValueByIndex(idx int) V {
	return om.Order[idx].Value
}

// IndexByKey returns the position of the given key, or -1 if missing.
func (om *Map[K, V]) IndexByKey(key K) int {
	if idx, ok := om.Map[key]; ok {
		return idx
	}
	return -1
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Keys returns a new slice of the keys in order. Because it is a copy,
// callers may keep using it while the map grows.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}

// Values returns a new slice of the values in order.
func (om *Map[K, V]) Values() []V {
	vl := make([]V, om.Len())
	for i, kv := range om.Order {
		vl[i] = kv.Value
	}
	return vl
}

// String returns a string representation of the map.
func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
