/*
Copyright 2026 ScanDB Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
// Package fastmap provides specialized maps for int64 keys
package fastmap

import "math/bits"

// Int64Map is an open-addressed hash map for int64 keys. It is not safe for
// concurrent use; callers that share one across goroutines must serialize
// access themselves.
type Int64Map[V any] struct {
	entries []entry[V]
	mask    uint64
	count   int
	// resident counts live entries plus tombstones, which drives rehashing
	resident int
}

type entry[V any] struct {
	key   int64
	value V
	state uint8
}

const (
	stateEmpty uint8 = iota
	stateFull
	stateDeleted
)

// NewInt64Map creates a map with capacity for at least size entries
// before the first rehash
func NewInt64Map[V any](size int) *Int64Map[V] {
	power := uint(3) // minimum 8 slots
	for (1 << power) < size*2 {
		power++
	}
	n := uint64(1) << power
	return &Int64Map[V]{
		entries: make([]entry[V], n),
		mask:    n - 1,
	}
}

// hashFast is an optimized hash function for int64 keys
// that combines speed and excellent distribution
func hashFast(x int64) uint64 {
	key := uint64(x)

	// Fast avalanche function - spreads bits quickly
	key = key * 0xd6e8feb86659fd93
	key = bits.RotateLeft64(key, 32) ^ key

	return key
}

// Get retrieves a value by key
func (m *Int64Map[V]) Get(key int64) (V, bool) {
	idx := hashFast(key) & m.mask
	for {
		e := &m.entries[idx]
		switch e.state {
		case stateEmpty:
			var zero V
			return zero, false
		case stateFull:
			if e.key == key {
				return e.value, true
			}
		}
		idx = (idx + 1) & m.mask
	}
}

// Has checks if a key exists in the map without retrieving its value
func (m *Int64Map[V]) Has(key int64) bool {
	_, ok := m.Get(key)
	return ok
}

// Set adds or updates a key-value pair
func (m *Int64Map[V]) Set(key int64, value V) {
	if m.resident*4 >= len(m.entries)*3 {
		m.rehash()
	}
	idx := hashFast(key) & m.mask
	var grave = -1
	for {
		e := &m.entries[idx]
		switch e.state {
		case stateEmpty:
			if grave >= 0 {
				// reuse the first tombstone seen on the probe path
				e = &m.entries[grave]
			} else {
				m.resident++
			}
			e.key = key
			e.value = value
			e.state = stateFull
			m.count++
			return
		case stateFull:
			if e.key == key {
				e.value = value
				return
			}
		case stateDeleted:
			if grave < 0 {
				grave = int(idx)
			}
		}
		idx = (idx + 1) & m.mask
	}
}

// Del removes a key from the map, reporting whether it was present
func (m *Int64Map[V]) Del(key int64) bool {
	idx := hashFast(key) & m.mask
	for {
		e := &m.entries[idx]
		switch e.state {
		case stateEmpty:
			return false
		case stateFull:
			if e.key == key {
				var zero V
				e.value = zero
				e.state = stateDeleted
				m.count--
				return true
			}
		}
		idx = (idx + 1) & m.mask
	}
}

// Len returns the number of elements in the map
func (m *Int64Map[V]) Len() int {
	return m.count
}

// Clear removes all entries while keeping the allocated table
func (m *Int64Map[V]) Clear() {
	clear(m.entries)
	m.count = 0
	m.resident = 0
}

// ForEach iterates through all key-value pairs; iteration stops early
// when f returns false. The map must not be mutated during iteration.
func (m *Int64Map[V]) ForEach(f func(int64, V) bool) {
	for i := range m.entries {
		e := &m.entries[i]
		if e.state != stateFull {
			continue
		}
		if !f(e.key, e.value) {
			return
		}
	}
}

func (m *Int64Map[V]) rehash() {
	old := m.entries
	n := uint64(len(old)) * 2
	m.entries = make([]entry[V], n)
	m.mask = n - 1
	m.count = 0
	m.resident = 0
	for i := range old {
		if old[i].state == stateFull {
			m.Set(old[i].key, old[i].value)
		}
	}
}
