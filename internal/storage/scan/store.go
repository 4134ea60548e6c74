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
package scan

import (
	"fmt"

	"github.com/scandb/scandb/internal/storage"
)

// freeListEnd terminates the free-slot chain
const freeListEnd = int64(-1)

// slot is one cell of the row arena: occupied (row != nil) or free, in which
// case next links it into the free list.
type slot struct {
	row  *storage.Row
	next int64
}

// slotStore is a growable arena of row slots with an inline free list.
// Vacated slots are recycled, never released: a remove threads the slot onto
// the free list and the next add pops it off again in O(1). The occupied
// count is maintained incrementally so row-count queries never rescan.
//
// slotStore is not safe for concurrent use; ScanIndex serializes access.
type slotStore struct {
	slots     []slot
	firstFree int64
	count     int64
}

func newSlotStore() *slotStore {
	return &slotStore{firstFree: freeListEnd}
}

// add places the row in the first free slot, or appends a new slot when the
// free list is empty. The assigned key is stamped onto the row and its delete
// marker is cleared.
func (s *slotStore) add(row *storage.Row) int64 {
	var key int64
	if s.firstFree == freeListEnd {
		key = int64(len(s.slots))
		s.slots = append(s.slots, slot{row: row, next: freeListEnd})
	} else {
		key = s.firstFree
		s.firstFree = s.slots[key].next
		s.slots[key] = slot{row: row, next: freeListEnd}
	}
	row.SetKey(key)
	row.SetDeleted(false)
	s.count++
	return key
}

// remove vacates the slot at key and makes it the new free-list head. A key
// beyond the arena, or one naming a slot that is already free, fails with
// ErrSlotNotFound; the second case would otherwise thread the slot onto the
// free list twice and break the chain.
func (s *slotStore) remove(key int64) error {
	if key < 0 || key >= int64(len(s.slots)) {
		return fmt.Errorf("%w: length %d, slot %d", storage.ErrSlotNotFound, len(s.slots), key)
	}
	if s.slots[key].row == nil {
		return fmt.Errorf("%w: slot %d is free", storage.ErrSlotNotFound, key)
	}
	s.slots[key] = slot{next: s.firstFree}
	s.firstFree = key
	s.count--
	return nil
}

// get returns the row stored at key, or nil when the slot is free or the key
// is out of range. Callers are expected to pass only keys obtained from add
// or from iteration.
func (s *slotStore) get(key int64) *storage.Row {
	if key < 0 || key >= int64(len(s.slots)) {
		return nil
	}
	return s.slots[key].row
}

// nextOccupied scans forward from key, exclusive, and returns the first
// occupied slot's row. Pass storage.NoKey to start from the beginning.
// Returns nil when no further occupied slot exists.
func (s *slotStore) nextOccupied(key int64) *storage.Row {
	for k := key + 1; k < int64(len(s.slots)); k++ {
		if row := s.slots[k].row; row != nil && !row.IsEmpty() {
			return row
		}
	}
	return nil
}

// reset drops every slot and empties the free list
func (s *slotStore) reset() {
	s.slots = nil
	s.firstFree = freeListEnd
	s.count = 0
}

// len returns the number of occupied slots
func (s *slotStore) len() int64 {
	return s.count
}

// arenaLen returns the physical length of the arena, occupied and free
// slots included
func (s *slotStore) arenaLen() int64 {
	return int64(len(s.slots))
}
