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
// Package scan implements the table-scan row store of a table: an ordered,
// growable sequence of row slots with free-slot recycling, sequential
// cursors, and - when the database runs in multi-version mode - exact
// per-session row visibility tracking.
//
// A scan index is not an index in the strict sense: it cannot be used for
// lookup by key, only to iterate over all rows of a table in slot order.
// Every table has one, even when no other index is defined.
package scan

import (
	"fmt"
	"sync"

	"github.com/scandb/scandb/internal/storage"
)

// costRowOffset biases the planner against full scans relative to indexed
// access. Tuning constant, not derived.
const costRowOffset = 1000

// CommitOp says which kind of pending operation a commit retires
type CommitOp int

const (
	// CommitInsert commits a pending row insert
	CommitInsert CommitOp = iota
	// CommitDelete commits a pending row delete
	CommitDelete
)

// Table is the surface of the owning table the scan index reports to
type Table interface {
	ID() int64
	Name() string
	SetRowCount(count int64)
	ContainsLargeObject() bool
	IsPersistent() bool
}

// LobStore removes out-of-row large-object data; consulted only on truncate
// of a persistent table that stores large objects.
type LobStore interface {
	RemoveAllForTable(tableID int64) error
}

// ScanIndex is the full-table scan storage of one table. All operations
// serialize on one coarse mutex: free-list pointer chasing and delta-set
// toggling are not safe under unsynchronized concurrent mutation, and a lost
// update there corrupts the free-list chain or the drift counter
// irrecoverably.
type ScanIndex struct {
	mu           sync.Mutex
	table        Table
	lobs         LobStore
	name         string
	multiVersion bool
	store        *slotStore
	tracker      *sessionTracker
}

// NewScanIndex creates the scan index for a table. The multi-version flag is
// read once here and assumed stable for the index's lifetime. lobs may be
// nil when the table never stores large objects.
func NewScanIndex(table Table, lobs LobStore, multiVersion bool) *ScanIndex {
	idx := &ScanIndex{
		table:        table,
		lobs:         lobs,
		name:         table.Name() + "_DATA",
		multiVersion: multiVersion,
		store:        newSlotStore(),
	}
	if multiVersion {
		idx.tracker = newSessionTracker()
	}
	return idx
}

// Name returns the index name
func (s *ScanIndex) Name() string {
	return s.name
}

// MultiVersion reports whether the index tracks per-session visibility
func (s *ScanIndex) MultiVersion() bool {
	return s.multiVersion
}

// Add stores the row, reusing a free slot when one exists, and returns the
// assigned slot key. In multi-version mode the caller is expected to have
// stamped the owning session onto the row; the insert is registered as a
// pending change of sessionID until Commit retires it.
func (s *ScanIndex) Add(sessionID int64, row *storage.Row) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.store.add(row)
	if s.multiVersion {
		if err := s.tracker.onAdd(row, sessionID); err != nil {
			// vacate the slot again so store and tracker stay consistent
			s.store.remove(key)
			row.SetKey(storage.NoKey)
			return 0, err
		}
	}
	return key, nil
}

// Remove vacates the row's slot, threading it onto the free list for reuse.
// When this empties the store outside multi-version mode, the store is reset
// wholesale instead of keeping a single free slot. In multi-version mode the
// row is marked deleted and stays in the delta set so sessions other than
// sessionID keep seeing it until the delete commits.
func (s *ScanIndex) Remove(sessionID int64, row *storage.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.multiVersion && s.store.len() == 1 {
		s.store.reset()
	} else if err := s.store.remove(row.Key()); err != nil {
		return err
	}
	if s.multiVersion {
		if err := s.tracker.onRemove(row, sessionID); err != nil {
			// the vacated slot is the free-list head, so re-adding restores
			// the row under its old key
			s.store.add(row)
			return err
		}
	}
	return nil
}

// Commit retires the row's pending insert or delete, finalizing its
// visibility for every session. Outside multi-version mode there is nothing
// to retire and the call is a no-op.
func (s *ScanIndex) Commit(op CommitOp, row *storage.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.multiVersion {
		return nil
	}
	return s.tracker.onCommit(row, op)
}

// Truncate resets the store to empty: no slots, no free list, no delta set,
// zero adjustments for every session. Large-object data of a persistent
// table is removed through the lob store; a failure there is reported after
// the in-memory reset has already completed.
func (s *ScanIndex) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.reset()
	if s.multiVersion {
		s.tracker.truncate()
	}
	var err error
	if s.lobs != nil && s.table.ContainsLargeObject() && s.table.IsPersistent() {
		err = s.lobs.RemoveAllForTable(s.table.ID())
	}
	s.table.SetRowCount(0)
	return err
}

// Row returns the row stored at the given slot key, or nil when the slot is
// free. Callers are expected to pass only keys obtained from Add or from
// iteration.
func (s *ScanIndex) Row(key int64) *storage.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.get(key)
}

// RowCount returns the number of rows visible to the given session: in
// multi-version mode the committed rows adjusted by the session's own
// pending changes, otherwise the plain occupied count.
func (s *ScanIndex) RowCount(sessionID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.multiVersion {
		return s.tracker.visibleCount(sessionID, s.store.len())
	}
	return s.store.len()
}

// ApproxRowCount returns the physical occupied count, ignoring per-session
// visibility
func (s *ScanIndex) ApproxRowCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.len()
}

// Cost estimates the cost of a full scan for the planner
func (s *ScanIndex) Cost() float64 {
	return float64(s.ApproxRowCount()) + costRowOffset
}

// Find returns a cursor over the rows visible to the given session, in
// ascending slot order
func (s *ScanIndex) Find(sessionID int64) storage.Scanner {
	return &scanCursor{
		scan:         s,
		sessionID:    sessionID,
		multiVersion: s.multiVersion,
	}
}

// FindFirstOrLast is not meaningful on a scan-only structure
func (s *ScanIndex) FindFirstOrLast(sessionID int64, first bool) (storage.Scanner, error) {
	return nil, fmt.Errorf("%w: SCAN", storage.ErrUnsupportedOperation)
}

// CheckRename rejects renaming; a scan index has no name of its own to keep
func (s *ScanIndex) CheckRename() error {
	return fmt.Errorf("%w: SCAN", storage.ErrUnsupportedOperation)
}

// Delta snapshots the rows currently carrying an uncommitted structural
// change, in unspecified order. Each call returns a fresh snapshot. Outside
// multi-version mode the delta is always empty.
func (s *ScanIndex) Delta() []*storage.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.multiVersion {
		return nil
	}
	return s.tracker.deltaRows()
}

// PlanName returns the label this access path carries in query plans
func (s *ScanIndex) PlanName() string {
	return s.table.Name() + ".tableScan"
}

// NeedRebuild reports whether the index must be rebuilt after reopening;
// a scan index never does
func (s *ScanIndex) NeedRebuild() bool {
	return false
}

// DiskSpaceUsed returns the on-disk footprint; the scan store is in-memory
func (s *ScanIndex) DiskSpaceUsed() int64 {
	return 0
}

// nextRow returns the first occupied row after the given one in slot order,
// or the first occupied row when row is nil
func (s *ScanIndex) nextRow(row *storage.Row) *storage.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := int64(storage.NoKey)
	if row != nil {
		key = row.Key()
	}
	return s.store.nextOccupied(key)
}

// deltaRows snapshots the delta set for a cursor's second phase
func (s *ScanIndex) deltaRows() []*storage.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return nil
	}
	return s.tracker.deltaRows()
}
