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
	"errors"
	"math"
	"testing"

	"github.com/scandb/scandb/internal/storage"
)

// recordingLobStore records truncate signals
type recordingLobStore struct {
	removed []int64
	err     error
}

func (ls *recordingLobStore) RemoveAllForTable(tableID int64) error {
	ls.removed = append(ls.removed, tableID)
	return ls.err
}

func newTestIndex(multiVersion bool) (*ScanIndex, *storage.TableData) {
	tbl := storage.NewTableData(7, "accounts")
	return NewScanIndex(tbl, nil, multiVersion), tbl
}

func TestScanIndexName(t *testing.T) {
	idx, _ := newTestIndex(false)
	if idx.Name() != "accounts_DATA" {
		t.Errorf("Name = %q, want accounts_DATA", idx.Name())
	}
	if idx.PlanName() != "accounts.tableScan" {
		t.Errorf("PlanName = %q, want accounts.tableScan", idx.PlanName())
	}
}

func TestScanIndexSlotReuseScenario(t *testing.T) {
	idx, _ := newTestIndex(false)
	r1, r2, r3 := newTestRow(1), newTestRow(2), newTestRow(3)

	key, err := idx.Add(1, r1)
	if err != nil || key != 0 {
		t.Fatalf("add r1: key %d err %v, want 0 nil", key, err)
	}
	key, err = idx.Add(1, r2)
	if err != nil || key != 1 {
		t.Fatalf("add r2: key %d err %v, want 1 nil", key, err)
	}
	if err := idx.Remove(1, r1); err != nil {
		t.Fatalf("remove r1: %v", err)
	}
	key, err = idx.Add(1, r3)
	if err != nil || key != 0 {
		t.Fatalf("add r3: key %d err %v, want reused slot 0", key, err)
	}
	if got := idx.RowCount(1); got != 2 {
		t.Errorf("row count = %d, want 2", got)
	}
}

func TestScanIndexSingleSlotRemoveReset(t *testing.T) {
	idx, _ := newTestIndex(false)
	r := newTestRow(1)
	idx.Add(1, r)

	if err := idx.Remove(1, r); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := idx.RowCount(1); got != 0 {
		t.Errorf("row count = %d, want 0", got)
	}
	// the store was reset wholesale: no free slot was left behind
	if idx.store.arenaLen() != 0 {
		t.Errorf("arena length = %d, want 0", idx.store.arenaLen())
	}
	if idx.store.firstFree != freeListEnd {
		t.Errorf("free list head = %d, want end marker", idx.store.firstFree)
	}

	// and the next add starts over at slot 0
	if key, _ := idx.Add(1, newTestRow(2)); key != 0 {
		t.Errorf("add after reset: key %d, want 0", key)
	}
}

func TestScanIndexSingleSlotRemoveMultiVersion(t *testing.T) {
	idx, _ := newTestIndex(true)
	r := newTestRow(1)
	r.SetSessionID(1)
	idx.Add(1, r)

	if err := idx.Remove(1, r); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// multi-version keeps the slot as a free-list entry; the delta still
	// references the row's old position
	if idx.store.arenaLen() != 1 {
		t.Errorf("arena length = %d, want 1", idx.store.arenaLen())
	}
	if idx.store.firstFree != 0 {
		t.Errorf("free list head = %d, want 0", idx.store.firstFree)
	}
}

func TestScanIndexRemoveUnknownSlot(t *testing.T) {
	idx, _ := newTestIndex(false)
	idx.Add(1, newTestRow(1))
	idx.Add(1, newTestRow(2))

	stray := newTestRow(3)
	stray.SetKey(99)
	if err := idx.Remove(1, stray); !errors.Is(err, storage.ErrSlotNotFound) {
		t.Errorf("got %v, want ErrSlotNotFound", err)
	}
}

func TestScanIndexRowLookup(t *testing.T) {
	idx, _ := newTestIndex(false)
	r := newTestRow(42)
	key, _ := idx.Add(1, r)

	if got := idx.Row(key); got != r {
		t.Errorf("Row(%d) = %v, want the stored row", key, got)
	}
	if got := idx.Row(99); got != nil {
		t.Errorf("Row(99) = %v, want nil", got)
	}
}

func TestScanIndexVisibleCounts(t *testing.T) {
	idx, _ := newTestIndex(true)

	r1 := newTestRow(1)
	r1.SetSessionID(1)
	if _, err := idx.Add(1, r1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := idx.RowCount(1); got != 1 {
		t.Errorf("session 1 count = %d, want 1", got)
	}
	if got := idx.RowCount(2); got != 0 {
		t.Errorf("session 2 count = %d, want 0", got)
	}
	if got := idx.ApproxRowCount(); got != 1 {
		t.Errorf("approx count = %d, want 1", got)
	}

	if err := idx.Commit(CommitInsert, r1); err != nil {
		t.Fatalf("commit: %v", err)
	}
	r1.SetSessionID(0)

	if got := idx.RowCount(1); got != 1 {
		t.Errorf("session 1 count after commit = %d, want 1", got)
	}
	if got := idx.RowCount(2); got != 1 {
		t.Errorf("session 2 count after commit = %d, want 1", got)
	}
	if len(idx.Delta()) != 0 {
		t.Errorf("delta not empty after commit")
	}
}

func TestScanIndexCommitWithoutMultiVersion(t *testing.T) {
	idx, _ := newTestIndex(false)
	r := newTestRow(1)
	idx.Add(1, r)

	if err := idx.Commit(CommitInsert, r); err != nil {
		t.Errorf("commit outside multi-version mode: %v", err)
	}
	if got := idx.Delta(); got != nil {
		t.Errorf("Delta = %v outside multi-version mode, want nil", got)
	}
}

func TestScanIndexTruncate(t *testing.T) {
	tbl := storage.NewTableData(9, "docs")
	tbl.SetContainsLargeObject(true)
	tbl.SetPersistent(true)
	lobs := &recordingLobStore{}
	idx := NewScanIndex(tbl, lobs, true)

	for i := int64(0); i < 3; i++ {
		row := newTestRow(i)
		row.SetSessionID(1)
		idx.Add(1, row)
	}
	tbl.SetRowCount(3)

	if err := idx.Truncate(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if got := idx.ApproxRowCount(); got != 0 {
		t.Errorf("approx count = %d after truncate, want 0", got)
	}
	for sid := int64(1); sid <= 3; sid++ {
		if got := idx.RowCount(sid); got != 0 {
			t.Errorf("session %d count = %d after truncate, want 0", sid, got)
		}
	}
	if len(idx.Delta()) != 0 {
		t.Errorf("delta not empty after truncate")
	}
	if tbl.RowCount() != 0 {
		t.Errorf("table row count = %d after truncate, want 0", tbl.RowCount())
	}
	if len(lobs.removed) != 1 || lobs.removed[0] != 9 {
		t.Errorf("lob store calls = %v, want [9]", lobs.removed)
	}
}

func TestScanIndexTruncateSkipsLobStore(t *testing.T) {
	tbl := storage.NewTableData(3, "plain")
	lobs := &recordingLobStore{}
	idx := NewScanIndex(tbl, lobs, false)
	idx.Add(1, newTestRow(1))

	if err := idx.Truncate(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if len(lobs.removed) != 0 {
		t.Errorf("lob store consulted for a table without large objects: %v", lobs.removed)
	}
}

func TestScanIndexAddOverflowLeavesStoreClean(t *testing.T) {
	idx, _ := newTestIndex(true)
	idx.tracker.adjustments.Set(1, math.MaxInt64)

	row := newTestRow(1)
	row.SetSessionID(1)
	if _, err := idx.Add(1, row); !errors.Is(err, storage.ErrCountOverflow) {
		t.Fatalf("got %v, want ErrCountOverflow", err)
	}
	if got := idx.ApproxRowCount(); got != 0 {
		t.Errorf("physical count = %d after failed add, want 0", got)
	}
	if len(idx.Delta()) != 0 {
		t.Error("delta not empty after failed add")
	}
	if row.Key() != storage.NoKey {
		t.Errorf("row key = %d after failed add, want NoKey", row.Key())
	}
}

func TestScanIndexRemoveOverflowKeepsRow(t *testing.T) {
	idx, _ := newTestIndex(true)
	row := newTestRow(1)
	row.SetSessionID(1)
	idx.Add(1, row)
	idx.Commit(CommitInsert, row)
	row.SetSessionID(0)

	idx.tracker.adjustments.Set(2, math.MinInt64)
	row.SetSessionID(2)
	if err := idx.Remove(2, row); !errors.Is(err, storage.ErrCountOverflow) {
		t.Fatalf("got %v, want ErrCountOverflow", err)
	}
	if got := idx.ApproxRowCount(); got != 1 {
		t.Errorf("physical count = %d after failed remove, want 1", got)
	}
	if got := idx.Row(row.Key()); got != row {
		t.Errorf("Row(%d) = %v after failed remove, want the row back in place", row.Key(), got)
	}
	if row.Deleted() {
		t.Error("row carries a delete marker after failed remove")
	}
	if len(idx.Delta()) != 0 {
		t.Error("delta not empty after failed remove")
	}
}

func TestScanIndexUnsupportedOperations(t *testing.T) {
	idx, _ := newTestIndex(false)

	if _, err := idx.FindFirstOrLast(1, true); !errors.Is(err, storage.ErrUnsupportedOperation) {
		t.Errorf("FindFirstOrLast: got %v, want ErrUnsupportedOperation", err)
	}
	if err := idx.CheckRename(); !errors.Is(err, storage.ErrUnsupportedOperation) {
		t.Errorf("CheckRename: got %v, want ErrUnsupportedOperation", err)
	}
}

func TestScanIndexCost(t *testing.T) {
	idx, _ := newTestIndex(false)
	if got := idx.Cost(); got != costRowOffset {
		t.Errorf("empty cost = %v, want %v", got, float64(costRowOffset))
	}
	for i := 0; i < 10; i++ {
		idx.Add(1, newTestRow(int64(i)))
	}
	if got := idx.Cost(); got != 10+costRowOffset {
		t.Errorf("cost = %v, want %v", got, float64(10+costRowOffset))
	}
	if idx.NeedRebuild() {
		t.Error("NeedRebuild = true, want false")
	}
	if idx.DiskSpaceUsed() != 0 {
		t.Errorf("DiskSpaceUsed = %d, want 0", idx.DiskSpaceUsed())
	}
}
