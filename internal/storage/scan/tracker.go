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
	"github.com/scandb/scandb/internal/fastmap"
	"github.com/scandb/scandb/internal/storage"
)

// sessionTracker maintains multi-version visibility bookkeeping for one scan
// index: the delta set of rows with an uncommitted structural change, a
// signed per-session row-count adjustment, and the running total drift of all
// adjustments. Together these answer "how many rows does session S see" in
// O(1):
//
//	visible(S) = physicalCount + adjustment[S] - drift
//
// The delta set is keyed by row identity token, never by value; two rows with
// equal column values are distinct members.
//
// sessionTracker is not safe for concurrent use; ScanIndex serializes access.
type sessionTracker struct {
	delta       *fastmap.Int64Map[*storage.Row]
	adjustments *fastmap.Int64Map[int64]
	drift       int64
}

func newSessionTracker() *sessionTracker {
	return &sessionTracker{
		delta:       fastmap.NewInt64Map[*storage.Row](16),
		adjustments: fastmap.NewInt64Map[int64](8),
	}
}

// toggleDelta flips the row's delta-set membership and reports whether the
// row is a member afterwards. An add followed by a remove of the same row (or
// the reverse) cancels out to "never happened" from the delta's perspective;
// this cancel-out is what makes rollback by inverse replay exact.
func (t *sessionTracker) toggleDelta(row *storage.Row) bool {
	if t.delta.Del(row.ID()) {
		return false
	}
	t.delta.Set(row.ID(), row)
	return true
}

// onAdd records an uncommitted insert by the given session. The adjustment
// runs first so a failure leaves the tracker untouched.
func (t *sessionTracker) onAdd(row *storage.Row, sessionID int64) error {
	if err := t.adjust(sessionID, 1); err != nil {
		return err
	}
	t.toggleDelta(row)
	return nil
}

// onRemove records an uncommitted delete by the given session. The row keeps
// carrying its delete marker until the change commits or rolls back. The
// adjustment runs first so a failure leaves both tracker and row untouched.
func (t *sessionTracker) onRemove(row *storage.Row, sessionID int64) error {
	if err := t.adjust(sessionID, -1); err != nil {
		return err
	}
	row.SetDeleted(true)
	t.toggleDelta(row)
	return nil
}

// onCommit retires the row's pending change. The row leaves the delta set
// unconditionally, regardless of its toggle history. The adjustment sign is
// inverted relative to onAdd/onRemove: the physical count already reflects
// the change, so committing cancels the pending adjustment out of the global
// drift rather than applying it again.
func (t *sessionTracker) onCommit(row *storage.Row, op CommitOp) error {
	d := int64(-1)
	if op == CommitDelete {
		d = 1
	}
	if err := t.adjust(row.SessionID(), d); err != nil {
		return err
	}
	t.delta.Del(row.ID())
	return nil
}

// adjust applies a signed row-count delta for one session and to the global
// drift. Overflow fails loudly rather than wrapping; it cannot occur at
// realistic row counts and signals corrupted bookkeeping.
func (t *sessionTracker) adjust(sessionID, delta int64) error {
	cur, _ := t.adjustments.Get(sessionID)
	next := cur + delta
	if (delta > 0 && next < cur) || (delta < 0 && next > cur) {
		return storage.ErrCountOverflow
	}
	nd := t.drift + delta
	if (delta > 0 && nd < t.drift) || (delta < 0 && nd > t.drift) {
		return storage.ErrCountOverflow
	}
	t.adjustments.Set(sessionID, next)
	t.drift = nd
	return nil
}

// visibleCount returns the row count the given session observes, relative to
// the physical occupied count of the store. With no outstanding uncommitted
// changes anywhere, every adjustment and the drift are zero and the result
// equals the physical count for every session.
func (t *sessionTracker) visibleCount(sessionID, physical int64) int64 {
	adj, _ := t.adjustments.Get(sessionID)
	return physical + adj - t.drift
}

// deltaRows snapshots the current delta-set membership, in unspecified
// order. Each call reflects the state at the time of the call.
func (t *sessionTracker) deltaRows() []*storage.Row {
	rows := make([]*storage.Row, 0, t.delta.Len())
	t.delta.ForEach(func(_ int64, row *storage.Row) bool {
		rows = append(rows, row)
		return true
	})
	return rows
}

// deltaLen returns the number of rows in the delta set
func (t *sessionTracker) deltaLen() int {
	return t.delta.Len()
}

// truncate clears the delta set and every session adjustment
func (t *sessionTracker) truncate() {
	t.delta.Clear()
	t.adjustments.Clear()
	t.drift = 0
}
