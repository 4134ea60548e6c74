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

import "github.com/scandb/scandb/internal/storage"

// scanCursor walks the slot store in ascending slot order, skipping free
// slots. In multi-version mode it applies the per-row visibility predicate
// for its reading session and, once the physical walk ends, switches to a
// second phase over the delta set to recover rows other sessions have
// deleted but not yet committed (the physical slot of such a row is already
// freed, so the main walk cannot produce it).
//
// There is no rewinding; create a new cursor to rescan.
type scanCursor struct {
	scan         *ScanIndex
	sessionID    int64
	multiVersion bool
	row          *storage.Row
	delta        []*storage.Row
	deltaIdx     int
	inDelta      bool
	exhausted    bool
	closed       bool
}

// Next advances the cursor and reports whether a row is available. Exhaustion
// is terminal: once Next has returned false it keeps returning false, even
// though the positioned row is then nil just as before the first call.
func (c *scanCursor) Next() bool {
	if c.closed || c.exhausted {
		return false
	}
	if !c.multiVersion {
		c.row = c.scan.nextRow(c.row)
		if c.row == nil {
			c.exhausted = true
		}
		return c.row != nil
	}
	for {
		if c.inDelta {
			if c.deltaIdx >= len(c.delta) {
				c.row = nil
				break
			}
			c.row = c.delta[c.deltaIdx]
			c.deltaIdx++
			// Only rows deleted-but-uncommitted by another session are
			// recovered here. A row the reading session deleted itself is
			// already gone from its view, and a row without a delete marker
			// is still physically present and was handled by the main walk.
			if !c.row.Deleted() || c.row.SessionID() == c.sessionID {
				continue
			}
		} else {
			c.row = c.scan.nextRow(c.row)
			if c.row == nil {
				c.delta = c.scan.deltaRows()
				c.inDelta = true
				continue
			}
			// A physically present row with a pending change owned by
			// another session is an uncommitted insert, invisible until that
			// session commits. Committed rows (owning session 0) and the
			// reading session's own rows pass through.
			if sid := c.row.SessionID(); sid != 0 && sid != c.sessionID {
				continue
			}
		}
		break
	}
	if c.row == nil {
		c.exhausted = true
	}
	return c.row != nil
}

// Row returns the row the cursor is positioned on, or nil before the first
// Next or after exhaustion
func (c *scanCursor) Row() *storage.Row {
	return c.row
}

// Err returns any error that occurred during scanning
func (c *scanCursor) Err() error {
	return nil
}

// Close releases the cursor's references. A cursor holds no exclusive
// resource; dropping one without Close leaks nothing.
func (c *scanCursor) Close() error {
	c.closed = true
	c.row = nil
	c.delta = nil
	c.scan = nil
	return nil
}

// filteredScanner wraps a Scanner and produces only rows whose column values
// match a boolean expression.
type filteredScanner struct {
	inner storage.Scanner
	where storage.Expression
	err   error
}

// NewFilteredScanner returns a Scanner producing the subset of inner's rows
// that match where. A nil where passes every row through.
func NewFilteredScanner(inner storage.Scanner, where storage.Expression) storage.Scanner {
	if where == nil {
		return inner
	}
	return &filteredScanner{inner: inner, where: where}
}

func (f *filteredScanner) Next() bool {
	if f.err != nil {
		return false
	}
	for f.inner.Next() {
		match, err := f.where.Evaluate(f.inner.Row().Values())
		if err != nil {
			f.err = err
			return false
		}
		if match {
			return true
		}
	}
	return false
}

func (f *filteredScanner) Row() *storage.Row {
	return f.inner.Row()
}

func (f *filteredScanner) Err() error {
	if f.err != nil {
		return f.err
	}
	return f.inner.Err()
}

func (f *filteredScanner) Close() error {
	return f.inner.Close()
}
