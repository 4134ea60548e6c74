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
package storage

import "sync/atomic"

// rowIDCounter assigns the per-row identity tokens. Identity is by token,
// never by value: two rows with identical column values are distinct entries
// in any set keyed by row identity.
var rowIDCounter atomic.Int64

// NoKey is the slot key of a row that has not been placed in a store yet
const NoKey = -1

// Row is a single table row together with the bookkeeping the storage layer
// maintains on it: the slot key assigned by the store, the delete marker, and
// the id of the session that currently holds an uncommitted change on the row
// (0 once the change is committed). The storage layer never interprets the
// column values.
type Row struct {
	values    []ColumnValue
	id        int64
	key       int64
	sessionID int64
	deleted   bool
}

// NewRow creates a row holding the given column values and assigns it a fresh
// identity token. The row carries no slot key until a store places it.
func NewRow(values ...ColumnValue) *Row {
	return &Row{
		values: values,
		id:     rowIDCounter.Add(1),
		key:    NoKey,
	}
}

// ID returns the row's identity token
func (r *Row) ID() int64 { return r.id }

// Values returns the column values stored in the row
func (r *Row) Values() []ColumnValue { return r.values }

// Key returns the slot key assigned by the row store, or NoKey
func (r *Row) Key() int64 { return r.key }

// SetKey stamps the slot key onto the row; only the row store calls this
func (r *Row) SetKey(key int64) { r.key = key }

// Deleted reports whether the row carries an uncommitted delete marker
func (r *Row) Deleted() bool { return r.deleted }

// SetDeleted sets or clears the delete marker
func (r *Row) SetDeleted(deleted bool) { r.deleted = deleted }

// SessionID returns the id of the session holding an uncommitted change on
// the row, or 0 when the row is in its committed state
func (r *Row) SessionID() int64 { return r.sessionID }

// SetSessionID records the session that owns the row's pending change
func (r *Row) SetSessionID(id int64) { r.sessionID = id }

// IsEmpty reports whether the row is a placeholder with no column values
func (r *Row) IsEmpty() bool { return len(r.values) == 0 }
