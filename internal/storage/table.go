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

// TableData carries the table-level metadata the scan storage reports to and
// reads from. The enclosing engine owns richer table state (schema, other
// indexes); this is only the slice of it the row store touches.
type TableData struct {
	id          int64
	name        string
	rowCount    int64
	largeObject bool
	persistent  bool
}

// NewTableData creates table metadata with the given id and name
func NewTableData(id int64, name string) *TableData {
	return &TableData{id: id, name: name}
}

// ID returns the table id
func (t *TableData) ID() int64 { return t.id }

// Name returns the table name
func (t *TableData) Name() string { return t.name }

// RowCount returns the last row count reported to the table
func (t *TableData) RowCount() int64 { return t.rowCount }

// SetRowCount records the table's row count
func (t *TableData) SetRowCount(count int64) { t.rowCount = count }

// ContainsLargeObject reports whether rows may reference out-of-row data
func (t *TableData) ContainsLargeObject() bool { return t.largeObject }

// SetContainsLargeObject marks the table as referencing out-of-row data
func (t *TableData) SetContainsLargeObject(v bool) { t.largeObject = v }

// IsPersistent reports whether the table's data persists to disk
func (t *TableData) IsPersistent() bool { return t.persistent }

// SetPersistent marks the table's data as persisted
func (t *TableData) SetPersistent(v bool) { t.persistent = v }
