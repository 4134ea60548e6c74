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
// Package session provides the transaction-side driver of the scan storage:
// sessions record an undo entry per structural change and turn Commit and
// Rollback into the commit signals and inverse replays the scan index
// expects.
package session

import (
	"github.com/scandb/scandb/internal/storage"
	"github.com/scandb/scandb/internal/storage/scan"
)

type undoOp int

const (
	undoInsert undoOp = iota
	undoDelete
)

type undoRecord struct {
	op  undoOp
	row *storage.Row
	idx *scan.ScanIndex
}

// Session is one client session. It is not safe for concurrent use by
// multiple goroutines; the scan index underneath serializes cross-session
// access on its own.
type Session struct {
	id   int64
	undo []undoRecord
}

// ID returns the session id, an opaque token issued by the Registry
func (s *Session) ID() int64 {
	return s.id
}

// Pending returns the number of uncommitted changes this session holds
func (s *Session) Pending() int {
	return len(s.undo)
}

// Insert adds a row to the index as a pending change of this session and
// returns the assigned slot key
func (s *Session) Insert(idx *scan.ScanIndex, row *storage.Row) (int64, error) {
	if idx.MultiVersion() {
		row.SetSessionID(s.id)
	}
	key, err := idx.Add(s.id, row)
	if err != nil {
		return 0, err
	}
	s.undo = append(s.undo, undoRecord{op: undoInsert, row: row, idx: idx})
	return key, nil
}

// Delete removes a row from the index as a pending change of this session.
// The deleting session takes ownership of the row until the delete commits
// or rolls back, so other sessions keep seeing it through the delta.
func (s *Session) Delete(idx *scan.ScanIndex, row *storage.Row) error {
	if idx.MultiVersion() {
		row.SetSessionID(s.id)
	}
	if err := idx.Remove(s.id, row); err != nil {
		return err
	}
	s.undo = append(s.undo, undoRecord{op: undoDelete, row: row, idx: idx})
	return nil
}

// Commit retires every pending change, making each insert and delete final
// for all sessions, and releases ownership of the touched rows. Ownership is
// released only after every record is retired: the commit signal reads the
// row's owning session, and a row touched twice in one transaction must still
// carry it when its second record is processed.
func (s *Session) Commit() error {
	for _, rec := range s.undo {
		op := scan.CommitInsert
		if rec.op == undoDelete {
			op = scan.CommitDelete
		}
		if err := rec.idx.Commit(op, rec.row); err != nil {
			return err
		}
	}
	for _, rec := range s.undo {
		rec.row.SetSessionID(0)
	}
	s.undo = nil
	return nil
}

// Rollback undoes every pending change by replaying the inverse operation,
// newest first. The delta-set toggle cancels each entry back out, so counts
// and membership return to exactly their pre-change state; a rolled-back
// delete may come back under a different slot key.
func (s *Session) Rollback() error {
	for i := len(s.undo) - 1; i >= 0; i-- {
		rec := s.undo[i]
		switch rec.op {
		case undoInsert:
			if err := rec.idx.Remove(s.id, rec.row); err != nil {
				return err
			}
		case undoDelete:
			if _, err := rec.idx.Add(s.id, rec.row); err != nil {
				return err
			}
		}
		rec.row.SetSessionID(0)
	}
	s.undo = nil
	return nil
}
