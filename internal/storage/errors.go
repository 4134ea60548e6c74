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

import "errors"

var (
	// ErrSlotNotFound is returned when a delete names a slot beyond the
	// current length of the row store
	ErrSlotNotFound = errors.New("row not found when deleting")

	// ErrUnsupportedOperation is returned for structural operations that are
	// not meaningful on a scan-only structure, such as rename or
	// first/last lookup
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrCountOverflow is returned when session row-count arithmetic would
	// overflow. It indicates an internal consistency violation and is not
	// recoverable by the caller.
	ErrCountOverflow = errors.New("session row count overflow")
)
