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
package session

import "sync/atomic"

// Registry issues session ids. Ids are opaque monotonically increasing
// tokens starting at 1; id 0 is reserved to mean "no owning session" on a
// committed row.
type Registry struct {
	nextID atomic.Int64
}

// NewRegistry creates a session registry
func NewRegistry() *Registry {
	return &Registry{}
}

// NewSession creates a session with a fresh id
func (r *Registry) NewSession() *Session {
	return &Session{id: r.nextID.Add(1)}
}
