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
package fastmap

import "testing"

func TestInt64MapBasicOperations(t *testing.T) {
	m := NewInt64Map[string](4)

	if _, ok := m.Get(1); ok {
		t.Error("empty map reported a value")
	}
	m.Set(1, "one")
	m.Set(2, "two")
	if v, ok := m.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q %v, want one true", v, ok)
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}

	m.Set(1, "uno")
	if v, _ := m.Get(1); v != "uno" {
		t.Errorf("overwrite: Get(1) = %q, want uno", v)
	}
	if m.Len() != 2 {
		t.Errorf("Len after overwrite = %d, want 2", m.Len())
	}

	if !m.Del(1) {
		t.Error("Del(1) = false for present key")
	}
	if m.Del(1) {
		t.Error("Del(1) = true for absent key")
	}
	if m.Has(1) {
		t.Error("Has(1) = true after delete")
	}
	if m.Len() != 1 {
		t.Errorf("Len after delete = %d, want 1", m.Len())
	}
}

func TestInt64MapTombstoneReuse(t *testing.T) {
	m := NewInt64Map[int](4)

	// churn the same keys; the table must not grow without bound
	for round := 0; round < 1000; round++ {
		for k := int64(0); k < 4; k++ {
			m.Set(k, round)
		}
		for k := int64(0); k < 4; k++ {
			m.Del(k)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d after churn, want 0", m.Len())
	}
	m.Set(7, 42)
	if v, ok := m.Get(7); !ok || v != 42 {
		t.Errorf("Get(7) = %d %v after churn, want 42 true", v, ok)
	}
}

func TestInt64MapGrowth(t *testing.T) {
	m := NewInt64Map[int64](2)
	const n = 10000
	for i := int64(0); i < n; i++ {
		m.Set(i, i*i)
	}
	if m.Len() != n {
		t.Fatalf("Len = %d, want %d", m.Len(), n)
	}
	for i := int64(0); i < n; i += 997 {
		if v, ok := m.Get(i); !ok || v != i*i {
			t.Errorf("Get(%d) = %d %v, want %d true", i, v, ok, i*i)
		}
	}
}

func TestInt64MapNegativeKeys(t *testing.T) {
	m := NewInt64Map[string](8)
	m.Set(-1, "neg")
	m.Set(0, "zero")
	if v, ok := m.Get(-1); !ok || v != "neg" {
		t.Errorf("Get(-1) = %q %v, want neg true", v, ok)
	}
	if v, ok := m.Get(0); !ok || v != "zero" {
		t.Errorf("Get(0) = %q %v, want zero true", v, ok)
	}
}

func TestInt64MapClear(t *testing.T) {
	m := NewInt64Map[int](8)
	for i := int64(0); i < 20; i++ {
		m.Set(i, 1)
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", m.Len())
	}
	if m.Has(5) {
		t.Error("Has(5) = true after Clear")
	}
	m.Set(5, 9)
	if v, _ := m.Get(5); v != 9 {
		t.Errorf("Get(5) = %d after Clear+Set, want 9", v)
	}
}

func TestInt64MapForEach(t *testing.T) {
	m := NewInt64Map[int64](8)
	want := map[int64]int64{}
	for i := int64(0); i < 50; i++ {
		m.Set(i, i+100)
		want[i] = i + 100
	}

	got := map[int64]int64{}
	m.ForEach(func(k, v int64) bool {
		got[k] = v
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("visited %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %d: visited %d, want %d", k, got[k], v)
		}
	}

	// early stop
	visits := 0
	m.ForEach(func(int64, int64) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("early stop visited %d entries, want 1", visits)
	}
}

func BenchmarkInt64MapSet(b *testing.B) {
	m := NewInt64Map[int64](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set(int64(i&1023), int64(i))
	}
}

func BenchmarkInt64MapGet(b *testing.B) {
	m := NewInt64Map[int64](1024)
	for i := int64(0); i < 1024; i++ {
		m.Set(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(int64(i & 1023))
	}
}
