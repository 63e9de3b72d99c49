package container

import (
	"fmt"
	"testing"

	"github.com/coregx/frozenregex/internal/hashing"
)

func hashU32(v uint32) uint32 { return hashing.Uint32(v) }

func hashStr(s string) uint32 { return hashing.String(s) }

func TestMapBasic(t *testing.T) {
	m := NewMap[uint32, string](hashU32)
	if m.Len() != 0 {
		t.Fatalf("new map has %d entries", m.Len())
	}
	if _, ok := m.Get(1); ok {
		t.Fatal("Get on empty map reported a hit")
	}

	m.Set(1, "one")
	m.Set(2, "two")
	m.Set(1, "uno") // update, not insert

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if v, ok := m.Get(1); !ok || v != "uno" {
		t.Errorf("Get(1) = %q, %v; want \"uno\", true", v, ok)
	}
	if !m.Has(2) || m.Has(3) {
		t.Error("Has gave wrong membership")
	}
}

// TestMapGrowth pushes the map through several doublings from the initial
// capacity of 7 and verifies every entry survives each rehash.
func TestMapGrowth(t *testing.T) {
	m := NewMap[uint32, uint32](hashU32)
	const n = 1000
	for i := uint32(0); i < n; i++ {
		m.Set(i, i*i)
	}
	if m.Len() != n {
		t.Fatalf("Len = %d, want %d", m.Len(), n)
	}
	if got := len(m.slots); got != 7*1<<8 {
		// 7 → 14 → ... → 1792 is the first capacity with
		// 1000/cap <= 0.8.
		t.Errorf("capacity = %d, want %d", got, 7*1<<8)
	}
	for i := uint32(0); i < n; i++ {
		if v, ok := m.Get(i); !ok || v != i*i {
			t.Fatalf("Get(%d) = %d, %v after growth", i, v, ok)
		}
	}
}

// TestMapDeterministicIteration checks that key order is the insertion
// order, which downstream determinism (alphabet layout, state numbering)
// depends on.
func TestMapDeterministicIteration(t *testing.T) {
	m := NewMap[string, int](hashStr)
	keys := []string{"delta", "alpha", "zeta", "beta"}
	for i, k := range keys {
		m.Set(k, i)
	}
	m.Set("alpha", 99) // update must not move the key

	got := m.Keys()
	if len(got) != len(keys) {
		t.Fatalf("Keys() has %d entries, want %d", len(got), len(keys))
	}
	for i, k := range keys {
		if got[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], k)
		}
	}

	var visited []string
	m.Iter(func(k string, v int) bool {
		visited = append(visited, fmt.Sprintf("%s=%d", k, v))
		return true
	})
	want := []string{"delta=0", "alpha=99", "zeta=2", "beta=3"}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Iter[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestMapGetOrInsert(t *testing.T) {
	m := NewMap[uint32, string](hashU32)
	if v, hit := m.GetOrInsert(7, "seven"); hit || v != "seven" {
		t.Errorf("first GetOrInsert = %q, %v; want miss", v, hit)
	}
	if v, hit := m.GetOrInsert(7, "other"); !hit || v != "seven" {
		t.Errorf("second GetOrInsert = %q, %v; want hit with original", v, hit)
	}
}

func TestSet(t *testing.T) {
	s := NewSet[uint32](hashU32)
	if !s.Add(5) {
		t.Error("first Add(5) reported not-new")
	}
	if s.Add(5) {
		t.Error("second Add(5) reported new")
	}
	s.Add(9)
	s.Add(1)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	want := []uint32{5, 9, 1}
	for i, v := range s.Values() {
		if v != want[i] {
			t.Errorf("Values()[%d] = %d, want %d", i, v, want[i])
		}
	}

	o := NewSet[uint32](hashU32)
	o.Add(9)
	o.Add(42)
	s.Merge(o)
	if s.Len() != 4 || !s.Has(42) {
		t.Error("Merge lost or duplicated elements")
	}

	c := s.Clone()
	c.Add(100)
	if s.Has(100) {
		t.Error("Clone aliases the original")
	}
}

func TestUniqueQueueFIFO(t *testing.T) {
	q := NewUniqueQueue[uint32](hashU32)
	for _, v := range []uint32{3, 1, 4, 1, 5} {
		q.Push(v)
	}
	if q.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (duplicate rejected)", q.Len())
	}
	want := []uint32{3, 1, 4, 5}
	for _, w := range want {
		v, ok := q.Pop()
		if !ok || v != w {
			t.Fatalf("Pop = %d, %v; want %d", v, ok, w)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop on empty queue reported a value")
	}
}

// TestUniqueQueueNeverForgets verifies the lifetime guarantee: a value
// that was enqueued and popped can never be enqueued again.
func TestUniqueQueueNeverForgets(t *testing.T) {
	q := NewUniqueQueue[uint32](hashU32)
	q.Push(7)
	if v, _ := q.Pop(); v != 7 {
		t.Fatal("unexpected pop value")
	}
	if q.Push(7) {
		t.Error("re-push after pop succeeded")
	}
	if !q.Has(7) {
		t.Error("Has forgot a popped value")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}
