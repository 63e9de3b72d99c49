// Package container provides the deterministic containers used by the DFA
// pipeline: an open-addressed hash map, a set built on it, and a FIFO queue
// that rejects duplicates.
//
// Unlike Go's builtin map, iteration order here is a pure function of the
// insertion history, which keeps the produced automata reproducible from
// build to build: the frozen alphabet and state numbering come out identical
// for identical patterns.
//
// The map never stores tombstones. That is safe only because the pipeline
// grows its tables monotonically during a parse or build and never deletes
// entries; a Delete method is deliberately absent.
package container

// A Hasher maps a key to a 32-bit probe seed.
type Hasher[K comparable] func(K) uint32

const (
	// initialCap is the capacity allocated on first insert.
	initialCap = 7

	// maxLoad is the load factor threshold that triggers growth.
	maxLoad = 0.8
)

type slot[K comparable, V any] struct {
	key  K
	val  V
	used bool
}

// Map is an open-addressed hash map with linear probing.
//
// Probing starts at hash(key) mod cap and walks forward one slot at a time.
// The table grows by doubling when the load factor would exceed 0.8.
type Map[K comparable, V any] struct {
	slots []slot[K, V]
	n     int
	hash  Hasher[K]

	// order records keys by first insertion, backing deterministic
	// iteration. Entries are never removed.
	order []K
}

// NewMap creates an empty map using the given hasher.
func NewMap[K comparable, V any](hash Hasher[K]) *Map[K, V] {
	return &Map[K, V]{hash: hash}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.n }

// Set inserts or updates the value for key.
func (m *Map[K, V]) Set(key K, val V) {
	if len(m.slots) < m.n+1 || float64(len(m.slots))*maxLoad < float64(m.n+1) {
		m.grow()
	}
	cap32 := uint32(len(m.slots))
	p := m.hash(key) % cap32
	for i := uint32(0); i < cap32; i++ {
		s := &m.slots[(p+i)%cap32]
		if !s.used {
			s.key = key
			s.val = val
			s.used = true
			m.n++
			m.order = append(m.order, key)
			return
		}
		if s.key == key {
			s.val = val
			return
		}
	}
	// Unreachable: growth above guarantees a free slot.
	panic("container: map full")
}

// Get returns the value for key and whether it is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if p := m.getp(key); p != nil {
		return p.val, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool { return m.getp(key) != nil }

// GetOrInsert returns the value for key, inserting def first if the key is
// absent. The returned bool is true on a hit.
func (m *Map[K, V]) GetOrInsert(key K, def V) (V, bool) {
	if p := m.getp(key); p != nil {
		return p.val, true
	}
	m.Set(key, def)
	return def, false
}

func (m *Map[K, V]) getp(key K) *slot[K, V] {
	if m.n == 0 {
		return nil
	}
	cap32 := uint32(len(m.slots))
	p := m.hash(key) % cap32
	for i := uint32(0); i < cap32; i++ {
		s := &m.slots[(p+i)%cap32]
		if !s.used {
			// No tombstones, so an unused slot ends the probe chain.
			return nil
		}
		if s.key == key {
			return s
		}
	}
	return nil
}

func (m *Map[K, V]) grow() {
	newCap := initialCap
	if len(m.slots) > 0 {
		newCap = len(m.slots) * 2
	}
	old := m.slots
	m.slots = make([]slot[K, V], newCap)
	cap32 := uint32(newCap)
	for i := range old {
		s := &old[i]
		if !s.used {
			continue
		}
		p := m.hash(s.key) % cap32
		for j := uint32(0); ; j++ {
			t := &m.slots[(p+j)%cap32]
			if !t.used {
				*t = *s
				break
			}
		}
	}
}

// Keys returns the keys in first-insertion order. The returned slice is
// shared and must not be modified.
func (m *Map[K, V]) Keys() []K { return m.order }

// Iter calls f for each entry in first-insertion order, stopping early if f
// returns false.
func (m *Map[K, V]) Iter(f func(K, V) bool) {
	for _, k := range m.order {
		v, _ := m.Get(k)
		if !f(k, v) {
			return
		}
	}
}
