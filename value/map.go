package value

// Map is an insertion-ordered map with unique Key members. The zero value is
// an empty map ready for use.
type Map[V any] struct {
	keys []Key
	vals map[Key]V
}

// NewMap returns an empty map. Equivalent to the zero value; provided for
// symmetry at construction sites.
func NewMap[V any]() Map[V] { return Map[V]{} }

// Len returns the number of members.
func (m *Map[V]) Len() int { return len(m.keys) }

// IsEmpty reports whether the map has no members.
func (m *Map[V]) IsEmpty() bool { return len(m.keys) == 0 }

// Get returns the value stored for key.
func (m *Map[V]) Get(key Key) (V, bool) {
	if m.vals == nil {
		var zero V
		return zero, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key Key) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. Inserting an existing key replaces the value
// and keeps the original position.
func (m *Map[V]) Set(key Key, value V) {
	if m.vals == nil {
		m.vals = make(map[Key]V)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Delete removes key, preserving the order of the remaining members.
func (m *Map[V]) Delete(key Key) {
	if m.vals == nil {
		return
	}
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the member names in insertion order. The slice is shared;
// callers must not mutate it.
func (m *Map[V]) Keys() []Key { return m.keys }

// Each calls fn for every member in insertion order until fn returns false.
func (m *Map[V]) Each(fn func(Key, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}
