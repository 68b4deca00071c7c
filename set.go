package jsonapi

// Set is an insertion-ordered collection of resource objects deduplicated by
// identity (kind, id). Inserting an object whose identity is already present
// keeps the first entry, so rendering is deterministic regardless of how many
// relationship paths reach the same resource.
type Set struct {
	items []Object
	index map[identity]int
}

// Len returns the number of distinct resources.
func (s *Set) Len() int { return len(s.items) }

// IsEmpty reports whether the set holds no resources.
func (s *Set) IsEmpty() bool { return len(s.items) == 0 }

// Insert adds the object unless its identity is already present. It returns
// true if the set did not have the identity before.
func (s *Set) Insert(o Object) bool {
	id := o.identity()
	if _, ok := s.index[id]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[identity]int)
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, o)
	return true
}

// Get looks up the object named by the identifier.
func (s *Set) Get(ident Identifier) (Object, bool) {
	i, ok := s.index[ident.identity()]
	if !ok {
		return Object{}, false
	}
	return s.items[i], true
}

// Has reports whether the identity is present.
func (s *Set) Has(ident Identifier) bool {
	_, ok := s.index[ident.identity()]
	return ok
}

// Each calls fn for every object in insertion order until fn returns false.
func (s *Set) Each(fn func(Object) bool) {
	for _, o := range s.items {
		if !fn(o) {
			return
		}
	}
}
