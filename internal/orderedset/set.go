package orderedset

// Set is a set that remembers the order in which elements were first added.
// Iteration order is the insertion order, never the hash order, which is what
// makes query resolution reproducible across runs.
//
// The zero value is not usable; call New.
type Set[T comparable] struct {
	present map[T]struct{}
	order   []T
}

// New returns a Set seeded with the given items, in order.
func New[T comparable](items ...T) *Set[T] {
	s := &Set[T]{present: make(map[T]struct{}, len(items))}
	for _, v := range items {
		s.Add(v)
	}
	return s
}

// Add inserts v if not already present. It reports whether v was inserted.
// Re-adding an existing element does not move it.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.present[v]; ok {
		return false
	}
	s.present[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Remove deletes v if present. It reports whether v was removed.
func (s *Set[T]) Remove(v T) bool {
	if _, ok := s.present[v]; !ok {
		return false
	}
	delete(s.present, v)
	for i, item := range s.order {
		if item == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether v is in the set.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.present[v]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.order)
}

// Items returns the elements in insertion order. The returned slice is a copy.
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Update adds every element of other, preserving the receiver's existing
// order and appending new elements in other's order.
func (s *Set[T]) Update(other *Set[T]) {
	if other == nil {
		return
	}
	for _, v := range other.order {
		s.Add(v)
	}
}

// IntersectWith removes every element not present in other, preserving the
// receiver's order among survivors.
func (s *Set[T]) IntersectWith(other *Set[T]) {
	kept := s.order[:0]
	for _, v := range s.order {
		if other != nil && other.Has(v) {
			kept = append(kept, v)
		} else {
			delete(s.present, v)
		}
	}
	s.order = kept
}

// DifferenceWith removes every element present in other, preserving the
// receiver's order among survivors.
func (s *Set[T]) DifferenceWith(other *Set[T]) {
	if other == nil {
		return
	}
	kept := s.order[:0]
	for _, v := range s.order {
		if other.Has(v) {
			delete(s.present, v)
		} else {
			kept = append(kept, v)
		}
	}
	s.order = kept
}

// Copy returns an independent set with the same elements and order.
func (s *Set[T]) Copy() *Set[T] {
	out := &Set[T]{present: make(map[T]struct{}, len(s.order))}
	out.order = make([]T, len(s.order))
	copy(out.order, s.order)
	for _, v := range s.order {
		out.present[v] = struct{}{}
	}
	return out
}
