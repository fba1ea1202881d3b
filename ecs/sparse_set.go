package ecs

// SparseSet stores values keyed by Entity in a dense slice. Removal swaps
// the last element into the hole, so indices of other members may change
// but no member is ever skipped or visited twice by a completed pass over
// a snapshot of Values.
type SparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int
}

// Has reports whether e, at its current generation, is in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.sparse) {
		return false
	}
	idx := s.sparse[e.id()-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == e
}

// Get returns the value stored for e.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	var zero T
	if !s.Has(e) {
		return zero, false
	}
	return s.values[s.sparse[e.id()-1]], true
}

// Set inserts or updates the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	for int(e.id()) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(e) {
		s.values[s.sparse[e.id()-1]] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[e.id()-1] = len(s.dense) - 1
}

// Remove deletes e and reports whether it was present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx := s.sparse[e.id()-1]
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

// Len returns the number of members.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the dense entity list. Callers must not retain it across
// mutations.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

// Values returns a copy of the dense value list, safe to iterate while the
// set is mutated.
func (s *SparseSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s.values...)
}

// Clear removes every member.
func (s *SparseSet[T]) Clear() {
	if s == nil {
		return
	}
	for _, e := range s.dense {
		s.sparse[e.id()-1] = -1
	}
	s.dense = s.dense[:0]
	s.values = s.values[:0]
}
