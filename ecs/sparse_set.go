package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// SparseSet is an unordered set of integer keys with O(1) membership,
// insertion and removal. Members are packed into a dense slice; removal
// swaps the last member into the freed slot.
type SparseSet[K intmap.IntKey] struct {
	dense []K
	// sparse maps a member to its 1-based position in dense
	sparse *intmap.Map[K, int]
}

// NewSparseSet creates an empty set sized for capacity members.
func NewSparseSet[K intmap.IntKey](capacity int) *SparseSet[K] {
	return &SparseSet[K]{
		dense:  make([]K, 0, capacity),
		sparse: intmap.New[K, int](capacity),
	}
}

// Has reports whether v is a member of the set.
func (s *SparseSet[K]) Has(v K) bool {
	_, ok := s.sparse.Get(v)
	return ok
}

// Add inserts v. Adding a member that is already present does nothing.
func (s *SparseSet[K]) Add(v K) {
	if s.Has(v) {
		return
	}
	s.dense = append(s.dense, v)
	s.sparse.Put(v, len(s.dense))
}

// Delete removes v. Deleting a value that is not a member does nothing.
func (s *SparseSet[K]) Delete(v K) {
	pos, ok := s.sparse.Get(v)
	if !ok {
		return
	}

	last := len(s.dense) - 1
	if pos-1 != last {
		tail := s.dense[last]
		s.dense[pos-1] = tail
		s.sparse.Put(tail, pos)
	}

	s.dense = s.dense[:last]
	s.sparse.Del(v)
}

// Len returns the number of members.
func (s *SparseSet[K]) Len() int {
	return len(s.dense)
}

// Dense returns the packed member slice in storage order. The slice is owned
// by the set and is only valid until the next Add or Delete.
func (s *SparseSet[K]) Dense() []K {
	return s.dense
}

// Clear removes every member.
func (s *SparseSet[K]) Clear() {
	s.dense = s.dense[:0]
	s.sparse.Clear()
}

// Iter returns an iterator over the members from the most recently stored
// slot to the first one.
func (s *SparseSet[K]) Iter() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := len(s.dense) - 1; i >= 0; i-- {
			if !yield(s.dense[i]) {
				return
			}
		}
	}
}
