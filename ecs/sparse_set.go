package ecs

// SparseSet maps entity slot ids to component pointers. Dense arrays keep
// iteration tight; sparse holds dense index + 1 so the zero value means
// "absent" and the slice can grow without a fill loop.
type SparseSet struct {
	denseEntities []int
	denseValues   []any
	sparse        []int
}

// Has returns true if the entity id exists in the set.
func (s *SparseSet) Has(id int) bool {
	if s == nil || id <= 0 || id > len(s.sparse) {
		return false
	}
	return s.sparse[id-1] > 0
}

// Get returns the component for id, or nil.
func (s *SparseSet) Get(id int) any {
	if !s.Has(id) {
		return nil
	}
	return s.denseValues[s.sparse[id-1]-1]
}

// Set inserts or updates a component for id.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	if id > len(s.sparse) {
		s.sparse = append(s.sparse, make([]int, id-len(s.sparse))...)
	}
	if slot := s.sparse[id-1]; slot > 0 {
		s.denseValues[slot-1] = v
		return
	}
	s.denseEntities = append(s.denseEntities, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities)
}

// Remove deletes the component for id if present.
func (s *SparseSet) Remove(id int) {
	if !s.Has(id) {
		return
	}
	idx := s.sparse[id-1] - 1
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last]

	s.denseEntities[idx] = lastID
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx + 1

	s.denseValues[last] = nil
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = 0
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity id list.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.denseEntities
}
