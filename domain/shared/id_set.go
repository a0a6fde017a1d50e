package shared

import "sort"

// IDSet is an unordered set of aggregate identities.
// The zero value is an empty set ready to use.
type IDSet struct {
	ids map[int64]struct{}
}

// NewIDSet builds a set from ids, dropping duplicates.
func NewIDSet(ids ...int64) IDSet {
	s := IDSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether the set changed.
func (s *IDSet) Add(id int64) bool {
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether the set changed.
func (s *IDSet) Remove(id int64) bool {
	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	return true
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s IDSet) Len() int { return len(s.ids) }

func (s IDSet) IsEmpty() bool { return len(s.ids) == 0 }

// Slice returns the members in ascending order.
func (s IDSet) Slice() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	return NewIDSet(s.Slice()...)
}

// Diff compares the current set against the desired one.
// added = desired \ current, removed = current \ desired, both ascending.
func Diff(current, desired IDSet) (added, removed []int64) {
	for _, id := range desired.Slice() {
		if !current.Contains(id) {
			added = append(added, id)
		}
	}
	for _, id := range current.Slice() {
		if !desired.Contains(id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}
