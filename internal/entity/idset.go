package entity

import "slices"

// IDSet is a set of entity or role ids.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(ids ...int) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s IDSet) Len() int { return len(s) }

// Intersects reports whether s and other share at least one id.
func (s IDSet) Intersects(other IDSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
