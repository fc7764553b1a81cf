package model

// IDSet is an insertion-ordered set of ids.
type IDSet struct {
	index map[int64]struct{}
	ids   []int64
}

// NewIDSet returns a set containing ids in first-seen order.
func NewIDSet(ids ...int64) *IDSet {
	s := &IDSet{index: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *IDSet) Add(id int64) bool {
	if s.index == nil {
		s.index = make(map[int64]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is in the set.
func (s *IDSet) Has(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of ids.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the ids in insertion order.
func (s *IDSet) IDs() []int64 {
	if s == nil {
		return nil
	}
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// BehaviorProfile is the per-request reduction of a subject's history.
// It is never persisted.
type BehaviorProfile struct {
	PurchasedCategories *IDSet
	PurchasedProducts   *IDSet
	ViewedCategories    *IDSet
	ViewedProducts      *IDSet
	WishlistCategories  *IDSet
	WishlistProducts    *IDSet
	CartCategories      *IDSet
	CartProducts        *IDSet
	TotalInteractions   int
}

// NewBehaviorProfile returns an empty profile.
func NewBehaviorProfile() *BehaviorProfile {
	return &BehaviorProfile{
		PurchasedCategories: NewIDSet(),
		PurchasedProducts:   NewIDSet(),
		ViewedCategories:    NewIDSet(),
		ViewedProducts:      NewIDSet(),
		WishlistCategories:  NewIDSet(),
		WishlistProducts:    NewIDSet(),
		CartCategories:      NewIDSet(),
		CartProducts:        NewIDSet(),
	}
}

// Cold reports whether the subject has no recorded interactions.
func (p *BehaviorProfile) Cold() bool {
	return p == nil || p.TotalInteractions == 0
}
