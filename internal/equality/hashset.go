package equality

// HashSet is a set of values with custom equality. Values are bucketed by
// Hash and resolved within a bucket by Equal, so it only behaves as a set
// when the two agree.
type HashSet[T Hasher[T]] struct {
	buckets map[uint64][]T
	size    int
}

// NewHashSet returns an empty set.
func NewHashSet[T Hasher[T]]() *HashSet[T] {
	return &HashSet[T]{buckets: make(map[uint64][]T)}
}

// Add inserts v unless an equal value is already present.
// It returns true when v was inserted.
func (s *HashSet[T]) Add(v T) bool {
	h := v.Hash()
	for _, existing := range s.buckets[h] {
		if existing.Equal(v) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.size++
	return true
}

// Contains reports whether a value equal to v is present.
func (s *HashSet[T]) Contains(v T) bool {
	for _, existing := range s.buckets[v.Hash()] {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// Remove deletes the value equal to v, if any.
func (s *HashSet[T]) Remove(v T) bool {
	h := v.Hash()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if existing.Equal(v) {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(s.buckets, h)
			} else {
				s.buckets[h] = bucket
			}
			s.size--
			return true
		}
	}
	return false
}

// Len returns the number of distinct values.
func (s *HashSet[T]) Len() int {
	return s.size
}

// Values returns the stored values in no particular order.
func (s *HashSet[T]) Values() []T {
	out := make([]T, 0, s.size)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}
