// Package dictionary loads and resolves the per-language profane word lists
// that drive matching.
package dictionary

// Set is an ordered collection of unique words. Insertion order is preserved
// so matching scans words in the order they were loaded.
type Set struct {
	words []string
	index map[string]struct{}
}

// NewSet returns a Set seeded with words, first occurrence winning.
func NewSet(words ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add appends word unless it is already present, reporting whether the set
// grew.
func (s *Set) Add(word string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[word]; ok {
		return false
	}
	s.index[word] = struct{}{}
	s.words = append(s.words, word)
	return true
}

// Contains reports exact membership.
func (s *Set) Contains(word string) bool {
	_, ok := s.index[word]
	return ok
}

// Union returns a new Set holding the receiver's words followed by other's.
// Either side may be nil.
func (s *Set) Union(other *Set) *Set {
	merged := NewSet()
	if s != nil {
		for _, w := range s.words {
			merged.Add(w)
		}
	}
	if other != nil {
		for _, w := range other.words {
			merged.Add(w)
		}
	}
	return merged
}

// Words returns the backing slice in insertion order. Callers must not
// modify it.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	return s.words
}

// Len returns the number of words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
