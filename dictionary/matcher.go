package dictionary

import (
	"math"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// maxAbsoluteDistance caps the fuzzy budget regardless of word length.
const maxAbsoluteDistance = 3

// Matcher answers profanity membership for normalized candidate forms,
// exactly or within a relative Levenshtein distance budget.
type Matcher struct {
	store               *Store
	maxRelativeDistance float64
}

// NewMatcher wraps store with the given relative distance tolerance.
// A tolerance of 0 disables fuzzy matching.
func NewMatcher(store *Store, maxRelativeDistance float64) *Matcher {
	return &Matcher{store: store, maxRelativeDistance: maxRelativeDistance}
}

// MaxDistance returns the edit distance budget for a word of the given rune
// length: the relative tolerance scaled by length, capped at 3.
func (m *Matcher) MaxDistance(length int) int {
	d := int(math.Floor(m.maxRelativeDistance * float64(length)))
	if d > maxAbsoluteDistance {
		d = maxAbsoluteDistance
	}
	return d
}

// Match reports whether word is profane for lang, returning the dictionary
// root word that matched. An empty lang consults every configured language.
// Exact membership wins over fuzzy matches.
func (m *Matcher) Match(lang, word string) (string, bool) {
	set := m.set(lang)
	if set.Len() == 0 {
		return "", false
	}
	if set.Contains(word) {
		return word, true
	}

	wordLen := utf8.RuneCountInString(word)
	budget := m.MaxDistance(wordLen)
	if budget < 1 {
		return "", false
	}
	for _, root := range set.Words() {
		rootLen := utf8.RuneCountInString(root)
		if rootLen-wordLen > budget || wordLen-rootLen > budget {
			continue
		}
		if levenshtein.Distance(word, root, nil) <= budget {
			return root, true
		}
	}
	return "", false
}

func (m *Matcher) set(lang string) *Set {
	if lang == "" {
		return m.store.Union()
	}
	return m.store.Lookup(lang)
}
