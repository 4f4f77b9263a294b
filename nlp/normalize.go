package nlp

import (
	"strings"
)

// Normalizer expands a word into the forms worth testing against a profane
// word dictionary. The surface form always comes first.
type Normalizer interface {
	Forms(lang, word string) []string
}

// SurfaceNormalizer is the capability-absent normalizer: the surface form is
// the only form.
type SurfaceNormalizer struct{}

// Forms returns word itself.
func (SurfaceNormalizer) Forms(_, word string) []string {
	return []string{word}
}

// BasicNormalizer expands a word into its surface form, its lowercased form,
// and the stems the speller derives for it. Duplicates are dropped, first
// occurrence wins.
type BasicNormalizer struct {
	speller Speller
}

// NewBasicNormalizer wraps speller. A nil speller disables stem expansion.
func NewBasicNormalizer(speller Speller) *BasicNormalizer {
	if speller == nil {
		speller = NoSpeller{}
	}
	return &BasicNormalizer{speller: speller}
}

// Forms returns the normalized forms of word in match priority order.
func (n *BasicNormalizer) Forms(lang, word string) []string {
	forms := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)
	add := func(form string) {
		if form == "" {
			return
		}
		if _, ok := seen[form]; ok {
			return
		}
		seen[form] = struct{}{}
		forms = append(forms, form)
	}

	add(word)
	add(strings.ToLower(word))

	// An encoding failure means the word has no stems, nothing more.
	stems, err := n.speller.Stems(lang, word)
	if err == nil {
		for _, stem := range stems {
			add(stem)
		}
	}
	return forms
}
