package dictionary

import (
	"errors"
)

// ErrNoDictionaries reports that resolution produced no usable words for any
// configured language.
var ErrNoDictionaries = errors.New("no profane words resolved for any configured language")

// StoreConfig assembles the word sources a Store resolves.
type StoreConfig struct {
	// Languages holds the configured languages in priority order.
	Languages []string
	// Base holds the word lists loaded from a data directory or bundle.
	Base map[string]*Set
	// Extra words are appended to a language's resolved list.
	Extra map[string]*Set
	// Custom word lists replace a language's base list entirely.
	Custom map[string]*Set
}

// Store serves the effective per-language word sets after resolution.
type Store struct {
	languages []string
	resolved  map[string]*Set
	union     *Set
}

// NewStore resolves cfg into effective word sets. A language's custom list,
// when non-empty, replaces its base list; extra words are appended
// afterwards. NewStore fails with ErrNoDictionaries when nothing resolves
// for any language.
func NewStore(cfg StoreConfig) (*Store, error) {
	s := &Store{
		languages: append([]string(nil), cfg.Languages...),
		resolved:  make(map[string]*Set),
	}
	union := NewSet()
	for _, lang := range cfg.Languages {
		source := cfg.Base[lang]
		if custom := cfg.Custom[lang]; custom.Len() > 0 {
			source = custom
		}
		effective := source.Union(cfg.Extra[lang])
		if effective.Len() == 0 {
			continue
		}
		s.resolved[lang] = effective
		union = union.Union(effective)
	}
	if union.Len() == 0 {
		return nil, ErrNoDictionaries
	}
	s.union = union
	return s, nil
}

// Lookup returns the resolved word set for lang, nil when the language has
// none.
func (s *Store) Lookup(lang string) *Set {
	return s.resolved[lang]
}

// Union returns every resolved word across all languages.
func (s *Store) Union() *Set {
	return s.union
}

// Languages returns the configured language order.
func (s *Store) Languages() []string {
	return s.languages
}
