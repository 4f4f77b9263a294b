package nlp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/hashicorp/go-hclog"
)

// ErrEncoding reports text the spelling layer cannot process. Callers treat
// it as "no stems, not a known word" rather than failing the censor run.
var ErrEncoding = errors.New("text is not valid utf-8")

// Speller answers ordinary-vocabulary membership and derives word stems.
type Speller interface {
	// IsKnownWord reports whether word is ordinary vocabulary for lang. An
	// empty lang consults every loaded language.
	IsKnownWord(lang, word string) bool
	// Stems returns the dictionary stems of word, best effort. It fails with
	// ErrEncoding when word is not valid UTF-8.
	Stems(lang, word string) ([]string, error)
}

// NoSpeller is the capability-absent speller: it knows no words and derives
// no stems, so every clean token is eligible for the known-clean record.
type NoSpeller struct{}

// IsKnownWord always reports false.
func (NoSpeller) IsKnownWord(string, string) bool { return false }

// Stems always returns nothing.
func (NoSpeller) Stems(string, string) ([]string, error) { return nil, nil }

// stemSuffixes are stripped when deriving stem candidates. English-leaning;
// harmless for other languages because a candidate only counts as a stem
// when the language's word list contains it.
var stemSuffixes = []string{"ing", "ings", "ed", "ers", "er", "es", "s"}

// WordlistSpeller serves vocabulary lookups from per-language word lists
// indexed in tries.
type WordlistSpeller struct {
	l     hclog.Logger
	langs map[string]*trie.Trie
}

// NewWordlistSpeller returns an empty speller; load vocabularies with
// LoadLanguage or LoadLanguageFile.
func NewWordlistSpeller(logger hclog.Logger) *WordlistSpeller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &WordlistSpeller{l: logger, langs: make(map[string]*trie.Trie)}
}

// LoadLanguage indexes one word per line from r as lang's vocabulary,
// replacing any previous list for that language.
func (s *WordlistSpeller) LoadLanguage(lang string, r io.Reader) error {
	tr := trie.New()
	count := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		tr.Add(word, nil)
		count++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	s.langs[lang] = tr
	s.l.Debug("Indexed vocabulary", "language", lang, "words", count)
	return nil
}

// LoadLanguageFile indexes the word list at path as lang's vocabulary.
func (s *WordlistSpeller) LoadLanguageFile(lang, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening vocabulary for %q: %w", lang, err)
	}
	defer f.Close()
	return s.LoadLanguage(lang, f)
}

// IsKnownWord reports whether word appears in lang's vocabulary.
func (s *WordlistSpeller) IsKnownWord(lang, word string) bool {
	if !utf8.ValidString(word) {
		return false
	}
	return s.contains(lang, strings.ToLower(word))
}

// Stems strips common inflection suffixes from word and returns the
// candidates found in lang's vocabulary.
func (s *WordlistSpeller) Stems(lang, word string) ([]string, error) {
	if !utf8.ValidString(word) {
		return nil, ErrEncoding
	}
	lower := strings.ToLower(word)
	var stems []string
	for _, suffix := range stemSuffixes {
		stem, found := strings.CutSuffix(lower, suffix)
		if !found || stem == "" {
			continue
		}
		if s.contains(lang, stem) {
			stems = append(stems, stem)
		}
	}
	return stems, nil
}

func (s *WordlistSpeller) contains(lang, word string) bool {
	if lang != "" {
		tr, ok := s.langs[lang]
		if !ok {
			return false
		}
		_, found := tr.Find(word)
		return found
	}
	for _, tr := range s.langs {
		if _, found := tr.Find(word); found {
			return true
		}
	}
	return false
}
