package censor

import (
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Matcher answers whether a normalized form is a configured profane word.
type Matcher interface {
	// Match reports whether word is profane for language lang, returning the
	// dictionary root word that matched. An empty lang consults every
	// configured language.
	Match(lang, word string) (string, bool)
}

// Cache memoizes per-word decisions between CensorWord calls. Every entry is
// recomputable, so implementations may evict or lose entries freely.
type Cache interface {
	// Get returns the cached decision for a candidate's exact text.
	Get(text string) (Word, bool)
	// Set stores a censored word keyed by its uncensored text.
	Set(word Word)
	// IsKnownClean reports whether text was previously recorded as containing
	// no profanity anywhere inside it.
	IsKnownClean(text string) bool
	// MarkClean records text as containing no profanity anywhere inside it.
	MarkClean(text string)
	// FlushAll discards every entry.
	FlushAll()
}

// Normalizer expands a candidate into the forms worth testing against the
// dictionary, surface form first.
type Normalizer interface {
	Forms(lang, word string) []string
}

// Speller reports whether a word belongs to a language's ordinary
// vocabulary. Known words are never recorded as clean.
type Speller interface {
	IsKnownWord(lang, word string) bool
}

// EngineConfig carries the masking policy for an Engine.
type EngineConfig struct {
	// CensorChar is the rune masked characters are replaced with.
	CensorChar rune
	// WholeWords masks the entire token once any part of it matches. When
	// false, only the matched substring is replaced.
	WholeWords bool
	// DeepAnalysis keeps scanning a token's substrings after the whole token
	// fails to match, so profanity buried inside compounds is found.
	DeepAnalysis bool
}

// Engine censors one token at a time. It owns no dictionaries of its own;
// matching, normalization, spelling, and caching are delegated to the
// collaborators passed to NewEngine.
type Engine struct {
	l          hclog.Logger
	matcher    Matcher
	cache      Cache
	normalizer Normalizer
	speller    Speller

	censorChar rune
	wholeWords bool
	deep       bool
}

// NewEngine builds an Engine around the given collaborators.
func NewEngine(cfg EngineConfig, matcher Matcher, cache Cache, normalizer Normalizer, speller Speller, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{
		l:          logger,
		matcher:    matcher,
		cache:      cache,
		normalizer: normalizer,
		speller:    speller,
		censorChar: cfg.CensorChar,
		wholeWords: cfg.WholeWords,
		deep:       cfg.DeepAnalysis,
	}
}

// CensorWord censors a single token, rescanning the partially censored text
// until a full pass makes no further change. Each pass enumerates candidate
// substrings longest first and applies at most one modification.
func (e *Engine) CensorWord(lang, token string) Word {
	e.l.Trace("Censoring token", "language", lang, "token", token)

	current := Unchanged(token)
	for {
		prev := current
		subs := NewSubstrings(prev.Censored, e.censorChar)
		for {
			span, ok := subs.Next()
			if !ok {
				break
			}
			part, clean := e.censorPart(lang, span.Text)
			if clean {
				subs.Suppress(span.Start, span.End)
			}
			if part.Censored != span.Text {
				if e.wholeWords {
					current = Word{
						Uncensored:          token,
						Censored:            FullMask(token, e.censorChar),
						OriginalProfaneWord: part.OriginalProfaneWord,
					}
				} else {
					current = Word{
						Uncensored:          token,
						Censored:            strings.ReplaceAll(prev.Censored, span.Text, part.Censored),
						OriginalProfaneWord: part.OriginalProfaneWord,
					}
				}
			}
			if !e.deep || current != prev {
				break
			}
		}
		if current == prev {
			break
		}
	}

	if current.Censored == token {
		if e.deep && !e.speller.IsKnownWord(lang, token) {
			e.cache.MarkClean(token)
		}
		return current
	}
	e.cache.Set(current)
	return current
}

// censorPart decides a single candidate substring. The bool reports that the
// candidate is known to contain no profanity anywhere inside it, so the
// caller can suppress its span.
func (e *Engine) censorPart(lang, candidate string) (Word, bool) {
	forms := e.normalizer.Forms(lang, candidate)
	for _, form := range forms {
		if e.cache.IsKnownClean(form) {
			return Unchanged(candidate), true
		}
	}

	if w, ok := e.cache.Get(candidate); ok {
		return w, false
	}

	for _, form := range forms {
		root, ok := e.matcher.Match(lang, form)
		if !ok {
			continue
		}
		w := Word{
			Uncensored:          candidate,
			Censored:            FullMask(candidate, e.censorChar),
			OriginalProfaneWord: root,
		}
		e.cache.Set(w)
		e.l.Trace("Matched profane candidate", "language", lang, "root", root)
		return w, false
	}
	return Unchanged(candidate), false
}
