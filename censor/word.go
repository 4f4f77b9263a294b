// Package censor implements the core masking machinery: candidate
// enumeration over a token's substrings and the fixpoint loop that censors
// one token at a time.
package censor

import (
	"strings"
	"unicode/utf8"
)

// Word is the censoring decision for a single token. Censored equals
// Uncensored when the token is clean. OriginalProfaneWord is the dictionary
// root word that triggered the match, empty for clean tokens.
type Word struct {
	Uncensored          string `json:"uncensored"`
	Censored            string `json:"censored"`
	OriginalProfaneWord string `json:"original_profane_word,omitempty"`
}

// Unchanged returns the Word recording that text required no masking.
func Unchanged(text string) Word {
	return Word{Uncensored: text, Censored: text}
}

// IsCensored reports whether any part of the word was masked.
func (w Word) IsCensored() bool {
	return w.Censored != w.Uncensored
}

// FullMask returns censorChar repeated to the rune length of text, so that
// masked output always has the same character count as its input.
func FullMask(text string, censorChar rune) string {
	return strings.Repeat(string(censorChar), utf8.RuneCountInString(text))
}
