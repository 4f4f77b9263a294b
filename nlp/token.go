// Package nlp holds the light text analysis censoring needs: tokenization,
// word form normalization, vocabulary lookups, language detection, and
// splitting mixed-language text into single-language runs.
package nlp

import (
	"unicode"
)

// TokenKind classifies a token.
type TokenKind int

const (
	// KindWord tokens are maximal runs of letters, digits, and underscores.
	KindWord TokenKind = iota
	// KindSeparator tokens are runs of everything else, preserved verbatim.
	KindSeparator
)

// Token is one piece of tokenized text. Start and End are byte offsets into
// the input, half-open. Concatenating every token's Text in order reproduces
// the input exactly.
type Token struct {
	Text  string
	Start int
	End   int
	Kind  TokenKind
}

// Tokenizer splits text into word and separator tokens for a language.
type Tokenizer interface {
	Tokenize(lang, text string) []Token
}

// RuneTokenizer is the default language-independent tokenizer.
type RuneTokenizer struct{}

// NewRuneTokenizer returns the default tokenizer.
func NewRuneTokenizer() *RuneTokenizer {
	return &RuneTokenizer{}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func kindOf(r rune) TokenKind {
	if isWordRune(r) {
		return KindWord
	}
	return KindSeparator
}

// Tokenize splits text into alternating word and separator runs.
func (tz *RuneTokenizer) Tokenize(_ string, text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	runStart := 0
	runKind := KindWord
	for i, r := range text {
		k := kindOf(r)
		if i == 0 {
			runKind = k
			continue
		}
		if k != runKind {
			tokens = append(tokens, Token{Text: text[runStart:i], Start: runStart, End: i, Kind: runKind})
			runStart, runKind = i, k
		}
	}
	return append(tokens, Token{Text: text[runStart:], Start: runStart, End: len(text), Kind: runKind})
}
