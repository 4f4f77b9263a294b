package filter

import (
	"fmt"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp/hcensor/nlp"
)

// Defaults applied by DefaultConfig.
const (
	DefaultLanguage            = "en"
	DefaultCensorChar          = "*"
	DefaultMaxRelativeDistance = 0.34
)

// Cache backend names accepted in CacheConfig.Backend.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig selects and tunes the decision cache.
type CacheConfig struct {
	// Backend is "memory" (the default) or "redis".
	Backend string
	// Size bounds each region of the in-process cache. Zero means the
	// cache package default.
	Size int
	// RedisURL is the redis:// or rediss:// connection string for the redis
	// backend. CAFile and CAPath optionally pin the CAs used to verify a
	// rediss:// server.
	RedisURL string
	CAFile   string
	CAPath   string
}

// Config assembles a Filter. Start from DefaultConfig and override.
type Config struct {
	// Languages in priority order. The first is the fallback when detection
	// cannot tell languages apart.
	Languages []string
	// CensorChar is the single character masks are built from.
	CensorChar string
	// CensorWholeWords masks the whole token once any part of it matches.
	// When false only the matched part is masked.
	CensorWholeWords bool
	// MaxRelativeDistance tolerates spelling distortions up to this fraction
	// of a word's length, between 0 and 1. The absolute budget never exceeds
	// three edits.
	MaxRelativeDistance float64
	// DeepAnalysis scans inside tokens so profanity buried in compounds and
	// distortions is found.
	DeepAnalysis bool

	// DataDir holds per-language <language>_profane_words.txt base lists.
	DataDir string
	// DictionaryBundle is an archive of base word lists, used instead of
	// DataDir.
	DictionaryBundle string
	// ExtraWords are appended to a language's resolved word list.
	ExtraWords map[string][]string
	// CustomWords replace a language's base word list entirely.
	CustomWords map[string][]string
	// VocabularyFiles name per-language ordinary word lists for the speller.
	// Vocabulary words are never recorded as permanently clean and their
	// inflections are stemmed during matching.
	VocabularyFiles map[string]string

	// Cache selects where censoring decisions are memoized.
	Cache CacheConfig

	// Tokenizers overrides tokenization per language. Nil means the default
	// tokenizer serves every configured language. A non-nil map is exact:
	// languages missing from it borrow the first configured language's
	// tokenizer, and configuration fails when no language has one.
	Tokenizers map[string]nlp.Tokenizer
	// Normalizer, Speller, and Detector replace the built-in collaborators
	// when non-nil.
	Normalizer nlp.Normalizer
	Speller    nlp.Speller
	Detector   nlp.Detector
}

// DefaultConfig returns the stock configuration: English, asterisk masks,
// whole-word censoring, deep analysis on, fuzzy tolerance 0.34, and an
// in-process cache.
func DefaultConfig() Config {
	return Config{
		Languages:           []string{DefaultLanguage},
		CensorChar:          DefaultCensorChar,
		CensorWholeWords:    true,
		MaxRelativeDistance: DefaultMaxRelativeDistance,
		DeepAnalysis:        true,
		Cache:               CacheConfig{Backend: CacheMemory},
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if len(c.Languages) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one language is required"))
	}
	for _, lang := range c.Languages {
		if lang == "" {
			result = multierror.Append(result, fmt.Errorf("languages must not be empty"))
			break
		}
	}
	if utf8.RuneCountInString(c.CensorChar) != 1 {
		result = multierror.Append(result, fmt.Errorf("censor char must be exactly one character, got %q", c.CensorChar))
	}
	if c.MaxRelativeDistance < 0 || c.MaxRelativeDistance > 1 {
		result = multierror.Append(result, fmt.Errorf("max relative distance must be between 0 and 1, got %v", c.MaxRelativeDistance))
	}
	if c.DataDir != "" && c.DictionaryBundle != "" {
		result = multierror.Append(result, fmt.Errorf("data dir and dictionary bundle are mutually exclusive"))
	}

	switch c.Cache.Backend {
	case "", CacheMemory:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			result = multierror.Append(result, fmt.Errorf("cache backend %q requires a redis url", CacheRedis))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}

	return result.ErrorOrNil()
}

// censorRune returns the configured censor character. Call after Validate.
func (c Config) censorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CensorChar)
	return r
}

// ConfigError wraps the problems that make a configuration unusable. It is
// fatal: New refuses to build the filter and Reconfigure leaves the previous
// configuration in place.
type ConfigError struct {
	err error
}

// Error implements error.
func (e *ConfigError) Error() string {
	return "invalid filter configuration: " + e.err.Error()
}

// Unwrap exposes the underlying validation problems.
func (e *ConfigError) Unwrap() error {
	return e.err
}
