// Package filter is the public face of hcensor: it assembles dictionaries,
// caching, and text analysis into a profanity filter that censors free text,
// single words, and streams.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/hcensor/cache"
	"github.com/hashicorp/hcensor/censor"
	"github.com/hashicorp/hcensor/dictionary"
	"github.com/hashicorp/hcensor/nlp"
)

// Stats counts what a censoring pass saw.
type Stats struct {
	Lines    int
	Tokens   int
	Censored int
}

// Filter censors profanity in text. Build one with New; a Filter is not safe
// for concurrent use while Reconfigure is running.
type Filter struct {
	l hclog.Logger

	cfg     Config
	version int

	store      *dictionary.Store
	matcher    *dictionary.Matcher
	cache      censor.Cache
	engine     *censor.Engine
	segmenter  *nlp.Segmenter
	tokenizers map[string]nlp.Tokenizer
	fallback   nlp.Tokenizer
}

// New builds a Filter from cfg. Configuration problems are reported as a
// *ConfigError carrying every issue found.
func New(cfg Config, logger hclog.Logger) (*Filter, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	f := &Filter{l: logger}
	if err := f.apply(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// apply builds the collaborators for cfg, swaps them in, and flushes the
// cache. Nothing is mutated until every build step has succeeded.
func (f *Filter) apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return &ConfigError{err: err}
	}

	loader := dictionary.NewLoader(f.l)
	var base map[string]*dictionary.Set
	var err error
	switch {
	case cfg.DictionaryBundle != "":
		base, err = loader.LoadBundle(cfg.DictionaryBundle, cfg.Languages)
	case cfg.DataDir != "":
		base, err = loader.LoadDir(cfg.DataDir, cfg.Languages)
	}
	if err != nil {
		return &ConfigError{err: err}
	}

	store, err := dictionary.NewStore(dictionary.StoreConfig{
		Languages: cfg.Languages,
		Base:      base,
		Extra:     wordSets(cfg.ExtraWords),
		Custom:    wordSets(cfg.CustomWords),
	})
	if err != nil {
		return &ConfigError{err: err}
	}

	speller := cfg.Speller
	if speller == nil {
		speller = nlp.NoSpeller{}
		if len(cfg.VocabularyFiles) > 0 {
			ws := nlp.NewWordlistSpeller(f.l)
			for lang, path := range cfg.VocabularyFiles {
				if err := ws.LoadLanguageFile(lang, path); err != nil {
					return &ConfigError{err: err}
				}
			}
			speller = ws
		}
	}

	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = nlp.NewBasicNormalizer(speller)
	}

	detector := cfg.Detector
	if detector == nil {
		if len(cfg.Languages) > 1 {
			detector = nlp.NewScriptDetector(cfg.Languages)
		} else {
			detector = nlp.StaticDetector{Language: cfg.Languages[0]}
		}
	}

	tokenizers := make(map[string]nlp.Tokenizer, len(cfg.Languages))
	var fallback nlp.Tokenizer
	if cfg.Tokenizers == nil {
		fallback = nlp.NewRuneTokenizer()
		for _, lang := range cfg.Languages {
			tokenizers[lang] = fallback
		}
	} else {
		for _, lang := range cfg.Languages {
			if tz := cfg.Tokenizers[lang]; tz != nil {
				tokenizers[lang] = tz
				if fallback == nil {
					fallback = tz
				}
			}
		}
		if fallback == nil {
			return &ConfigError{err: fmt.Errorf("no tokenizer available for any of languages %v", cfg.Languages)}
		}
	}

	newCache, err := buildCache(cfg.Cache, f.l)
	if err != nil {
		return &ConfigError{err: err}
	}

	if closer, ok := f.cache.(io.Closer); ok {
		_ = closer.Close()
	}
	f.cfg = cfg
	f.version++
	f.store = store
	f.matcher = dictionary.NewMatcher(store, cfg.MaxRelativeDistance)
	f.cache = newCache
	f.engine = censor.NewEngine(censor.EngineConfig{
		CensorChar:   cfg.censorRune(),
		WholeWords:   cfg.CensorWholeWords,
		DeepAnalysis: cfg.DeepAnalysis,
	}, f.matcher, f.cache, normalizer, speller, f.l)
	f.segmenter = nlp.NewSegmenter(cfg.Languages, detector)
	f.tokenizers = tokenizers
	f.fallback = fallback

	// Decisions made under the previous configuration are stale, and on a
	// shared cache may have been made by a process with other settings.
	f.cache.FlushAll()

	f.l.Info("Configured filter",
		"version", f.version,
		"languages", strings.Join(cfg.Languages, ","),
		"whole_words", cfg.CensorWholeWords,
		"deep_analysis", cfg.DeepAnalysis,
	)
	return nil
}

// Censor returns text with profanity masked. Everything that is not a
// profane word survives byte for byte.
func (f *Filter) Censor(text string) string {
	censored, _ := f.censorText(text)
	return censored
}

// IsClean reports whether text contains no profanity.
func (f *Filter) IsClean(text string) bool {
	return f.Censor(text) == text
}

// IsProfane reports whether text contains profanity.
func (f *Filter) IsProfane(text string) bool {
	return !f.IsClean(text)
}

// CensorWord censors word as a single token and returns the full decision.
// An empty lang consults every configured language.
func (f *Filter) CensorWord(lang, word string) censor.Word {
	return f.engine.CensorWord(lang, word)
}

// CensorStream censors r line by line into w and returns counts for the run.
func (f *Filter) CensorStream(w io.Writer, r io.Reader) (Stats, error) {
	var stats Stats
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			stats.Lines++
			censored, lineStats := f.censorText(line)
			stats.Tokens += lineStats.Tokens
			stats.Censored += lineStats.Censored
			if _, werr := io.WriteString(w, censored); werr != nil {
				return stats, werr
			}
		}
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
	}
}

// Reconfigure swaps the filter over to cfg and flushes the cache, so
// decisions made under the old configuration cannot leak through. On error
// the previous configuration stays in effect.
func (f *Filter) Reconfigure(cfg Config) error {
	return f.apply(cfg)
}

// RestoreDictionaries reloads the base word lists, dropping every extra and
// custom word while keeping the rest of the configuration.
func (f *Filter) RestoreDictionaries() error {
	cfg := f.cfg
	cfg.ExtraWords = nil
	cfg.CustomWords = nil
	return f.apply(cfg)
}

// ConfigVersion returns a counter that increases on every successful
// configuration change.
func (f *Filter) ConfigVersion() int {
	return f.version
}

// Languages returns the configured language order.
func (f *Filter) Languages() []string {
	return f.store.Languages()
}

func (f *Filter) censorText(text string) (string, Stats) {
	var stats Stats
	var b strings.Builder
	b.Grow(len(text))
	for _, run := range f.segmenter.Segment(text) {
		tz := f.tokenizer(run.Language)
		for _, tok := range tz.Tokenize(run.Language, run.Text) {
			if tok.Kind != nlp.KindWord {
				b.WriteString(tok.Text)
				continue
			}
			stats.Tokens++
			word := f.engine.CensorWord(run.Language, tok.Text)
			if word.IsCensored() {
				stats.Censored++
			}
			b.WriteString(word.Censored)
		}
	}
	return b.String(), stats
}

// tokenizer resolves the tokenizer for lang, borrowing the first configured
// language's tokenizer when lang has none of its own.
func (f *Filter) tokenizer(lang string) nlp.Tokenizer {
	if tz, ok := f.tokenizers[lang]; ok {
		return tz
	}
	return f.fallback
}

func buildCache(cfg CacheConfig, l hclog.Logger) (censor.Cache, error) {
	switch cfg.Backend {
	case "", CacheMemory:
		return cache.NewMemory(cfg.Size), nil
	case CacheRedis:
		return cache.NewRedis(cache.RedisConfig{
			URL:    cfg.RedisURL,
			CAFile: cfg.CAFile,
			CAPath: cfg.CAPath,
		}, l)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func wordSets(words map[string][]string) map[string]*dictionary.Set {
	if len(words) == 0 {
		return nil
	}
	sets := make(map[string]*dictionary.Set, len(words))
	for lang, list := range words {
		set := dictionary.NewSet()
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			set.Add(w)
		}
		sets[lang] = set
	}
	return sets
}
