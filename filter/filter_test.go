package filter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mholt/archiver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp/hcensor/cache"
	"github.com/hashicorp/hcensor/dictionary"
	"github.com/hashicorp/hcensor/nlp"
)

// testConfig returns the default configuration with an in-memory english
// dictionary of words.
func testConfig(words ...string) Config {
	cfg := DefaultConfig()
	cfg.CustomWords = map[string][]string{"en": words}
	return cfg
}

func newTestFilter(t *testing.T, cfg Config) *Filter {
	t.Helper()
	f, err := New(cfg, nil)
	require.NoError(t, err)
	return f
}

func TestCensor(t *testing.T) {
	tcs := []struct {
		name       string
		wholeWords bool
		text       string
		expect     string
	}{
		{
			name:       "profane word masked",
			wholeWords: true,
			text:       "fuck",
			expect:     "****",
		},
		{
			name:       "compound masks the whole token",
			wholeWords: true,
			text:       "fuckword here",
			expect:     "******** here",
		},
		{
			name:       "compound masks only the profane part",
			wholeWords: false,
			text:       "fuckword here",
			expect:     "****word here",
		},
		{
			name:       "clean text unchanged",
			wholeWords: true,
			text:       "hello world",
			expect:     "hello world",
		},
		{
			name:       "separators survive byte for byte",
			wholeWords: true,
			text:       "What the fuck, dude?!",
			expect:     "What the ****, dude?!",
		},
		{
			name:       "already censored text is stable",
			wholeWords: true,
			text:       "******** here",
			expect:     "******** here",
		},
		{
			name:       "empty text",
			wholeWords: true,
			text:       "",
			expect:     "",
		},
	}

	for _, tc := range tcs {
		cfg := testConfig("ass", "fuck")
		cfg.CensorWholeWords = tc.wholeWords
		f := newTestFilter(t, cfg)
		assert.Equal(t, tc.expect, f.Censor(tc.text), tc.name)
	}
}

func TestCensorIdempotent(t *testing.T) {
	inputs := []string{
		"fuck this and fuckthat",
		"clean as a whistle",
		"FUCK Fuck fuck",
	}
	for _, wholeWords := range []bool{true, false} {
		cfg := testConfig("fuck")
		cfg.CensorWholeWords = wholeWords
		f := newTestFilter(t, cfg)
		for _, input := range inputs {
			once := f.Censor(input)
			assert.Equal(t, once, f.Censor(once))
		}
	}
}

func TestCensorWord(t *testing.T) {
	f := newTestFilter(t, testConfig("ass", "fuck"))

	w := f.CensorWord("en", "fuck")
	assert.Equal(t, "fuck", w.Uncensored)
	assert.Equal(t, "****", w.Censored)
	assert.Equal(t, "fuck", w.OriginalProfaneWord)
	assert.True(t, w.IsCensored())

	clean := f.CensorWord("en", "hello")
	assert.False(t, clean.IsCensored())

	// An unspecified language consults every dictionary.
	any := f.CensorWord("", "fuck")
	assert.True(t, any.IsCensored())
}

func TestIsCleanIsProfane(t *testing.T) {
	f := newTestFilter(t, testConfig("fuck"))
	assert.True(t, f.IsClean("hello world"))
	assert.False(t, f.IsProfane("hello world"))
	assert.True(t, f.IsProfane("what the fuck"))
	assert.False(t, f.IsClean("what the fuck"))
}

func TestCensorDeepAnalysisOff(t *testing.T) {
	cfg := testConfig("fuck")
	cfg.DeepAnalysis = false
	f := newTestFilter(t, cfg)

	assert.Equal(t, "****", f.Censor("fuck"))
	assert.Equal(t, "fuckword", f.Censor("fuckword"), "compounds need deep analysis")
}

func TestCensorFuzzy(t *testing.T) {
	f := newTestFilter(t, testConfig("fuck"))
	assert.Equal(t, "***** you", f.Censor("fucck you"))

	strict := testConfig("fuck")
	strict.MaxRelativeDistance = 0
	f = newTestFilter(t, strict)
	assert.Equal(t, "fucck you", f.Censor("fucck you"))
}

func TestCensorMixedLanguages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Languages = []string{"en", "ru"}
	cfg.CustomWords = map[string][]string{
		"en": {"fuck"},
		"ru": {"хуй"},
	}
	f := newTestFilter(t, cfg)

	assert.Equal(t, "hello *** world", f.Censor("hello хуй world"))
	assert.Equal(t, "**** и хлеб", f.Censor("fuck и хлеб"))
}

func TestCensorUsesVocabularyStems(t *testing.T) {
	vocab := filepath.Join(t.TempDir(), "en_words.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("fuck\nwalk\n"), 0644))

	// Deep analysis off isolates the stem path: the inflected token can only
	// match through its stem.
	cfg := testConfig("fuck")
	cfg.DeepAnalysis = false
	cfg.VocabularyFiles = map[string]string{"en": vocab}
	f := newTestFilter(t, cfg)
	assert.Equal(t, "*******", f.Censor("fucking"))

	bare := testConfig("fuck")
	bare.DeepAnalysis = false
	f = newTestFilter(t, bare)
	assert.Equal(t, "fucking", f.Censor("fucking"))
}

func TestExtraWords(t *testing.T) {
	cfg := testConfig("fuck")
	cfg.ExtraWords = map[string][]string{"en": {"frak"}}
	f := newTestFilter(t, cfg)
	assert.Equal(t, "**** ****", f.Censor("frak fuck"))
}

func TestDataDirAndRestoreDictionaries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en"+dictionary.WordsFileSuffix)
	require.NoError(t, os.WriteFile(path, []byte("fuck\n"), 0644))

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.CustomWords = map[string][]string{"en": {"frak"}}
	f := newTestFilter(t, cfg)

	// The custom list replaces the base list entirely.
	assert.Equal(t, "**** fuck", f.Censor("frak fuck"))

	require.NoError(t, f.RestoreDictionaries())
	assert.Equal(t, "frak ****", f.Censor("frak fuck"))
}

func TestDictionaryBundle(t *testing.T) {
	src := t.TempDir()
	path := filepath.Join(src, "en"+dictionary.WordsFileSuffix)
	require.NoError(t, os.WriteFile(path, []byte("fuck\n"), 0644))
	bundle := filepath.Join(t.TempDir(), "dict.tar.gz")
	require.NoError(t, archiver.Archive([]string{path}, bundle))

	cfg := DefaultConfig()
	cfg.DictionaryBundle = bundle
	f := newTestFilter(t, cfg)
	assert.Equal(t, "**** no", f.Censor("fuck no"))
}

func TestRedisCacheIntegration(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig("fuck")
	cfg.Cache = CacheConfig{Backend: CacheRedis, RedisURL: "redis://" + srv.Addr()}
	f := newTestFilter(t, cfg)

	assert.Equal(t, "**** that", f.Censor("fuck that"))

	// Decisions land in the shared cache where other processes can see them.
	observer, err := cache.NewRedis(cache.RedisConfig{URL: "redis://" + srv.Addr()}, nil)
	require.NoError(t, err)
	defer observer.Close()

	word, ok := observer.Get("fuck")
	assert.True(t, ok)
	assert.Equal(t, "****", word.Censored)
	assert.True(t, observer.IsKnownClean("that"))
}

func TestReconfigureFlushesSharedCache(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig("fuck")
	cfg.Cache = CacheConfig{Backend: CacheRedis, RedisURL: "redis://" + srv.Addr()}
	f := newTestFilter(t, cfg)
	assert.Equal(t, 1, f.ConfigVersion())

	assert.Equal(t, "frak ****", f.Censor("frak fuck"))

	// Swap the dictionary. Without the flush the stale "frak is clean" and
	// "fuck is profane" records would leak through.
	next := cfg
	next.CustomWords = map[string][]string{"en": {"frak"}}
	require.NoError(t, f.Reconfigure(next))
	assert.Equal(t, 2, f.ConfigVersion())

	assert.Equal(t, "**** fuck", f.Censor("frak fuck"))
}

func TestReconfigureKeepsOldConfigOnError(t *testing.T) {
	f := newTestFilter(t, testConfig("fuck"))
	require.Equal(t, 1, f.ConfigVersion())

	bad := testConfig("fuck")
	bad.CensorChar = "ab"
	err := f.Reconfigure(bad)

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, f.ConfigVersion())
	assert.Equal(t, "****", f.Censor("fuck"))
}

func TestNewConfigErrors(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no languages", mutate: func(c *Config) { c.Languages = nil }},
		{name: "empty language", mutate: func(c *Config) { c.Languages = []string{""} }},
		{name: "empty censor char", mutate: func(c *Config) { c.CensorChar = "" }},
		{name: "multi rune censor char", mutate: func(c *Config) { c.CensorChar = "ab" }},
		{name: "distance out of range", mutate: func(c *Config) { c.MaxRelativeDistance = 1.5 }},
		{name: "redis backend without url", mutate: func(c *Config) { c.Cache = CacheConfig{Backend: CacheRedis} }},
		{name: "unknown cache backend", mutate: func(c *Config) { c.Cache = CacheConfig{Backend: "memcached"} }},
		{name: "no dictionaries resolve", mutate: func(c *Config) { c.CustomWords = nil }},
		{name: "tokenizers cover no configured language", mutate: func(c *Config) {
			c.Tokenizers = map[string]nlp.Tokenizer{"de": nlp.NewRuneTokenizer()}
		}},
	}

	for _, tc := range tcs {
		cfg := testConfig("fuck")
		tc.mutate(&cfg)
		_, err := New(cfg, nil)
		var cerr *ConfigError
		assert.ErrorAs(t, err, &cerr, tc.name)
	}
}

func TestNewReportsAllProblemsAtOnce(t *testing.T) {
	cfg := testConfig("fuck")
	cfg.CensorChar = ""
	cfg.MaxRelativeDistance = -1

	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "censor char")
	assert.Contains(t, err.Error(), "max relative distance")
}

func TestNewWrapsNoDictionaries(t *testing.T) {
	cfg := DefaultConfig()
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, dictionary.ErrNoDictionaries)
}

func TestCensorStream(t *testing.T) {
	f := newTestFilter(t, testConfig("fuck"))

	in := strings.NewReader("clean line\nwhat the fuck\nfuck\n")
	var out bytes.Buffer
	stats, err := f.CensorStream(&out, in)
	require.NoError(t, err)

	assert.Equal(t, "clean line\nwhat the ****\n****\n", out.String())
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 6, stats.Tokens)
	assert.Equal(t, 2, stats.Censored)
}

func TestCensorStreamWithoutTrailingNewline(t *testing.T) {
	f := newTestFilter(t, testConfig("fuck"))

	var out bytes.Buffer
	stats, err := f.CensorStream(&out, strings.NewReader("fuck"))
	require.NoError(t, err)
	assert.Equal(t, "****", out.String())
	assert.Equal(t, 1, stats.Lines)
}

func TestLanguages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Languages = []string{"en", "ru"}
	cfg.CustomWords = map[string][]string{"en": {"fuck"}}
	f := newTestFilter(t, cfg)
	assert.Equal(t, []string{"en", "ru"}, f.Languages())
}
