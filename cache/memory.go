// Package cache provides the pluggable stores that memoize censoring
// decisions: an in-process LRU and a Redis-backed cache shared between
// processes. Both satisfy censor.Cache, and every entry they hold is
// recomputable from the dictionaries.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hashicorp/hcensor/censor"
)

// DefaultSize bounds each cache region when no size is configured.
const DefaultSize = 8192

var _ censor.Cache = (*Memory)(nil)

// Memory is an in-process cache. Word decisions and known-clean texts are
// kept in separate LRU regions so a flood of clean text cannot evict the
// profane decisions.
type Memory struct {
	words *lru.Cache[string, censor.Word]
	clean *lru.Cache[string, struct{}]
}

// NewMemory returns a Memory cache holding up to size entries per region.
// Sizes of zero or less fall back to DefaultSize.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	words, _ := lru.New[string, censor.Word](size)
	clean, _ := lru.New[string, struct{}](size)
	return &Memory{words: words, clean: clean}
}

// Get returns the cached decision for text.
func (c *Memory) Get(text string) (censor.Word, bool) {
	return c.words.Get(text)
}

// Set stores word keyed by its uncensored text.
func (c *Memory) Set(word censor.Word) {
	c.words.Add(word.Uncensored, word)
}

// IsKnownClean reports whether text was recorded as containing no profanity.
func (c *Memory) IsKnownClean(text string) bool {
	return c.clean.Contains(text)
}

// MarkClean records text as containing no profanity.
func (c *Memory) MarkClean(text string) {
	c.clean.Add(text, struct{}{})
}

// FlushAll drops both regions.
func (c *Memory) FlushAll() {
	c.words.Purge()
	c.clean.Purge()
}
