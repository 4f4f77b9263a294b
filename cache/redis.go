package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-rootcerts"
	"github.com/redis/go-redis/v9"

	"github.com/hashicorp/hcensor/censor"
)

const (
	wordKeyPrefix = "hcensor:word:"
	cleanSetKey   = "hcensor:clean"

	fieldUncensored = "uncensored"
	fieldCensored   = "censored"
	fieldOriginal   = "original_profane_word"
)

var _ censor.Cache = (*Redis)(nil)

// RedisConfig configures the Redis-backed cache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection string.
	URL string
	// CAFile and CAPath optionally pin the certificate authorities used to
	// verify a rediss:// server. CAFile names a PEM file, CAPath a directory
	// of them.
	CAFile string
	CAPath string
}

// Redis shares censoring decisions between processes through a Redis server.
// Transport failures degrade to an in-process fallback so censoring never
// stalls or errors on a cache outage.
type Redis struct {
	l        hclog.Logger
	client   *redis.Client
	fallback *Memory
	warnOnce sync.Once
}

// NewRedis parses cfg and returns a Redis cache. The server is not contacted
// until first use.
func NewRedis(cfg RedisConfig, logger hclog.Logger) (*Redis, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if cfg.CAFile != "" || cfg.CAPath != "" {
		tlsConfig := opts.TLSConfig
		if tlsConfig == nil {
			tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rcfg := &rootcerts.Config{CAFile: cfg.CAFile, CAPath: cfg.CAPath}
		if err := rootcerts.ConfigureTLS(tlsConfig, rcfg); err != nil {
			return nil, fmt.Errorf("configuring redis tls: %w", err)
		}
		opts.TLSConfig = tlsConfig
	}
	return &Redis{
		l:        logger,
		client:   redis.NewClient(opts),
		fallback: NewMemory(0),
	}, nil
}

// Get returns the decision stored for text, consulting the fallback for
// entries written while the server was unreachable.
func (c *Redis) Get(text string) (censor.Word, bool) {
	fields, err := c.client.HGetAll(context.Background(), wordKeyPrefix+text).Result()
	if err != nil {
		c.degraded("get", err)
		return c.fallback.Get(text)
	}
	if len(fields) == 0 {
		return c.fallback.Get(text)
	}
	return censor.Word{
		Uncensored:          fields[fieldUncensored],
		Censored:            fields[fieldCensored],
		OriginalProfaneWord: fields[fieldOriginal],
	}, true
}

// Set stores word keyed by its uncensored text.
func (c *Redis) Set(word censor.Word) {
	fields := map[string]string{
		fieldUncensored: word.Uncensored,
		fieldCensored:   word.Censored,
		fieldOriginal:   word.OriginalProfaneWord,
	}
	err := c.client.HSet(context.Background(), wordKeyPrefix+word.Uncensored, fields).Err()
	if err != nil {
		c.degraded("set", err)
		c.fallback.Set(word)
	}
}

// IsKnownClean reports whether text belongs to the shared known-clean set.
func (c *Redis) IsKnownClean(text string) bool {
	known, err := c.client.SIsMember(context.Background(), cleanSetKey, text).Result()
	if err != nil {
		c.degraded("sismember", err)
		return c.fallback.IsKnownClean(text)
	}
	return known
}

// MarkClean adds text to the shared known-clean set.
func (c *Redis) MarkClean(text string) {
	if err := c.client.SAdd(context.Background(), cleanSetKey, text).Err(); err != nil {
		c.degraded("sadd", err)
		c.fallback.MarkClean(text)
	}
}

// FlushAll drops the cache's logical database and the in-process fallback.
// Point the cache at a database dedicated to it.
func (c *Redis) FlushAll() {
	if err := c.client.FlushDB(context.Background()).Err(); err != nil {
		c.degraded("flushdb", err)
	}
	c.fallback.FlushAll()
}

// Close releases the client's connections.
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) degraded(op string, err error) {
	c.warnOnce.Do(func() {
		c.l.Warn("Redis cache unavailable, serving from in-process fallback", "op", op, "error", err)
	})
	c.l.Debug("Redis cache operation failed", "op", op, "error", err)
}
