// Package retrieval implements the multi-codebook section retrieval engine
// (C5): seeding by subdomain and keyword, query-specific ranking, and an
// alphanumeric-aware section-number comparator.
package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/nyaya-engine/core/internal/cache"
	"github.com/nyaya-engine/core/internal/corpus"
	"github.com/nyaya-engine/core/internal/observability"
)

// ResponseCache caches a Sections result for a (domain, subdomain,
// normalized_query) key, so repeated identical queries skip re-ranking.
type ResponseCache struct {
	client cache.Client
	logger *observability.Logger
	config ResponseCacheConfig
}

// ResponseCacheConfig configures the retrieval response cache.
type ResponseCacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
	Enabled   bool
}

// DefaultResponseCacheConfig returns the engine's default cache settings.
func DefaultResponseCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "retrieval:sections:",
		Enabled:   true,
	}
}

// NewResponseCache creates a response cache over the given client (Redis or
// in-memory; either satisfies cache.Client).
func NewResponseCache(client cache.Client, logger *observability.Logger, config ResponseCacheConfig) *ResponseCache {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "retrieval:sections:"
	}
	if config.TTL == 0 {
		config.TTL = 5 * time.Minute
	}
	return &ResponseCache{client: client, logger: logger, config: config}
}

// Sections is the retrieval contract's output: three disjoint, ordered,
// deduplicated section lists (invariant I3).
type Sections struct {
	BNS  []corpus.Section
	IPC  []corpus.Section
	CrPC []corpus.Section
}

// cacheKey builds a deterministic key from the retrieval parameters.
func (c *ResponseCache) cacheKey(domainID, subdomainID, normalizedQuery string) string {
	hash := sha256.Sum256([]byte(domainID + "|" + subdomainID + "|" + normalizedQuery))
	return c.config.KeyPrefix + hex.EncodeToString(hash[:16])
}

// Get returns a previously cached Sections result, if present and unexpired.
func (c *ResponseCache) Get(ctx context.Context, domainID, subdomainID, normalizedQuery string) (Sections, bool) {
	if !c.config.Enabled || c.client == nil {
		return Sections{}, false
	}

	key := c.cacheKey(domainID, subdomainID, normalizedQuery)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss && c.logger != nil {
			c.logger.Debug().Err(err).Str("key", key).Msg("retrieval cache get error")
		}
		return Sections{}, false
	}

	var sections Sections
	if err := json.Unmarshal(data, &sections); err != nil {
		if c.logger != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached sections")
		}
		return Sections{}, false
	}
	return sections, true
}

// Set caches a Sections result under the given retrieval parameters.
func (c *ResponseCache) Set(ctx context.Context, domainID, subdomainID, normalizedQuery string, sections Sections) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	key := c.cacheKey(domainID, subdomainID, normalizedQuery)
	data, err := json.Marshal(sections)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.config.TTL); err != nil {
		if c.logger != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache sections")
		}
		return err
	}
	return nil
}
