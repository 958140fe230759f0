package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

const resultCachePrefix = "search-result:"

// ResultCache keeps the latest search result per session across restarts.
// It is a single-slot memoization keyed by session id, mirroring the
// session's own LastResult field.
type ResultCache struct {
	client *Client
	ttl    time.Duration
}

// NewResultCache creates a result cache with the given TTL
func NewResultCache(client *Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached result for a session, or nil on a miss
func (c *ResultCache) Get(ctx context.Context, sessionID string) (*domain.SearchResult, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.rdb.Get(ctx, resultCachePrefix+sessionID).Bytes()
	if err != nil {
		return nil, nil // cache miss
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &result, nil
}

// Set caches the result for a session
func (c *ResultCache) Set(ctx context.Context, sessionID string, result *domain.SearchResult) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return c.client.rdb.Set(ctx, resultCachePrefix+sessionID, data, c.ttl).Err()
}

// Invalidate drops the cached result for a session
func (c *ResultCache) Invalidate(ctx context.Context, sessionID string) error {
	if c == nil {
		return nil
	}
	return c.client.rdb.Del(ctx, resultCachePrefix+sessionID).Err()
}
