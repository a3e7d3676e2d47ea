// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// related.go provides a Valkey-backed cache of related-content rankings.
// Each entry is the ordered slug list computed for one
// (item, target type, limit) key, so repeated widget lookups skip ranking.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// relatedKeyPrefix is the Valkey key prefix for cached rankings.
	relatedKeyPrefix = "related:"

	// DefaultRelatedTTL is how long a ranking stays cached.
	DefaultRelatedTTL = 10 * time.Minute
)

// RelatedCache caches related-content slug lists in Valkey. Errors are
// logged and treated as misses so a cache outage never fails a request.
type RelatedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRelatedCache creates a related-content cache backed by client.
func NewRelatedCache(client *redis.Client, ttl time.Duration) *RelatedCache {
	if ttl == 0 {
		ttl = DefaultRelatedTTL
	}
	return &RelatedCache{client: client, ttl: ttl}
}

// Get returns the cached slugs for key.
func (rc *RelatedCache) Get(ctx context.Context, key string) ([]string, bool) {
	val, err := rc.client.Get(ctx, relatedKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("related cache get error", "key", key, "error", err)
		return nil, false
	}

	var slugs []string
	if err := json.Unmarshal(val, &slugs); err != nil {
		slog.Warn("related cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("related cache hit", "key", key)
	return slugs, true
}

// Set stores slugs under key with the configured TTL.
func (rc *RelatedCache) Set(ctx context.Context, key string, slugs []string) {
	if slugs == nil {
		slugs = []string{}
	}
	data, err := json.Marshal(slugs)
	if err != nil {
		slog.Warn("related cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, relatedKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		slog.Warn("related cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached ranking by scanning for the prefix.
// Called when content is reloaded, since any ranking could change.
func (rc *RelatedCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, relatedKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("related cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("related cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("related cache cleared", "deleted", deleted)
	}
}
