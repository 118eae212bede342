// Copyright (c) 2026 Ludex. All rights reserved.

package videogame

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ludex-app/ludex/internal/platform/constants"
)

// Cache is the optional read-through cache for the unfiltered, title-ordered
// catalog listing. All methods are best-effort: cache trouble degrades to a
// store read, never to a request failure.
type Cache interface {
	GetList(ctx context.Context) ([]*Videogame, bool)
	SetList(ctx context.Context, games []*Videogame)
	Invalidate(ctx context.Context)
}

const listCacheKey = constants.RedisPrefixCatalog + "list:title_asc"

// RedisCache implements [Cache] on a shared Redis client.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (cache *RedisCache) GetList(ctx context.Context) ([]*Videogame, bool) {
	payload, err := cache.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("catalog_cache_read_failed", slog.Any("error", err))
		}
		return nil, false
	}

	var games []*Videogame
	if err := json.Unmarshal(payload, &games); err != nil {
		// A corrupt entry is dropped so the next read repopulates it.
		cache.logger.Warn("catalog_cache_corrupt", slog.Any("error", err))
		cache.Invalidate(ctx)
		return nil, false
	}
	return games, true
}

func (cache *RedisCache) SetList(ctx context.Context, games []*Videogame) {
	payload, err := json.Marshal(games)
	if err != nil {
		cache.logger.Warn("catalog_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, listCacheKey, payload, constants.CatalogCacheTTL).Err(); err != nil {
		cache.logger.Warn("catalog_cache_write_failed", slog.Any("error", err))
	}
}

func (cache *RedisCache) Invalidate(ctx context.Context) {
	if err := cache.client.Del(ctx, listCacheKey).Err(); err != nil {
		cache.logger.Warn("catalog_cache_invalidate_failed", slog.Any("error", err))
	}
}
