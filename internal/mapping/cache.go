package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "mapping:table:"

// CachedRepository wraps a Repository with a Redis read-through cache.
// Only the mapping configuration is cached; resolved variable values are
// request-scoped and never stored.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository constructs the cache wrapper.
func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

// FetchRows serves from cache when possible, otherwise reads through and
// populates. Cache failures degrade to direct reads.
func (c *CachedRepository) FetchRows(ctx context.Context, table string) ([]Row, error) {
	key := cacheKeyPrefix + table
	if c.client != nil {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			var rows []Row
			if err := json.Unmarshal(data, &rows); err == nil {
				return rows, nil
			}
			c.logger.Warn("mapping cache entry corrupt, refetching", slog.String("table", table))
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn("mapping cache read failed", slog.String("table", table), slog.Any("error", err))
		}
	}

	rows, err := c.inner.FetchRows(ctx, table)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		if data, err := json.Marshal(rows); err == nil {
			if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.Warn("mapping cache write failed", slog.String("table", table), slog.Any("error", err))
			}
		}
	}
	return rows, nil
}

// Invalidate drops a cached table after configuration changes.
func (c *CachedRepository) Invalidate(ctx context.Context, table string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKeyPrefix+table).Err()
}
