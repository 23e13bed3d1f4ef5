// Package redis memoizes final search results in Redis via rueidis.
// The cache is a pure optimization: every failure degrades to a cache
// miss and the search runs as if no cache existed.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/rueidis"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

type Cache struct {
	client rueidis.Client
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Cache, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return &Cache{client: client, logger: logger}, nil
}

func (c *Cache) Close() {
	c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.SearchResult, bool) {
	cmd := c.client.B().Get().Key(key).Build()
	payload, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.Warn("cache_get_failed", "key", key, "error", err)
		}
		return nil, false
	}

	var result domain.SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		c.logger.Warn("cache_entry_corrupt", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

func (c *Cache) Set(ctx context.Context, key string, result *domain.SearchResult, ttl time.Duration) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache_encode_failed", "key", key, "error", err)
		return
	}

	cmd := c.client.B().Set().Key(key).Value(rueidis.BinaryString(payload)).Ex(ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("cache_set_failed", "key", key, "error", err)
	}
}

// Noop is the cache used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.SearchResult, bool) { return nil, false }

func (Noop) Set(context.Context, string, *domain.SearchResult, time.Duration) {}
