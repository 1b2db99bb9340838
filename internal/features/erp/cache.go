package erp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grn-console/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const candidatesKey = "erp:store_grn:candidates"

// Cache holds the last candidate snapshot in Redis
type Cache struct {
	client *redis.Client
	key    string
}

// NewCache connects to REDIS_URL. It returns a nil cache when Redis is not configured.
func NewCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*Cache, error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, ERP candidates are not cached")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	lc.Append(fx.StopHook(client.Close))
	return NewCacheWithClient(client), nil
}

// NewCacheWithClient wraps an existing client
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client, key: candidatesKey}
}

// Load returns the cached snapshot; ok is false on a miss
func (c *Cache) Load(ctx context.Context) (items []Candidate, ok bool, err error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load candidates: %w", err)
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("unmarshal candidates: %w", err)
	}
	return items, true, nil
}

func (c *Cache) Store(ctx context.Context, items []Candidate, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save candidates: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

// CachedSource is cache-aside over another Source. Redis failures fall through to the origin.
type CachedSource struct {
	next  Source
	cache *Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedSource(next Source, cache *Cache, ttl time.Duration, log *zap.Logger) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl, log: log}
}

func (s *CachedSource) Candidates(ctx context.Context) ([]Candidate, error) {
	items, ok, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn("ERP candidate cache unavailable", zap.Error(err))
	}
	if ok {
		return items, nil
	}
	return s.Refresh(ctx)
}

// Refresh reads the origin and replaces the cached snapshot
func (s *CachedSource) Refresh(ctx context.Context) ([]Candidate, error) {
	items, err := s.next.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Store(ctx, items, s.ttl); err != nil {
		s.log.Warn("Failed to cache ERP candidates", zap.Error(err))
	}
	return items, nil
}
