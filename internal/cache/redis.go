package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "gradplan:requirements:"

// RedisConfig is the "redis" section of the configuration file. An empty
// Addr disables Redis.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NewRedisClient opens a client and pings it once.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrCacheUnavailable, cfg.Addr, err)
	}
	return client, nil
}

type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisCache)

func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache stores requirements as JSON under prefix+key.
func NewRedisCache(client redis.Cmdable, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, prefix: defaultPrefix, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) fullKey(key string) string { return c.prefix + key }

func (c *RedisCache) Get(ctx context.Context, key string) (domain.ProgramRequirements, error) {
	var req domain.ProgramRequirements
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return req, ErrCacheMiss
	}
	if err != nil {
		return req, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		// A corrupt entry is as good as none.
		return req, ErrCacheMiss
	}
	return req, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, req domain.ProgramRequirements) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding requirements: %w", err)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

// Ping reports whether Redis answers, for readiness checks.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrCacheUnavailable, err)
	}
	return nil
}
