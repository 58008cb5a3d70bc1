package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Area = (*RedisArea)(nil)

// RedisArea keeps the area's keys in Redis so that several consoles on different machines
// share one remembered login. Keys are prefixed to keep the area apart from other data.
type RedisArea struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// RedisAreaOptions configures a Redis backed area.
type RedisAreaOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all keys (e.g., "admin-console:")
	Prefix string

	// OpTimeout bounds each Redis round trip
	OpTimeout time.Duration
}

// NewRedisArea connects to Redis and verifies the connection with a PING.
func NewRedisArea(opts RedisAreaOptions) (*RedisArea, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("NewRedisArea ParseURL: %w", err)
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 3 * time.Second
	}
	if opts.Prefix == "" {
		opts.Prefix = "admin-console:"
	}

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.OpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("NewRedisArea Ping: %w", err)
	}

	return &RedisArea{
		client:  client,
		prefix:  opts.Prefix,
		timeout: opts.OpTimeout,
	}, nil
}

func (r *RedisArea) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("RedisArea.Get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisArea) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("RedisArea.Set %s: %w", key, err)
	}
	return nil
}

func (r *RedisArea) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("RedisArea.Remove %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection pool
func (r *RedisArea) Close() error {
	return r.client.Close()
}
