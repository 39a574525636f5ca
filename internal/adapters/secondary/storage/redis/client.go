package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
)

// Client кэш прогнозов и счётчики лимитов поверх redis.Client
type Client struct {
	client *redis.Client
	prefix string
}

func NewClient(client *redis.Client, prefix string) *Client {
	return &Client{
		client: client,
		prefix: prefix,
	}
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

var _ cache.Cache = (*Client)(nil)

// Get возвращает cache.ErrNotFound для отсутствующего ключа
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", key, cache.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return count > 0, nil
}

// Incr счётчик фиксированного окна: TTL ставится только на первом инкременте
func (c *Client) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := c.client.Incr(ctx, c.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr failed: %w", err)
	}
	if n == 1 && ttl > 0 {
		if err := c.client.Expire(ctx, c.key(key), ttl).Err(); err != nil {
			return 0, fmt.Errorf("redis expire failed: %w", err)
		}
	}
	return n, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
