package inmemory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
)

// cleanupInterval период фоновой очистки просроченных ключей
const cleanupInterval = time.Minute

// Cache in-memory реализация cache.Cache для локального запуска и тестов.
// Счётчики хранятся как int64, остальные значения как строки.
type Cache struct {
	items *gocache.Cache
}

func NewCache() *Cache {
	return newCache(cleanupInterval)
}

func newCache(cleanup time.Duration) *Cache {
	return &Cache{items: gocache.New(gocache.NoExpiration, cleanup)}
}

var _ cache.Cache = (*Cache)(nil)

func expiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.NoExpiration
	}
	return ttl
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, cache.ErrNotFound)
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("unexpected value type %T for %s", v, key)
	}
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.items.Set(key, value, expiration(ttl))
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.items.Get(key)
	return ok, nil
}

// Incr повторяет семантику INCR: ttl ставится при создании ключа, нечисловое значение - ошибка
func (c *Cache) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	for {
		if err := c.items.Add(key, int64(1), expiration(ttl)); err == nil {
			return 1, nil
		}

		n, err := c.items.IncrementInt64(key, 1)
		if err == nil {
			return n, nil
		}
		// ключ истёк между Add и IncrementInt64 - создаём заново
		if _, ok := c.items.Get(key); ok {
			return 0, fmt.Errorf("failed to increment %s: %w", key, err)
		}
	}
}

func (c *Cache) Ping(context.Context) error {
	return nil
}

func (c *Cache) Close() error {
	c.items.Flush()
	return nil
}
