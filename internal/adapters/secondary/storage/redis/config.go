package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config кэш прогнозов и счётчики лимитов; таймауты короткие, т.к. кэш на пути запроса и при ошибке пропускается
type Config struct {
	Addr         string        `envconfig:"ADDR" default:"localhost:6379"`
	Username     string        `envconfig:"USERNAME"`
	Password     string        `envconfig:"PASSWORD"`
	Database     int           `envconfig:"DATABASE" default:"0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"oath:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MIN_IDLE_CONNS" default:"2"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"3s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"500ms"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"500ms"`
}

func (c *Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.Database,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		MaxRetries:   c.MaxRetries,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// Open подключение с проверкой PING; ключи кэша получают KeyPrefix
func (c *Config) Open(ctx context.Context) (*Client, error) {
	rdb := redis.NewClient(c.options())

	pingCtx := ctx
	if c.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, c.DialTimeout)
		defer cancel()
	}

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", c.Addr, err)
	}

	return NewClient(rdb, c.KeyPrefix), nil
}
