package pg

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	maxOpenConnections            = 25
	maxIdleConnections            = 5
	connMaxLifetime               = 5 * time.Minute
	connMaxIdleTime               = 1 * time.Minute
	defaultStatementTimeoutMillis = 60000
)

type Config struct {
	Host                   string `envconfig:"HOST"`
	Port                   string `envconfig:"PORT"`
	Username               string `envconfig:"USERNAME"`
	Password               string `envconfig:"PASSWORD"`
	Database               string `envconfig:"DATABASE"`
	SSLMode                string `envconfig:"SSL_MODE"`
	StatementTimeoutMillis int    `envconfig:"STATEMENT_TIMEOUT" default:"60000"`
}

func (c *Config) toPgConnection() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host,
		c.Port,
		c.Username,
		c.Database,
		c.Password,
		c.SSLMode,
	)
}

// NewConnection создает пул соединений с настройками пула и statement_timeout
func (c *Config) NewConnection(ctx context.Context) (*sqlx.DB, error) {
	connectionConfig, err := pgx.ParseConfig(c.toPgConnection())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	timeout := c.StatementTimeoutMillis
	if timeout <= 0 {
		timeout = defaultStatementTimeoutMillis
	}
	// параметр сессии, применяется к каждому соединению пула
	connectionConfig.RuntimeParams["statement_timeout"] = strconv.Itoa(timeout)

	connectionString := stdlib.RegisterConnConfig(connectionConfig)
	db, err := sqlx.ConnectContext(ctx, "pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("connect db error: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}
