package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Persistence общий набор запросов, доступный и на пуле, и внутри транзакции
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
	NamedExec(ctx context.Context, query string, arg interface{}) error
	QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

type Transaction interface {
	Persistence
	Commit() error
	Rollback() error
}

// Database пул соединений с поддержкой транзакций
type Database interface {
	Persistence
	BeginTx(ctx context.Context) (Transaction, error)
	WithTransaction(ctx context.Context, fn func(context.Context, Transaction) error) error
	Ping(ctx context.Context) error
	Close() error
}
