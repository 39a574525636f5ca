package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
)

// executor общий набор методов sqlx.DB и sqlx.Tx
type executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// queries реализует persistence.Persistence поверх пула или транзакции
type queries struct {
	ex executor
}

// Get выполняет запрос и сканирует результат в структуру (одна запись)
func (q queries) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return q.ex.GetContext(ctx, dest, query, args...)
}

// Select выполняет запрос и сканирует результаты в слайс структур
func (q queries) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return q.ex.SelectContext(ctx, dest, query, args...)
}

// Exec выполняет запрос без возврата данных (INSERT, UPDATE, DELETE)
func (q queries) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := q.ex.ExecContext(ctx, query, args...)
	return err
}

// ExecWithResult выполняет запрос и возвращает количество затронутых строк
func (q queries) ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := q.ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// NamedExec выполняет именованный запрос (использует struct tags)
func (q queries) NamedExec(ctx context.Context, query string, arg interface{}) error {
	_, err := q.ex.NamedExecContext(ctx, query, arg)
	return err
}

// QueryRow выполняет запрос и возвращает строку для сканирования
func (q queries) QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return q.ex.QueryRowxContext(ctx, query, args...)
}

// DB обёртка над пулом sqlx.DB
type DB struct {
	queries
	Db *sqlx.DB
}

func NewDB(db *sqlx.DB) *DB {
	return &DB{queries: queries{ex: db}, Db: db}
}

// BeginTx начинает новую транзакцию
func (d *DB) BeginTx(ctx context.Context) (persistence.Transaction, error) {
	tx, err := d.Db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{queries: queries{ex: tx}, tx: tx}, nil
}

// WithTransaction выполняет функцию в транзакции с автоматическим commit/rollback
func (d *DB) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	tx, err := d.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("rollback failed: %v: %w", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Db.PingContext(ctx)
}

// Close закрывает подключение к базе данных
func (d *DB) Close() error {
	return d.Db.Close()
}
