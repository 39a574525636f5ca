package pg

import (
	"github.com/jmoiron/sqlx"
)

// Tx обёртка над sqlx.Tx; запросы выполняются с контекстом вызова
type Tx struct {
	queries
	tx *sqlx.Tx
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
