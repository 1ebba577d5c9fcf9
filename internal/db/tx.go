package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Transactor runs a unit of work inside a single transaction. Repositories
// take the sqlx.ExtContext they are handed so the same methods serve both
// the pool and an open transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &transactor{db: db}
}

// WithTx commits when fn returns nil and rolls back otherwise. Nothing fn
// wrote is visible if it fails halfway.
func (t *transactor) WithTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
