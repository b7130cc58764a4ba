package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// TxRunner runs fn inside one database transaction. fn's error rolls it back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return errors.New("transaction runner has nil db")
	}
	return r.db.WithContext(ctx).Transaction(fn)
}
