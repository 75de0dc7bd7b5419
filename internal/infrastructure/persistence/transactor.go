package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements shared.Transactor. The open transaction rides
// in the context, and every repository in this package joins it.
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a new GormTransactor
func NewTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction runs fn in a transaction, committing when fn returns nil.
// A call nested inside another transaction reuses the outer one.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
