// Package dbtx carries an open gorm transaction through a context so that
// repositories from different packages can join it.
package dbtx

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// DB returns the transaction in ctx, or db bound to ctx when there is none.
func DB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// Run executes fn inside a transaction. When ctx already carries one, fn
// joins it through a savepoint.
func Run(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	return DB(ctx, db).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
