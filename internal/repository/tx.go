package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// withTx returns a context carrying the given transaction handle. Every
// repository in this package resolves its connection through conn, so a
// service running inside TxManager.WithinTx transparently executes all
// repository calls on the one transaction.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// TxManager runs a function inside a single database transaction. A
// returned error rolls back every write made by the function.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
