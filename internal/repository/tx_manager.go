package repository

import (
	"context"

	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"gorm.io/gorm"
)

// GormTxManager is a GORM implementation of TxManager.
type GormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *gorm.DB) TxManager {
	return &GormTxManager{db: db}
}

// WithTransaction runs fn inside a single transaction bound to ctx. A
// cancelled context fails the pending statements and the commit, so the
// transaction can never be partially committed.
func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.TransactionAbort(tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.TransactionAbort(err)
	}
	return nil
}

// visible restricts a query to non-deleted rows unless includeDeleted is set.
// Soft-delete filtering is always explicit; there is no implicit default
// scope rewriting queries behind the caller's back.
func visible(includeDeleted bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return db.Where("is_deleted = ?", false)
	}
}
