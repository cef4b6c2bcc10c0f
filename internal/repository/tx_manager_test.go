package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/girmesh03/taskforce/internal/errors"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestWithTransactionCommits(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	manager := NewTxManager(db)
	called := false
	err := manager.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnBusinessError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := apperrors.Conflict("email", "already in use")
	manager := NewTxManager(db)
	err := manager.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		return boom
	})

	// business errors pass through untouched, no TransactionAbort wrapping
	require.True(t, errors.Is(err, apperrors.ErrConflict))
	require.False(t, errors.Is(err, apperrors.ErrTransactionAbort))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionWrapsCommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	manager := NewTxManager(db)
	err := manager.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		return nil
	})

	require.True(t, errors.Is(err, apperrors.ErrTransactionAbort))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionAbortsOnContextCancel(t *testing.T) {
	// A file-backed DB (not ":memory:") so the data survives the pool
	// replacing the connection that the context cancellation killed.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tx.db")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(&models.Company{}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewTxManager(db)
	err = manager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Company{
			Name:    "acme facility services",
			Address: "Bole, Addis Ababa",
			Phone:   "+251911223344",
			Email:   "ops@acme.com",
		}).Error; err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.True(t, errors.Is(err, apperrors.ErrTransactionAbort))

	// nothing from the aborted transaction is visible afterwards
	var count int64
	require.NoError(t, db.Model(&models.Company{}).Count(&count).Error)
	require.Zero(t, count)
}
