package services

import (
	"context"
	"errors"
	"pillar2/config"
	"pillar2/internal/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.SQL.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)").Error)
	return db
}

func countItems(t *testing.T, db database.DB) int64 {
	var count int64
	require.NoError(t, db.SQL.Table("items").Count(&count).Error)
	return count
}

func TestExecute_Commits(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)

	err := service.Execute(context.Background(), func(ctx context.Context) error {
		tx, ok := GetTransaction(ctx)
		require.True(t, ok)
		return tx.Exec("INSERT INTO items (name) VALUES (?)", "a").Error
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), countItems(t, db))
}

func TestExecute_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)
	failure := errors.New("boom")

	err := service.Execute(context.Background(), func(ctx context.Context) error {
		tx, _ := GetTransaction(ctx)
		require.NoError(t, tx.Exec("INSERT INTO items (name) VALUES (?)", "a").Error)
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, int64(0), countItems(t, db))
}

func TestExecute_NestedJoinsOuterTransaction(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)

	err := service.Execute(context.Background(), func(ctx context.Context) error {
		outer, _ := GetTransaction(ctx)
		return service.Execute(ctx, func(inner context.Context) error {
			tx, ok := GetTransaction(inner)
			require.True(t, ok)
			assert.Same(t, outer, tx)
			return nil
		})
	})

	assert.NoError(t, err)
}

func TestGetTransaction_Missing(t *testing.T) {
	tx, ok := GetTransaction(context.Background())
	assert.False(t, ok)
	assert.Nil(t, tx)
}
