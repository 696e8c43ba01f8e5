package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"handlescan/pkg/storage"
	"handlescan/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func countScans(t *testing.T, db *sql.DB, identifier string) int {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM scans WHERE identifier = $1`, identifier)
	var c int
	require.NoError(t, row.Scan(&c))

	return c
}

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)

	inner, ok := tx.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)
	require.Nil(t, inner.Pool)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, tx.Rollback())
}

func TestPgSQL_Commit_StoresScans(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.StoreScans(ctx, scanResult("hugo", "GitHub"))
	require.NoError(t, err)

	// not visible outside the transaction before commit
	require.Equal(t, 0, countScans(t, db, "hugo"))
	require.NoError(t, tx.Commit())
	require.Equal(t, 1, countScans(t, db, "hugo"))

	last, err := pg.LastScanByIdentifier(ctx, "hugo")
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, []string{"GitHub"}, last.Result.Platforms)
}

func TestPgSQL_Rollback_DiscardsScans(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.StoreScans(ctx, scanResult("iris"))
	require.NoError(t, err)

	// reads inside the transaction see its own writes
	last, err := tx.LastScanByIdentifier(ctx, "iris")
	require.NoError(t, err)
	require.NotNil(t, last)

	require.NoError(t, tx.Rollback())
	require.Equal(t, 0, countScans(t, db, "iris"))
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.StoreScans(ctx, scanResult("jack"), scanResult("jack", "Reddit"))

		return err //nolint: wrapcheck
	})
	require.NoError(t, err)
	require.Equal(t, 2, countScans(t, db, "jack"))

	boom := errors.New("boom")
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		if _, err := s.StoreScans(ctx, scanResult("kate")); err != nil {
			return err //nolint: wrapcheck
		}

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, countScans(t, db, "kate"))
}
