package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/dbx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAllAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetAll(ctx, map[string]string{"access_token": "a.b.c", "email": "alice@example.com"}))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, "a.b.c", v)

	v, err = r.Get(ctx, "email")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", v)
}

func TestGet_AbsentIsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorContains(t, err, "metadata[absent]")
}

func TestSetAll_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetAll(ctx, map[string]string{"k": "old"}))
	require.NoError(t, r.SetAll(ctx, map[string]string{"k": "new"}))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetAll(ctx, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, r.Clear(ctx))

	for _, k := range []string{"a", "b"} {
		_, err := r.Get(ctx, k)
		require.ErrorIs(t, err, common.ErrorNotFound)
	}
}

func TestSetAll_InsideRolledBackTx_LeavesNothing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, NewSQLiteRepository(tx).SetAll(ctx, map[string]string{"k": "v"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteRepository(db).Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.NotErrorIs(t, err, common.ErrorNotFound)
	require.ErrorContains(t, r.SetAll(ctx, map[string]string{"k": "v"}), "failed to set metadata[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
}
