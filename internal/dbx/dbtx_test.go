package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupDB opens a single-connection in-memory store shaped like the local
// metadata table.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func put(ctx context.Context, tx DBTX, key string, value any) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO metadata(key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func keys(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT key FROM metadata ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestWithTx_CommitsSessionPair(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := put(ctx, tx, "token", []byte("jwt")); err != nil {
			return err
		}
		return put(ctx, tx, "user", []byte(`{"id":"1"}`))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"token", "user"}, keys(t, db))
}

func TestWithTx_SecondWriteFailsNothingStored(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, put(ctx, tx, "token", []byte("jwt")))
		return put(ctx, tx, "user", nil)
	})
	require.Error(t, err, "NOT NULL value must fail")
	assert.Empty(t, keys(t, db))
}

func TestWithTx_FnErrorReturnedAsIs(t *testing.T) {
	db := setupDB(t)
	errStop := errors.New("stop")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, put(ctx, tx, "draft", []byte("x")))
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Empty(t, keys(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	func() {
		defer func() {
			assert.Equal(t, "kaput", recover())
		}()
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, put(ctx, tx, "token", []byte("jwt")))
			panic("kaput")
		})
	}()

	assert.Empty(t, keys(t, db))
}

func TestWithTx_BeginErrors(t *testing.T) {
	t.Run("closed db", func(t *testing.T) {
		db := setupDB(t)
		require.NoError(t, db.Close())
		err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		db := setupDB(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithTx(ctx, db, nil, func(context.Context, DBTX) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
