package schema

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// one connection so the in-memory database is shared across statements
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsure_FreshStore(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	require.NoError(t, m.Ensure(ctx))

	// all three tables accept writes with the full target structure
	_, err := db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at, updated_at, password_hash) VALUES ('p1', 't', 'c', 1, 1, 'h')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, content, created_at, updated_at, password_hash) VALUES ('c1', 'p1', 'c', 1, 1, 'h')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO ad_interest (category, count, updated_at) VALUES ('card', 1, 1)`)
	require.NoError(t, err)
}

func TestEnsure_Idempotent(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	require.NoError(t, m.Ensure(ctx))
	require.NoError(t, m.Ensure(ctx))

	// a second manager (fresh process-local flag) re-verifies without error
	require.NoError(t, NewManager(db).Ensure(ctx))
}

func TestEnsure_Concurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = NewManager(db).Ensure(ctx)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
}

func TestEnsure_UpgradesLegacyStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// a first-generation deployment: structural columns only
	_, err := db.ExecContext(ctx,
		`CREATE TABLE posts (id TEXT PRIMARY KEY, title TEXT NOT NULL, content TEXT NOT NULL, created_at INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at) VALUES ('old', 't', 'c', 1)`)
	require.NoError(t, err)

	require.NoError(t, NewManager(db).Ensure(ctx))

	// soft-added columns exist and the pre-existing row got safe defaults
	var updatedAt int64
	var digest string
	err = db.QueryRowContext(ctx,
		`SELECT updated_at, password_hash FROM posts WHERE id = 'old'`).Scan(&updatedAt, &digest)
	require.NoError(t, err)
	require.Zero(t, updatedAt)
	require.Empty(t, digest)
}

func TestEnsure_IncompatibleStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// a posts table without a structural column must not be altered silently
	_, err := db.ExecContext(ctx,
		`CREATE TABLE posts (id TEXT PRIMARY KEY, title TEXT NOT NULL, created_at INTEGER NOT NULL)`)
	require.NoError(t, err)

	err = NewManager(db).Ensure(ctx)
	require.ErrorIs(t, err, ErrOutdated)
	require.Contains(t, err.Error(), "content")
}
