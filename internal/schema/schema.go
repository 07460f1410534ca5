// Package schema self-migrates the relational tables backing the board.
// Migrations are additive-only: tables are created if absent and new columns
// are added with safe defaults, but a pre-existing store missing a structural
// column is never altered silently.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// ErrOutdated marks a store whose structure is missing or incompatible.
// Callers use it to produce an operator-actionable message instead of a
// generic query failure.
var ErrOutdated = errors.New("board schema missing or outdated")

type addColumn struct {
	name string
	ddl  string
}

// Structural columns that must already exist in a pre-created store.
var (
	requiredPostColumns     = []string{"id", "title", "content", "created_at"}
	requiredCommentColumns  = []string{"id", "post_id", "content", "created_at"}
	requiredInterestColumns = []string{"category"}
)

// Columns soft-added after the first deployment; older stores pick them up in
// place with defaults that keep existing rows valid.
var (
	postAddColumns = []addColumn{
		{"updated_at", "updated_at INTEGER NOT NULL DEFAULT 0"},
		{"password_hash", "password_hash TEXT NOT NULL DEFAULT ''"},
	}
	commentAddColumns = []addColumn{
		{"updated_at", "updated_at INTEGER NOT NULL DEFAULT 0"},
		{"password_hash", "password_hash TEXT NOT NULL DEFAULT ''"},
	}
	interestAddColumns = []addColumn{
		{"count", "count INTEGER NOT NULL DEFAULT 0"},
		{"updated_at", "updated_at INTEGER NOT NULL DEFAULT 0"},
	}
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		password_hash TEXT NOT NULL,
		FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS ad_interest (
		category TEXT PRIMARY KEY,
		count INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id_created_at ON comments(post_id, created_at ASC)`,
}

// Manager verifies and upgrades the board schema. The ready flag only skips
// repeated verification within this process; every statement it issues is
// idempotent, so concurrent managers (or processes) racing through Ensure are
// safe without it.
type Manager struct {
	db    *sql.DB
	ready atomic.Bool
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Ensure creates missing tables and indexes, fails on structurally
// incompatible stores, and adds any missing soft columns. Safe to call
// repeatedly and concurrently.
func (m *Manager) Ensure(ctx context.Context) error {
	if m.ready.Load() {
		return nil
	}

	for _, stmt := range createStatements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create board schema: %w", err)
		}
	}

	if err := m.ensureColumns(ctx, "posts", requiredPostColumns, postAddColumns); err != nil {
		return err
	}
	if err := m.ensureColumns(ctx, "comments", requiredCommentColumns, commentAddColumns); err != nil {
		return err
	}
	if err := m.ensureColumns(ctx, "ad_interest", requiredInterestColumns, interestAddColumns); err != nil {
		return err
	}

	m.ready.Store(true)
	return nil
}

func (m *Manager) ensureColumns(ctx context.Context, table string, required []string, add []addColumn) error {
	columns, err := m.tableColumns(ctx, table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: table %s is missing", ErrOutdated, table)
	}

	var missing []string
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table %s lacks %s", ErrOutdated, table, strings.Join(missing, ", "))
	}

	for _, col := range add {
		if _, ok := columns[col.name]; ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, col.ddl)
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			// A concurrent Ensure may have added it first.
			if dup, derr := m.hasColumn(ctx, table, col.name); derr == nil && dup {
				continue
			}
			return fmt.Errorf("add column %s.%s: %w", table, col.name, err)
		}
	}
	return nil
}

func (m *Manager) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("introspect %s: %w", table, err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	return columns, nil
}

func (m *Manager) hasColumn(ctx context.Context, table, name string) (bool, error) {
	columns, err := m.tableColumns(ctx, table)
	if err != nil {
		return false, err
	}
	_, ok := columns[name]
	return ok, nil
}
