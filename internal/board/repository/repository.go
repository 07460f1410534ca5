// Package repository holds the SQL access layer for posts, comments and the
// ad-interest counters. Each method is one statement (one request/response
// against the shared store) except the post delete cascade, which runs in a
// transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wonhyungLee/tax-board/internal/board"
)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListPosts returns one page of posts ordered by creation time descending,
// each annotated with its comment count.
func (r *Repository) ListPosts(ctx context.Context, offset, limit int) ([]board.PostSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.created_at,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]board.PostSummary, 0, limit)
	for rows.Next() {
		var p board.PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatedAt, &p.CommentCount); err != nil {
			return nil, fmt.Errorf("scan post summary: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// GetPostWithComments loads a post and its comments ordered by creation time
// ascending. Returns board.ErrNotFound when the post does not exist. The
// post+comments view is assembled from two reads and is not a single atomic
// snapshot.
func (r *Repository) GetPostWithComments(ctx context.Context, id string) (*board.Post, error) {
	var p board.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM posts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, board.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, created_at, updated_at FROM comments WHERE post_id = ? ORDER BY created_at ASC`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	defer rows.Close()

	p.Comments = make([]board.Comment, 0)
	for rows.Next() {
		var c board.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		p.Comments = append(p.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	p.CommentCount = len(p.Comments)
	return &p, nil
}

// PostExists reports whether a post row with the given id is present.
func (r *Repository) PostExists(ctx context.Context, id string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("post exists: %w", err)
	}
	return true, nil
}

func (r *Repository) InsertPost(ctx context.Context, id, title, content string, now int64, passwordDigest string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at, updated_at, password_hash) VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, content, now, now, passwordDigest,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// PostDigest loads the stored password digest for a post.
func (r *Repository) PostDigest(ctx context.Context, id string) (string, error) {
	var digest string
	err := r.db.QueryRowContext(ctx, `SELECT password_hash FROM posts WHERE id = ?`, id).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", board.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("post digest: %w", err)
	}
	return digest, nil
}

func (r *Repository) UpdatePost(ctx context.Context, id, title, content string, now int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, now, id,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return board.ErrNotFound
	}
	return nil
}

// DeletePostCascade removes the post's comments and then the post itself.
// The cascade is enforced at the application layer; a transaction keeps a
// crash from leaving orphaned comments behind.
func (r *Repository) DeletePostCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete post: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("delete comments of post: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete post: %w", err)
	}
	return nil
}

func (r *Repository) InsertComment(ctx context.Context, id, postID, content string, now int64, passwordDigest string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, content, created_at, updated_at, password_hash) VALUES (?, ?, ?, ?, ?, ?)`,
		id, postID, content, now, now, passwordDigest,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// CommentOwner loads a comment's parent post id and stored password digest.
func (r *Repository) CommentOwner(ctx context.Context, id string) (postID, digest string, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT post_id, password_hash FROM comments WHERE id = ?`, id,
	).Scan(&postID, &digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", board.ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("comment owner: %w", err)
	}
	return postID, digest, nil
}

func (r *Repository) UpdateComment(ctx context.Context, id, content string, now int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, now, id,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return board.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// IncrementInterest creates the counter row for category on first use and
// increments it afterwards. Counter rows are never deleted here.
func (r *Repository) IncrementInterest(ctx context.Context, category string, now int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ad_interest (category, count, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT(category)
		DO UPDATE SET count = count + 1, updated_at = ?`,
		category, now, now,
	)
	if err != nil {
		return fmt.Errorf("increment interest: %w", err)
	}
	return nil
}
