// Package service composes validation, the content filter, the rate limiter
// and credential checks around every mutating board request. Reads skip all
// of that and hit the store directly.
package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wonhyungLee/tax-board/internal/board"
	"github.com/wonhyungLee/tax-board/internal/board/repository"
	"github.com/wonhyungLee/tax-board/internal/credentials"
	"github.com/wonhyungLee/tax-board/internal/filter"
	"github.com/wonhyungLee/tax-board/internal/ratelimit"
	"github.com/wonhyungLee/tax-board/internal/schema"
	"github.com/wonhyungLee/tax-board/pkg/metrics"
)

const (
	// Cooldowns between successive writes from the same client identity.
	PostCooldown    = 10 * time.Second
	CommentCooldown = 6 * time.Second

	minListLimit = 1
	maxListLimit = 20
)

// Options carries the deployment-level knobs for the service.
type Options struct {
	// PasswordPepper is mixed into every ownership digest.
	PasswordPepper  string
	PostCooldown    time.Duration
	CommentCooldown time.Duration
}

type Service struct {
	repo    *repository.Repository
	schema  *schema.Manager
	filter  *filter.Filter
	limiter ratelimit.Limiter
	opts    Options
}

func New(repo *repository.Repository, mgr *schema.Manager, f *filter.Filter, lim ratelimit.Limiter, opts Options) *Service {
	if opts.PostCooldown <= 0 {
		opts.PostCooldown = PostCooldown
	}
	if opts.CommentCooldown <= 0 {
		opts.CommentCooldown = CommentCooldown
	}
	if lim == nil {
		lim = ratelimit.Noop{}
	}
	if f == nil {
		f = filter.Default()
	}
	return &Service{repo: repo, schema: mgr, filter: f, limiter: lim, opts: opts}
}

func now() int64 { return time.Now().UnixMilli() }

// ensureSchema runs the lazy migration before a write. The manager caches
// success, so this is one atomic load on the hot path.
func (s *Service) ensureSchema(ctx context.Context) error {
	if s.schema == nil {
		return nil
	}
	return s.schema.Ensure(ctx)
}

// ListPosts returns one board page. Limit is clamped to [1,20], offset floors
// at 0.
func (s *Service) ListPosts(ctx context.Context, offset, limit int) (*board.PostList, error) {
	if limit < minListLimit {
		limit = minListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.repo.ListPosts(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &board.PostList{
		Posts:      posts,
		NextOffset: offset + len(posts),
		HasMore:    len(posts) == limit,
	}, nil
}

func (s *Service) GetPost(ctx context.Context, id string) (*board.Post, error) {
	return s.repo.GetPostWithComments(ctx, id)
}

// CreatePost validates, filters and throttles the request, then stores the
// post with createdAt == updatedAt and returns it with an empty comment list.
func (s *Service) CreatePost(ctx context.Context, title, content, password, clientKey string) (*board.Post, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	title, content, password, err := validatePostFields(title, content, password)
	if err != nil {
		metrics.WritesRejected.WithLabelValues("create_post", "validation").Inc()
		return nil, err
	}
	if s.filter.Contains(title + " " + content) {
		metrics.WritesRejected.WithLabelValues("create_post", "filter").Inc()
		return nil, board.ErrForbiddenContent
	}

	granted, err := s.limiter.TryAcquire(ctx, "post:"+clientKey, s.opts.PostCooldown)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !granted {
		metrics.WritesRejected.WithLabelValues("create_post", "rate_limit").Inc()
		return nil, board.ErrRateLimited
	}

	id := uuid.NewString()
	ts := now()
	digest := credentials.Digest(password, s.opts.PasswordPepper)
	if err := s.repo.InsertPost(ctx, id, title, content, ts, digest); err != nil {
		return nil, err
	}
	metrics.WritesAccepted.WithLabelValues("create_post").Inc()

	return &board.Post{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
		Comments:  []board.Comment{},
	}, nil
}

// UpdatePost verifies ownership before mutating, then returns the refreshed
// post with its comments.
func (s *Service) UpdatePost(ctx context.Context, id, title, content, password string) (*board.Post, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	title, content, password, err := validatePostFields(title, content, password)
	if err != nil {
		metrics.WritesRejected.WithLabelValues("update_post", "validation").Inc()
		return nil, err
	}
	if s.filter.Contains(title + " " + content) {
		metrics.WritesRejected.WithLabelValues("update_post", "filter").Inc()
		return nil, board.ErrForbiddenContent
	}

	digest, err := s.repo.PostDigest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !credentials.Verify(password, s.opts.PasswordPepper, digest) {
		metrics.WritesRejected.WithLabelValues("update_post", "password").Inc()
		return nil, board.ErrWrongPassword
	}

	if err := s.repo.UpdatePost(ctx, id, title, content, now()); err != nil {
		return nil, err
	}
	metrics.WritesAccepted.WithLabelValues("update_post").Inc()
	return s.repo.GetPostWithComments(ctx, id)
}

// DeletePost verifies ownership and removes the post together with its
// comments.
func (s *Service) DeletePost(ctx context.Context, id, password string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	password, ok := board.ValidateText(password, board.MaxPassword)
	if !ok {
		metrics.WritesRejected.WithLabelValues("delete_post", "validation").Inc()
		return board.ErrPasswordRequired
	}

	digest, err := s.repo.PostDigest(ctx, id)
	if err != nil {
		return err
	}
	if !credentials.Verify(password, s.opts.PasswordPepper, digest) {
		metrics.WritesRejected.WithLabelValues("delete_post", "password").Inc()
		return board.ErrWrongPassword
	}

	if err := s.repo.DeletePostCascade(ctx, id); err != nil {
		return err
	}
	metrics.WritesAccepted.WithLabelValues("delete_post").Inc()
	return nil
}

// CreateComment throttles and stores a comment under an existing post, then
// returns the parent post with its refreshed comment list.
func (s *Service) CreateComment(ctx context.Context, postID, content, password, clientKey string) (*board.Post, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	content, password, err := validateCommentFields(content, password)
	if err != nil {
		metrics.WritesRejected.WithLabelValues("create_comment", "validation").Inc()
		return nil, err
	}
	if s.filter.Contains(content) {
		metrics.WritesRejected.WithLabelValues("create_comment", "filter").Inc()
		return nil, board.ErrForbiddenContent
	}

	granted, err := s.limiter.TryAcquire(ctx, "comment:"+clientKey, s.opts.CommentCooldown)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !granted {
		metrics.WritesRejected.WithLabelValues("create_comment", "rate_limit").Inc()
		return nil, board.ErrRateLimited
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, board.ErrNotFound
	}

	ts := now()
	digest := credentials.Digest(password, s.opts.PasswordPepper)
	if err := s.repo.InsertComment(ctx, uuid.NewString(), postID, content, ts, digest); err != nil {
		return nil, err
	}
	metrics.WritesAccepted.WithLabelValues("create_comment").Inc()
	return s.repo.GetPostWithComments(ctx, postID)
}

// UpdateComment verifies ownership, mutates the comment and returns the
// parent post; callers always re-render from the post's perspective.
func (s *Service) UpdateComment(ctx context.Context, id, content, password string) (*board.Post, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	password, ok := board.ValidateText(password, board.MaxPassword)
	if !ok {
		metrics.WritesRejected.WithLabelValues("update_comment", "validation").Inc()
		return nil, board.ErrPasswordRequired
	}

	postID, digest, err := s.repo.CommentOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !credentials.Verify(password, s.opts.PasswordPepper, digest) {
		metrics.WritesRejected.WithLabelValues("update_comment", "password").Inc()
		return nil, board.ErrWrongPassword
	}

	content, ok = board.ValidateText(content, board.MaxContent)
	if !ok {
		metrics.WritesRejected.WithLabelValues("update_comment", "validation").Inc()
		return nil, board.ErrContentRequired
	}
	if s.filter.Contains(content) {
		metrics.WritesRejected.WithLabelValues("update_comment", "filter").Inc()
		return nil, board.ErrForbiddenContent
	}

	if err := s.repo.UpdateComment(ctx, id, content, now()); err != nil {
		return nil, err
	}
	metrics.WritesAccepted.WithLabelValues("update_comment").Inc()
	return s.repo.GetPostWithComments(ctx, postID)
}

// DeleteComment verifies ownership, removes the comment and returns the
// parent post with the remaining comments.
func (s *Service) DeleteComment(ctx context.Context, id, password string) (*board.Post, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	password, ok := board.ValidateText(password, board.MaxPassword)
	if !ok {
		metrics.WritesRejected.WithLabelValues("delete_comment", "validation").Inc()
		return nil, board.ErrPasswordRequired
	}

	postID, digest, err := s.repo.CommentOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !credentials.Verify(password, s.opts.PasswordPepper, digest) {
		metrics.WritesRejected.WithLabelValues("delete_comment", "password").Inc()
		return nil, board.ErrWrongPassword
	}

	if err := s.repo.DeleteComment(ctx, id); err != nil {
		return nil, err
	}
	metrics.WritesAccepted.WithLabelValues("delete_comment").Inc()
	return s.repo.GetPostWithComments(ctx, postID)
}

// RecordInterest increments the counter row for a known ad category.
func (s *Service) RecordInterest(ctx context.Context, category string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	if !board.ValidInterestCategory(category) {
		return fmt.Errorf("%w: category", board.ErrInvalidInput)
	}
	return s.repo.IncrementInterest(ctx, category, now())
}

func validatePostFields(title, content, password string) (string, string, string, error) {
	title, ok := board.ValidateText(title, board.MaxTitle)
	if !ok {
		return "", "", "", fmt.Errorf("%w: title", board.ErrInvalidInput)
	}
	content, ok = board.ValidateText(content, board.MaxContent)
	if !ok {
		return "", "", "", fmt.Errorf("%w: content", board.ErrInvalidInput)
	}
	password, err := validatePassword(password)
	if err != nil {
		return "", "", "", err
	}
	return title, content, password, nil
}

func validateCommentFields(content, password string) (string, string, error) {
	content, ok := board.ValidateText(content, board.MaxContent)
	if !ok {
		return "", "", fmt.Errorf("%w: content", board.ErrInvalidInput)
	}
	password, err := validatePassword(password)
	if err != nil {
		return "", "", err
	}
	return content, password, nil
}

func validatePassword(password string) (string, error) {
	password, ok := board.ValidateText(password, board.MaxPassword)
	if !ok || utf8.RuneCountInString(password) < board.MinPassword {
		return "", fmt.Errorf("%w: password", board.ErrInvalidInput)
	}
	return password, nil
}
