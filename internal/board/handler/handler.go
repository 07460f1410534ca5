// Package handler exposes the board service as the JSON API consumed by the
// static frontend. Error bodies are always {"message": ...} with the
// user-facing strings the frontend expects.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wonhyungLee/tax-board/internal/board"
	"github.com/wonhyungLee/tax-board/internal/board/service"
	"github.com/wonhyungLee/tax-board/internal/credentials"
	"github.com/wonhyungLee/tax-board/internal/schema"
	"github.com/wonhyungLee/tax-board/pkg/logger"
)

const (
	msgBadRequest      = "잘못된 요청입니다."
	msgCheckPostFields = "제목, 내용, 비밀번호를 확인해 주세요."
	msgCheckComment    = "댓글 내용과 비밀번호를 확인해 주세요."
	msgNeedPassword    = "비밀번호를 입력해 주세요."
	msgNeedContent     = "댓글 내용을 입력해 주세요."
	msgForbiddenCreate = "금칙어가 포함되어 등록할 수 없습니다."
	msgForbiddenEdit   = "금칙어가 포함되어 수정할 수 없습니다."
	msgTooFast         = "너무 빠른 등록입니다. 잠시 후 다시 시도해 주세요."
	msgPostNotFound    = "게시글을 찾을 수 없습니다."
	msgCommentNotFound = "댓글을 찾을 수 없습니다."
	msgWrongPassword   = "비밀번호가 일치하지 않습니다."
	msgBadCategory     = "잘못된 카테고리입니다."
	msgSchemaOutdated  = "게시판 DB 스키마가 최신이 아닙니다. schema.sql을 다시 적용해 주세요."
	msgReadOnlyDB      = "DB가 읽기 전용입니다. 데이터베이스를 읽기/쓰기 모드로 바꿔 주세요."
	msgStoreFailure    = "DB 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
	msgServerError     = "서버 오류가 발생했습니다."
)

// Options carries handler-level deployment settings.
type Options struct {
	// IPPepper is mixed into the hashed client identity used for throttling.
	IPPepper string
	// DebugErrors allows ?debug=1 to reveal raw store errors in responses.
	DebugErrors bool
}

type Handler struct {
	svc  *service.Service
	opts Options
}

// RegisterBoardRoutes mounts the board API on r.
func RegisterBoardRoutes(r *gin.Engine, svc *service.Service, opts Options) {
	h := &Handler{svc: svc, opts: opts}

	r.GET("/api/posts", h.listPosts)
	r.POST("/api/posts", h.createPost)
	r.GET("/api/posts/:id", h.getPost)
	r.PUT("/api/posts/:id", h.updatePost)
	r.DELETE("/api/posts/:id", h.deletePost)
	r.POST("/api/posts/:id/comments", h.createComment)
	r.PUT("/api/comments/:id", h.updateComment)
	r.DELETE("/api/comments/:id", h.deleteComment)
	r.POST("/api/ad-interest", h.recordInterest)
}

// clientKey derives the hashed client identity from the forwarded-address
// header chain. The raw address never leaves this function.
func (h *Handler) clientKey(c *gin.Context) string {
	raw := c.GetHeader("CF-Connecting-IP")
	if raw == "" {
		raw = c.GetHeader("X-Forwarded-For")
	}
	if raw == "" {
		raw = c.GetHeader("X-Real-IP")
	}
	if raw == "" {
		raw = "unknown"
	}
	ip := strings.TrimSpace(strings.SplitN(raw, ",", 2)[0])
	return credentials.Digest(ip, h.opts.IPPepper)
}

func (h *Handler) listPosts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	list, err := h.svc.ListPosts(c.Request.Context(), offset, limit)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.svc.GetPost(c.Request.Context(), c.Param("id"))
	if errors.Is(err, board.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgPostNotFound})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) createPost(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), req.Title, req.Content, req.Password, h.clientKey(c))
	if err != nil {
		switch {
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgCheckPostFields})
		case errors.Is(err, board.ErrForbiddenContent):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgForbiddenCreate})
		case errors.Is(err, board.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": msgTooFast})
		default:
			h.serverError(c, err)
		}
		return
	}
	// The created post has no comments yet, so the response carries only the
	// scalar fields.
	c.JSON(http.StatusCreated, gin.H{"post": gin.H{
		"id":           post.ID,
		"title":        post.Title,
		"content":      post.Content,
		"createdAt":    post.CreatedAt,
		"updatedAt":    post.UpdatedAt,
		"commentCount": post.CommentCount,
	}})
}

func (h *Handler) updatePost(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), c.Param("id"), req.Title, req.Content, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgCheckPostFields})
		case errors.Is(err, board.ErrForbiddenContent):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgForbiddenEdit})
		case errors.Is(err, board.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgPostNotFound})
		case errors.Is(err, board.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"message": msgWrongPassword})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) deletePost(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	err := h.svc.DeletePost(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNeedPassword})
		case errors.Is(err, board.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgPostNotFound})
		case errors.Is(err, board.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"message": msgWrongPassword})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) createComment(c *gin.Context) {
	var req struct {
		Content  string `json:"content"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	post, err := h.svc.CreateComment(c.Request.Context(), c.Param("id"), req.Content, req.Password, h.clientKey(c))
	if err != nil {
		switch {
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgCheckComment})
		case errors.Is(err, board.ErrForbiddenContent):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgForbiddenCreate})
		case errors.Is(err, board.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": msgTooFast})
		case errors.Is(err, board.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgPostNotFound})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) updateComment(c *gin.Context) {
	var req struct {
		Content  string `json:"content"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	post, err := h.svc.UpdateComment(c.Request.Context(), c.Param("id"), req.Content, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNeedContent})
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNeedPassword})
		case errors.Is(err, board.ErrForbiddenContent):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgForbiddenEdit})
		case errors.Is(err, board.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgCommentNotFound})
		case errors.Is(err, board.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"message": msgWrongPassword})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) deleteComment(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	post, err := h.svc.DeleteComment(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgNeedPassword})
		case errors.Is(err, board.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgCommentNotFound})
		case errors.Is(err, board.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"message": msgWrongPassword})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) recordInterest(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	if err := h.svc.RecordInterest(c.Request.Context(), req.Category); err != nil {
		if errors.Is(err, board.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgBadCategory})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// serverError translates backing-store failures into the operator-facing
// messages the frontend shows. With DebugErrors enabled, ?debug=1 reveals the
// raw error instead.
func (h *Handler) serverError(c *gin.Context, err error) {
	logger.Errorf("board request failed: %v", err)

	if errors.Is(err, schema.ErrOutdated) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgSchemaOutdated})
		return
	}

	msg := msgServerError
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "read only") || strings.Contains(lower, "readonly"):
		msg = msgReadOnlyDB
	case strings.Contains(lower, "no such table") || strings.Contains(lower, "no such column"):
		msg = msgSchemaOutdated
	case strings.Contains(lower, "sqlite"):
		msg = msgStoreFailure
	}

	if h.opts.DebugErrors && c.Query("debug") == "1" {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}
