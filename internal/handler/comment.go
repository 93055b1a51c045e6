package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service"
	"k8s.io/klog/v2"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req service.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}
	userID, _ := middleware.CurrentUser(c)

	comment, err := h.comments.Create(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "父评论不存在"})
		default:
			klog.Errorf("发表评论失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "发表评论失败"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// List GET /api/comments?target_type=Blog&target_id=1
func (h *CommentHandler) List(c *gin.Context) {
	targetType := c.DefaultQuery("target_type", "General")
	var targetID uint
	if raw := c.Query("target_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "评论目标 ID 不合法"})
			return
		}
		targetID = uint(id)
	}

	page, pageSize := pageParams(c, 20, 100)
	userID, role := middleware.CurrentUser(c)

	comments, total, err := h.comments.List(targetType, targetID, userID, role, page, pageSize)
	if err != nil {
		klog.Errorf("查询评论失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询评论失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments":  comments,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "评论 ID 不合法"})
		return
	}
	userID, role := middleware.CurrentUser(c)

	if err := h.comments.Delete(id, userID, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "评论不存在"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "无权删除该评论"})
		default:
			klog.Errorf("删除评论失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "删除评论失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ToggleLike POST /api/comments/:id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "评论 ID 不合法"})
		return
	}
	userID, _ := middleware.CurrentUser(c)

	liked, likeCount, err := h.comments.ToggleLike(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "评论不存在"})
			return
		}
		klog.Errorf("评论点赞失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "点赞失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": likeCount})
}
