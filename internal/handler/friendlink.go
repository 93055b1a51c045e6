package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service"
	"k8s.io/klog/v2"
)

type FriendLinkHandler struct {
	links *service.FriendLinkService
}

func NewFriendLinkHandler(links *service.FriendLinkService) *FriendLinkHandler {
	return &FriendLinkHandler{links: links}
}

// List GET /api/friend-links
func (h *FriendLinkHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 20, 100)
	links, total, err := h.links.List(c.Query("category"), page, pageSize)
	if err != nil {
		klog.Errorf("查询友链失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询友链失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links, "total": total, "page": page, "page_size": pageSize})
}

// ListAll GET /api/friend-links/admin
func (h *FriendLinkHandler) ListAll(c *gin.Context) {
	page, pageSize := pageParams(c, 20, 100)
	links, total, err := h.links.ListAll(c.Query("category"), page, pageSize)
	if err != nil {
		klog.Errorf("查询友链失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询友链失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links, "total": total, "page": page, "page_size": pageSize})
}

// Apply POST /api/friend-links
func (h *FriendLinkHandler) Apply(c *gin.Context) {
	var req service.FriendLinkApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}

	link, err := h.links.Apply(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLink):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrLinkExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			klog.Errorf("申请友链失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "申请友链失败"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"link": link, "message": "申请已提交，等待审核"})
}

// Approve POST /api/friend-links/:id/approve
func (h *FriendLinkHandler) Approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "友链 ID 不合法"})
		return
	}
	link, err := h.links.Approve(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "友链不存在"})
			return
		}
		klog.Errorf("审核友链失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "审核友链失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}

type friendLinkForm struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Avatar      *string `json:"avatar"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	IsActive    *bool   `json:"is_active"`
}

// Update PUT /api/friend-links/:id
func (h *FriendLinkHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "友链 ID 不合法"})
		return
	}
	var form friendLinkForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}

	link, err := h.links.Update(id, service.FriendLinkUpdate{
		Name:        form.Name,
		URL:         form.URL,
		Avatar:      form.Avatar,
		Description: form.Description,
		Category:    form.Category,
		Status:      form.Status,
		IsActive:    form.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "友链不存在"})
		case errors.Is(err, service.ErrInvalidLink):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			klog.Errorf("更新友链失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新友链失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}

// Delete DELETE /api/friend-links/:id
func (h *FriendLinkHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "友链 ID 不合法"})
		return
	}
	if err := h.links.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "友链不存在"})
			return
		}
		klog.Errorf("删除友链失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除友链失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// Visit GET /api/friend-links/:id/visit 计数后跳转
func (h *FriendLinkHandler) Visit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "友链 ID 不合法"})
		return
	}
	url, err := h.links.Visit(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "友链不存在"})
			return
		}
		klog.Errorf("访问友链失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "访问友链失败"})
		return
	}
	c.Redirect(http.StatusFound, url)
}
