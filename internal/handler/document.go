package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service"
	"k8s.io/klog/v2"
)

const maxDocumentSize = 64 << 20

type DocumentHandler struct {
	docs *service.DocumentService
}

func NewDocumentHandler(docs *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// Upload POST /api/documents multipart 表单，file 为文档文件
func (h *DocumentHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少文档文件"})
		return
	}
	if fh.Size > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "文档过大"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取文档失败"})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取文档失败"})
		return
	}

	doc, err := h.docs.Upload(c.Request.Context(), service.DocumentUploadRequest{
		Filename:    fh.Filename,
		Content:     content,
		ContentType: fh.Header.Get("Content-Type"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        splitTags(c.PostForm("tags")),
		Status:      c.PostForm("status"),
		IsPublic:    c.DefaultPostForm("is_public", "true") == "true",
	})
	if err != nil {
		klog.Errorf("上传文档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传文档失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// List GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 10, 100)
	q := repository.DocumentListQuery{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Type:     c.Query("type"),
	}

	docs, total, err := h.docs.List(q, isAdmin(c))
	if err != nil {
		klog.Errorf("查询文档列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询文档列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文档 ID 不合法"})
		return
	}
	doc, err := h.docs.Get(id, isAdmin(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文档不存在"})
			return
		}
		klog.Errorf("查询文档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询文档失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Download GET /api/documents/:id/download 计数后跳转到文件地址
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文档 ID 不合法"})
		return
	}
	url, err := h.docs.Download(id, isAdmin(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文档不存在"})
			return
		}
		klog.Errorf("下载文档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "下载文档失败"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

type documentForm struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Category       *string   `json:"category"`
	Tags           *[]string `json:"tags"`
	Status         *string   `json:"status"`
	IsPublic       *bool     `json:"is_public"`
	PinnedPriority *int      `json:"pinned_priority"`
}

// Update PUT /api/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文档 ID 不合法"})
		return
	}
	var form documentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}

	doc, err := h.docs.Update(id, service.DocumentUpdate{
		Title:          form.Title,
		Description:    form.Description,
		Category:       form.Category,
		Tags:           form.Tags,
		Status:         form.Status,
		IsPublic:       form.IsPublic,
		PinnedPriority: form.PinnedPriority,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文档不存在"})
			return
		}
		klog.Errorf("更新文档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新文档失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Delete DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文档 ID 不合法"})
		return
	}
	if err := h.docs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文档不存在"})
			return
		}
		klog.Errorf("删除文档失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除文档失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
