package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service"
	"k8s.io/klog/v2"
)

type BlogHandler struct {
	blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// List GET /api/blogs
func (h *BlogHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 10, 50)
	q := repository.BlogListQuery{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}

	blogs, total, err := h.blogs.List(q)
	if err != nil {
		klog.Errorf("查询博客列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询博客列表失败"})
		return
	}
	// 列表不下发正文，详情页再取
	for i := range blogs {
		blogs[i].Content = ""
	}
	c.JSON(http.StatusOK, gin.H{
		"blogs":       blogs,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ListAll GET /api/blogs/admin 管理端列表，含草稿
func (h *BlogHandler) ListAll(c *gin.Context) {
	page, pageSize := pageParams(c, 10, 100)
	q := repository.BlogListQuery{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		q.Statuses = []string{status}
	}

	blogs, total, err := h.blogs.ListAll(q)
	if err != nil {
		klog.Errorf("查询博客列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询博客列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"blogs":     blogs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get GET /api/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	userID, role := middleware.CurrentUser(c)

	blog, err := h.blogs.Get(id, userID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "博客不存在"})
			return
		}
		klog.Errorf("查询博客失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询博客失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

type blogForm struct {
	Title          *string   `json:"title"`
	Excerpt        *string   `json:"excerpt"`
	Category       *string   `json:"category"`
	Content        *string   `json:"content"`
	Tags           *[]string `json:"tags"`
	CoverImage     *string   `json:"cover_image"`
	Status         *string   `json:"status"`
	PinnedPriority *int      `json:"pinned_priority"`
}

// Create POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var form blogForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}
	if form.Title == nil || *form.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "标题不能为空"})
		return
	}
	userID, _ := middleware.CurrentUser(c)

	blog := &model.Blog{
		Title:    *form.Title,
		AuthorID: userID,
	}
	if form.Excerpt != nil {
		blog.Excerpt = *form.Excerpt
	}
	if form.Category != nil {
		blog.Category = *form.Category
	}
	if form.Content != nil {
		blog.Content = *form.Content
	}
	if form.Tags != nil {
		blog.Tags = *form.Tags
	}
	if form.CoverImage != nil {
		blog.CoverImage = *form.CoverImage
	}
	if form.Status != nil {
		blog.Status = *form.Status
	}
	if form.PinnedPriority != nil {
		blog.PinnedPriority = *form.PinnedPriority
	}

	if err := h.blogs.Create(blog); err != nil {
		klog.Errorf("创建博客失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建博客失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blog": blog})
}

// Update PUT /api/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	var form blogForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}
	userID, role := middleware.CurrentUser(c)

	blog, err := h.blogs.Update(id, userID, role, service.BlogUpdate{
		Title:          form.Title,
		Excerpt:        form.Excerpt,
		Category:       form.Category,
		Content:        form.Content,
		Tags:           form.Tags,
		CoverImage:     form.CoverImage,
		Status:         form.Status,
		PinnedPriority: form.PinnedPriority,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "博客不存在"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "无权编辑该博客"})
		default:
			klog.Errorf("更新博客失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新博客失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// Delete DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	userID, role := middleware.CurrentUser(c)

	if err := h.blogs.Delete(id, userID, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "博客不存在"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "无权删除该博客"})
		default:
			klog.Errorf("删除博客失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "删除博客失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ToggleLike POST /api/blogs/:id/like
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	userID, _ := middleware.CurrentUser(c)

	liked, likeCount, err := h.blogs.ToggleLike(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "博客不存在"})
			return
		}
		klog.Errorf("点赞失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "点赞失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": likeCount})
}

// Categories GET /api/blogs/categories
func (h *BlogHandler) Categories(c *gin.Context) {
	categories, err := h.blogs.Categories()
	if err != nil {
		klog.Errorf("查询博客分类失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询分类失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
