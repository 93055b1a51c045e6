package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/model"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service"
	"github.com/homesite/backend/internal/service/mdimport"
	"k8s.io/klog/v2"
)

const maxGalleryImageSize = 32 << 20

type GalleryHandler struct {
	gallery *service.GalleryService
}

func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

func isAdmin(c *gin.Context) bool {
	_, role := middleware.CurrentUser(c)
	return role == "admin"
}

// Upload POST /api/gallery multipart 表单，image 为图片文件
func (h *GalleryHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少图片文件"})
		return
	}
	if fh.Size > maxGalleryImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "图片过大"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取图片失败"})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取图片失败"})
		return
	}

	req := service.GalleryUploadRequest{
		Filename:    fh.Filename,
		Content:     content,
		ContentType: mdimport.ContentTypeByName(fh.Filename),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        splitTags(c.PostForm("tags")),
		Status:      c.PostForm("status"),
		IsPublic:    c.DefaultPostForm("is_public", "true") == "true",
		Exif: model.GalleryExif{
			Camera:       c.PostForm("camera"),
			Lens:         c.PostForm("lens"),
			Aperture:     c.PostForm("aperture"),
			ShutterSpeed: c.PostForm("shutter_speed"),
			ISO:          c.PostForm("iso"),
			FocalLength:  c.PostForm("focal_length"),
			Location:     c.PostForm("location"),
		},
	}
	if raw := c.PostForm("date"); raw != "" {
		if date, err := time.Parse("2006-01-02", raw); err == nil {
			req.Date = date
		}
	}

	img, err := h.gallery.Upload(c.Request.Context(), req)
	if err != nil {
		klog.Errorf("上传相册图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传图片失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image": img})
}

// List GET /api/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 12, 100)
	q := repository.GalleryListQuery{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}

	images, total, err := h.gallery.List(q, isAdmin(c))
	if err != nil {
		klog.Errorf("查询相册失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询相册失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"images":    images,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get GET /api/gallery/:id
func (h *GalleryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "图片 ID 不合法"})
		return
	}
	img, err := h.gallery.Get(id, isAdmin(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "图片不存在"})
			return
		}
		klog.Errorf("查询图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询图片失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": img})
}

type galleryForm struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	Tags        *[]string          `json:"tags"`
	Status      *string            `json:"status"`
	IsPublic    *bool              `json:"is_public"`
	Exif        *model.GalleryExif `json:"exif"`
}

// Update PUT /api/gallery/:id
func (h *GalleryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "图片 ID 不合法"})
		return
	}
	var form galleryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不合法"})
		return
	}

	img, err := h.gallery.Update(id, service.GalleryUpdate{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Tags:        form.Tags,
		Status:      form.Status,
		IsPublic:    form.IsPublic,
		Exif:        form.Exif,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "图片不存在"})
			return
		}
		klog.Errorf("更新图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新图片失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": img})
}

// Delete DELETE /api/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "图片 ID 不合法"})
		return
	}
	if err := h.gallery.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "图片不存在"})
			return
		}
		klog.Errorf("删除图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除图片失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// Categories GET /api/gallery/categories
func (h *GalleryHandler) Categories(c *gin.Context) {
	categories, err := h.gallery.Categories()
	if err != nil {
		klog.Errorf("查询相册分类失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询分类失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Tags GET /api/gallery/tags
func (h *GalleryHandler) Tags(c *gin.Context) {
	tags, err := h.gallery.Tags()
	if err != nil {
		klog.Errorf("查询相册标签失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询标签失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
