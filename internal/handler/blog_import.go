package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/service/mdimport"
	"k8s.io/klog/v2"
)

// 单次导入上传体上限，Markdown 加图片压缩包
const maxImportSize = 64 << 20

type BlogImportHandler struct {
	importer *mdimport.Service
}

func NewBlogImportHandler(importer *mdimport.Service) *BlogImportHandler {
	return &BlogImportHandler{importer: importer}
}

// Import POST /api/blogs/import
// multipart 表单：files 为 Markdown 文件加图片（或含图片的 zip 包），
// 其余字段覆盖 front matter 的同名元数据。blog_id 非空时为编辑模式。
func (h *BlogImportHandler) Import(c *gin.Context) {
	if c.Request.ContentLength > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "上传内容过大"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求不是合法的 multipart 表单"})
		return
	}

	var files []mdimport.UploadedFile
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
			return
		}
		files = append(files, mdimport.UploadedFile{Name: fh.Filename, Content: content})
	}

	userID, role := middleware.CurrentUser(c)
	req := mdimport.ImportRequest{
		Files:    files,
		Title:    c.PostForm("title"),
		Excerpt:  c.PostForm("excerpt"),
		Category: c.PostForm("category"),
		Tags:     splitTags(c.PostForm("tags")),
		Status:   c.PostForm("status"),
		UserID:   userID,
		Role:     role,
	}
	if raw := c.PostForm("blog_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
			return
		}
		req.BlogID = uint(id)
	}

	result, err := h.importer.Import(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, mdimport.ErrMissingMarkdown):
			c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 Markdown 文件"})
		case errors.Is(err, mdimport.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "无权编辑该博客"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "博客不存在"})
		default:
			klog.Errorf("导入博客失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "导入博客失败"})
		}
		return
	}

	status := http.StatusCreated
	if req.BlogID > 0 {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"blog":     result.Blog,
		"warnings": result.Warnings,
	})
}
