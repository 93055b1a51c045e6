package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/service/mdimport"
	"k8s.io/klog/v2"
)

const maxUploadImageSize = 16 << 20

// UploadHandler 博客编辑器的图片直传，复用导入管线的发布逻辑，
// 返回与导入重写一致的稳定地址。
type UploadHandler struct {
	publisher mdimport.Publisher
}

func NewUploadHandler(publisher mdimport.Publisher) *UploadHandler {
	return &UploadHandler{publisher: publisher}
}

// Upload POST /api/blogs/:id/assets multipart 表单，image 为图片文件
func (h *UploadHandler) Upload(c *gin.Context) {
	blogID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少图片文件"})
		return
	}
	if fh.Size > maxUploadImageSize {
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

	title := c.DefaultPostForm("title", fh.Filename)
	url, err := h.publisher.Publish(c.Request.Context(), blogID, fh.Filename, title, content)
	if err != nil {
		klog.Errorf("上传博客图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传图片失败"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
