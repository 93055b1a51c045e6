package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/repository"
	"k8s.io/klog/v2"
)

type AssetHandler struct {
	assets repository.BlogAssetRepository
}

func NewAssetHandler(assets repository.BlogAssetRepository) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// Serve GET /api/blog/:blogId/:filename
// 博客正文里的图片走这个稳定地址，302 跳转到对象存储。
// 图片内容按文件名不变，允许长缓存。
func (h *AssetHandler) Serve(c *gin.Context) {
	blogID, ok := idParam(c, "blogId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	filename := c.Param("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件名不能为空"})
		return
	}

	asset, err := h.assets.FindByOwnerAndFilename(blogID, filename)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "图片不存在"})
			return
		}
		klog.Errorf("查询博客图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询图片失败"})
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Redirect(http.StatusFound, asset.BlobURL)
}

// List GET /api/blogs/:id/assets 管理端查看博客的图片映射
func (h *AssetHandler) List(c *gin.Context) {
	blogID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "博客 ID 不合法"})
		return
	}
	assets, err := h.assets.ListByOwner(blogID)
	if err != nil {
		klog.Errorf("查询博客图片失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询图片失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}
