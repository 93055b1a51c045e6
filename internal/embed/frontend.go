package embed

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

//go:embed ui/dist/*
var embeddedFiles embed.FS

// SetupRouter 挂载嵌入的前端静态文件，非 API 路径统一回落到 index.html（SPA 路由）
func SetupRouter(r *gin.Engine) {
	r.Use(gzip.Gzip(gzip.BestCompression))

	if assetsFS, err := fs.Sub(embeddedFiles, "ui/dist/assets"); err == nil {
		r.GET("/assets/*filepath", gin.WrapH(http.StripPrefix("/assets", http.FileServer(http.FS(assetsFS)))))
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		favicon, err := fs.ReadFile(embeddedFiles, "ui/dist/favicon.ico")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/x-icon", favicon)
	})

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		indexHTML, err := fs.ReadFile(embeddedFiles, "ui/dist/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load index.html")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
}
