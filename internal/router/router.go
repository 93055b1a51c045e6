package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/eventbus"
	"github.com/homesite/backend/internal/handler"
	"github.com/homesite/backend/internal/middleware"
	"github.com/homesite/backend/internal/pkg/token"
)

// Deps 路由依赖的全部处理器
type Deps struct {
	Tokens   *token.Manager
	VisitBus *eventbus.VisitEventBus

	Auth       *handler.AuthHandler
	Blog       *handler.BlogHandler
	BlogImport *handler.BlogImportHandler
	Asset      *handler.AssetHandler
	Upload     *handler.UploadHandler
	Comment    *handler.CommentHandler
	Gallery    *handler.GalleryHandler
	FriendLink *handler.FriendLinkHandler
	Document   *handler.DocumentHandler
	Search     *handler.SearchHandler
	Stats      *handler.StatsHandler
}

// Setup 注册全部 API 路由
func Setup(r *gin.Engine, d Deps) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	r.Use(middleware.Visit(d.VisitBus))

	login := middleware.Auth(d.Tokens)
	guest := middleware.OptionalAuth(d.Tokens)
	admin := middleware.RequireRole("admin")

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/me", login, d.Auth.Me)
	}

	blogs := r.Group("/api/blogs")
	{
		blogs.GET("", d.Blog.List)
		blogs.GET("/categories", d.Blog.Categories)
		blogs.GET("/admin", login, admin, d.Blog.ListAll)
		blogs.GET("/:id", guest, d.Blog.Get)
		blogs.POST("", login, admin, d.Blog.Create)
		blogs.PUT("/:id", login, d.Blog.Update)
		blogs.DELETE("/:id", login, d.Blog.Delete)
		blogs.POST("/:id/like", login, d.Blog.ToggleLike)
		blogs.POST("/import", login, admin, d.BlogImport.Import)
		blogs.GET("/:id/assets", login, admin, d.Asset.List)
		blogs.POST("/:id/assets", login, admin, d.Upload.Upload)
	}

	// 博客正文里图片的稳定访问地址
	r.GET("/api/blog/:blogId/:filename", d.Asset.Serve)

	comments := r.Group("/api/comments")
	{
		comments.GET("", guest, d.Comment.List)
		comments.POST("", login, d.Comment.Create)
		comments.DELETE("/:id", login, d.Comment.Delete)
		comments.POST("/:id/like", login, d.Comment.ToggleLike)
	}

	gallery := r.Group("/api/gallery")
	{
		gallery.GET("", guest, d.Gallery.List)
		gallery.GET("/categories", d.Gallery.Categories)
		gallery.GET("/tags", d.Gallery.Tags)
		gallery.GET("/:id", guest, d.Gallery.Get)
		gallery.POST("", login, admin, d.Gallery.Upload)
		gallery.PUT("/:id", login, admin, d.Gallery.Update)
		gallery.DELETE("/:id", login, admin, d.Gallery.Delete)
	}

	links := r.Group("/api/friend-links")
	{
		links.GET("", d.FriendLink.List)
		links.GET("/admin", login, admin, d.FriendLink.ListAll)
		links.POST("", d.FriendLink.Apply)
		links.GET("/:id/visit", d.FriendLink.Visit)
		links.POST("/:id/approve", login, admin, d.FriendLink.Approve)
		links.PUT("/:id", login, admin, d.FriendLink.Update)
		links.DELETE("/:id", login, admin, d.FriendLink.Delete)
	}

	docs := r.Group("/api/documents")
	{
		docs.GET("", guest, d.Document.List)
		docs.GET("/:id", guest, d.Document.Get)
		docs.GET("/:id/download", guest, d.Document.Download)
		docs.POST("", login, admin, d.Document.Upload)
		docs.PUT("/:id", login, admin, d.Document.Update)
		docs.DELETE("/:id", login, admin, d.Document.Delete)
	}

	r.GET("/api/search", guest, d.Search.Search)
	r.GET("/api/stats/summary", d.Stats.Summary)
}
