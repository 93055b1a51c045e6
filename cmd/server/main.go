package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/homesite/backend/config"
	"github.com/homesite/backend/internal/embed"
	"github.com/homesite/backend/internal/eventbus"
	"github.com/homesite/backend/internal/handler"
	"github.com/homesite/backend/internal/pkg/blob"
	"github.com/homesite/backend/internal/pkg/database"
	"github.com/homesite/backend/internal/pkg/token"
	"github.com/homesite/backend/internal/repository"
	"github.com/homesite/backend/internal/router"
	"github.com/homesite/backend/internal/service"
	"github.com/homesite/backend/internal/service/mdimport"
	"github.com/homesite/backend/internal/service/search"
	"github.com/homesite/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET 未配置")
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化对象存储
	blobs, err := blob.NewMinioStore(blob.MinioConfig{
		Endpoint:  cfg.Blob.Endpoint,
		Bucket:    cfg.Blob.Bucket,
		AccessKey: cfg.Blob.AccessKey,
		SecretKey: cfg.Blob.SecretKey,
		UseSSL:    cfg.Blob.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	assetRepo := repository.NewBlogAssetRepository(db)
	blogLikeRepo := repository.NewBlogLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	commentLikeRepo := repository.NewCommentLikeRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	linkRepo := repository.NewFriendLinkRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	// 访问事件总线与落库订阅
	visitBus := eventbus.NewVisitEventBus()
	subscriber.NewVisitRecorder(visitRepo).Register(visitBus)

	// 初始化 Service
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	publisher := mdimport.NewAssetPublisher(assetRepo, blobs)
	authService := service.NewAuthService(userRepo, tokens)
	blogService := service.NewBlogService(blogRepo, blogLikeRepo)
	importService := mdimport.NewService(blogRepo, publisher)
	commentService := service.NewCommentService(commentRepo, commentLikeRepo, blogRepo)
	galleryService := service.NewGalleryService(galleryRepo, blobs)
	linkService := service.NewFriendLinkService(linkRepo)
	docService := service.NewDocumentService(docRepo, blobs)
	searchService := search.NewService(blogRepo, docRepo)
	statsService := service.NewStatsService(blogRepo, commentRepo, docRepo, galleryRepo, visitRepo)

	// 设置路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.Setup(r, router.Deps{
		Tokens:     tokens,
		VisitBus:   visitBus,
		Auth:       handler.NewAuthHandler(authService),
		Blog:       handler.NewBlogHandler(blogService),
		BlogImport: handler.NewBlogImportHandler(importService),
		Asset:      handler.NewAssetHandler(assetRepo),
		Upload:     handler.NewUploadHandler(publisher),
		Comment:    handler.NewCommentHandler(commentService),
		Gallery:    handler.NewGalleryHandler(galleryService),
		FriendLink: handler.NewFriendLinkHandler(linkService),
		Document:   handler.NewDocumentHandler(docService),
		Search:     handler.NewSearchHandler(searchService),
		Stats:      handler.NewStatsHandler(statsService),
	})

	// 嵌入式前端
	embed.SetupRouter(r)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
