package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"social-feed-backend/config"
	"social-feed-backend/internal/api/post"
	"social-feed-backend/internal/common"
	"social-feed-backend/internal/middleware"
	"social-feed-backend/internal/repository/mysql"
	"social-feed-backend/internal/service"
	"social-feed-backend/internal/storage"
	"social-feed-backend/internal/util"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串，时间统一使用 UTC
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 数据库可能比服务启动得晚，启动时重试
	pingCtx, cancelPing := context.WithTimeout(context.Background(), time.Minute)
	err = common.WithRetry(pingCtx, db.PingContext, 5)
	cancelPing()
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	if err := mysql.Migrate(db); err != nil {
		util.Logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	util.Logger.Info("数据库迁移完成")

	// 注册自定义验证器
	util.RegisterValidators()

	mediaStore, closeStore := newMediaStore()
	defer closeStore()

	// 初始化存储库、服务和处理器
	postRepo := mysql.NewPostRepository(db)
	engagementRepo := mysql.NewEngagementRepository(db)
	postService := service.NewPostService(postRepo, mediaStore)
	engagementService := service.NewEngagementService(engagementRepo, postRepo)
	postHandler := post.NewPostHandler(postService, int64(config.AppConfig.MaxUploadMB)<<20)
	engagementHandler := post.NewEngagementHandler(engagementService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))
	r.MaxMultipartMemory = int64(config.AppConfig.MaxUploadMB) << 20

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	if config.AppConfig.StorageDriver == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	post.RegisterRoutes(api, postHandler, engagementHandler)

	if config.AppConfig.Debug {
		for _, route := range r.Routes() {
			util.Logger.Debug("路由", zap.String("method", route.Method), zap.String("path", route.Path))
		}
	}

	addr := ":" + strings.TrimPrefix(config.AppConfig.ServerPort, ":")
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Error("服务器强制关闭", zap.Error(err))
	}

	for code, count := range errorMonitor.GetErrorCounts() {
		util.Logger.Info("错误统计", zap.Int("error_code", int(code)), zap.Int("count", count))
	}
	util.Logger.Info("服务器已优雅关闭")
}

// newMediaStore 按配置选择媒体存储驱动
func newMediaStore() (storage.MediaStore, func()) {
	cfg := config.AppConfig
	switch cfg.StorageDriver {
	case "s3":
		client, err := storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化 S3 客户端失败", zap.Error(err))
		}
		util.Logger.Info("使用 S3 存储", zap.String("bucket", cfg.S3Bucket), zap.String("region", cfg.S3Region))
		return client, func() {}
	case "gcs":
		client, err := storage.NewGCSClient(context.Background(), cfg.GCSBucketName, cfg.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化 GCS 客户端失败", zap.Error(err))
		}
		util.Logger.Info("使用 GCS 存储", zap.String("bucket", cfg.GCSBucketName), zap.String("project", cfg.GCSProjectID))
		return client, func() {
			if err := client.Close(); err != nil {
				util.Logger.Warn("关闭 GCS 客户端失败", zap.Error(err))
			}
		}
	default:
		local, err := storage.NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		util.Logger.Info("使用本地存储", zap.String("path", cfg.LocalStoragePath))
		return local, func() {}
	}
}
