package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campus-events-hub/portal-api/api/swagger"
	"github.com/campus-events-hub/portal-api/internal/handler"
	"github.com/campus-events-hub/portal-api/internal/middleware"
	"github.com/campus-events-hub/portal-api/internal/repository"
	"github.com/campus-events-hub/portal-api/internal/service"
	"github.com/campus-events-hub/portal-api/pkg/cache"
	"github.com/campus-events-hub/portal-api/pkg/config"
	"github.com/campus-events-hub/portal-api/pkg/database"
	"github.com/campus-events-hub/portal-api/pkg/export"
	"github.com/campus-events-hub/portal-api/pkg/logger"
	corsmiddleware "github.com/campus-events-hub/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-events-hub/portal-api/pkg/middleware/requestid"
	"github.com/campus-events-hub/portal-api/pkg/storage"
)

// @title Campus Events Hub API
// @version 1.0.0
// @description Public events portal and admin console backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	uploads, err := storage.NewLocalBucketStorage(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL)
	if err != nil {
		logr.Sugar().Fatalw("uploads directory unavailable", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Feed.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, feed caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Feed.CacheTTL, logr, true)
		}
	}

	eventRepo := repository.NewEventRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	winnerRepo := repository.NewWinnerRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	feedSvc := service.NewFeedService(eventRepo, announcementRepo, winnerRepo, cacheSvc, cfg.Feed.CacheTTL, cfg.Feed.TickerInterval, logr)
	eventSvc := service.NewEventService(eventRepo, feedSvc, nil, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, feedSvc, nil, logr)
	winnerSvc := service.NewWinnerService(winnerRepo, feedSvc, cfg.Uploads.DefaultWinnerURL, nil, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, metricsSvc, nil, logr)
	exportSvc := service.NewExportService(
		registrationRepo,
		eventRepo,
		export.NewXLSXExporter(cfg.Exports.SheetName),
		export.NewCSVExporter(),
		export.NewPDFExporter(),
		logr,
	)
	authSvc := service.NewAuthService(adminRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "campus-events-hub",
	})
	adminUserSvc := service.NewAdminUserService(adminRepo, nil, logr)
	uploadSvc := service.NewUploadService(uploads, cfg.Uploads.MaxFileSizeBytes, logr)

	feedHandler := handler.NewFeedHandler(feedSvc, registrationSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	winnerHandler := handler.NewWinnerHandler(winnerSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, eventSvc, exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	adminUserHandler := handler.NewAdminUserHandler(adminUserSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	r.Static("/uploads", uploads.Root())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/feed", feedHandler.Feed)
		api.GET("/feed/ticker", feedHandler.Ticker)
		api.GET("/events/:id", feedHandler.Detail)
		api.POST("/events/:id/register", feedHandler.Register)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		guarded := api.Group("")
		guarded.Use(middleware.JWT(authSvc))
		{
			guarded.POST("/auth/logout", authHandler.Logout)
			guarded.PUT("/auth/password", authHandler.ChangePassword)

			admin := guarded.Group("/admin")
			{
				admin.GET("/events", eventHandler.List)
				admin.GET("/events/titles", eventHandler.Titles)
				admin.GET("/events/:id", eventHandler.Get)
				admin.POST("/events", eventHandler.Create)
				admin.PUT("/events/:id", eventHandler.Update)
				admin.DELETE("/events/:id", eventHandler.Delete)

				admin.GET("/announcements", announcementHandler.List)
				admin.POST("/announcements", announcementHandler.Create)
				admin.PUT("/announcements/:id", announcementHandler.Update)
				admin.DELETE("/announcements/:id", announcementHandler.Delete)

				admin.GET("/winners", winnerHandler.List)
				admin.POST("/winners", winnerHandler.Create)
				admin.PUT("/winners/:id", winnerHandler.Update)
				admin.DELETE("/winners/:id", winnerHandler.Delete)

				admin.GET("/registrations", registrationHandler.List)
				admin.GET("/registrations/counts", registrationHandler.Counts)
				admin.GET("/registrations/export", registrationHandler.Export)

				admin.GET("/users", adminUserHandler.List)
				admin.POST("/users", adminUserHandler.Create)
				admin.DELETE("/users/:id", adminUserHandler.Delete)

				admin.GET("/preferences/theme", adminUserHandler.GetTheme)
				admin.PUT("/preferences/theme", adminUserHandler.SetTheme)

				admin.POST("/uploads/:bucket", uploadHandler.Upload)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
