package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/brunoadrover/AsignacionDeEquipos/api/swagger"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/handler"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/middleware"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/repository"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/service"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/cache"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/config"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/database"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/logger"
	corsmiddleware "github.com/brunoadrover/AsignacionDeEquipos/pkg/middleware/cors"
	reqidmiddleware "github.com/brunoadrover/AsignacionDeEquipos/pkg/middleware/requestid"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/storage"
)

// @title Asignación de Equipos API
// @version 1.0.0
// @description Equipment request tracking and fulfillment for construction operating units
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.RunMigrations(cfg.Database, logr); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	// The projection cache is optional; the service falls back to a full
	// rebuild on every read when Redis is absent.
	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, projection cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	requestRepo := repository.NewRequestRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	configurationRepo := repository.NewConfigurationRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(configurationRepo, nil, logr, service.AuthConfig{
		TokenSecret:       cfg.Session.TokenSecret,
		TokenExpiry:       cfg.Session.TokenExpiry,
		BootstrapPassword: cfg.Session.BootstrapPassword,
	})
	requestSvc := service.NewRequestService(requestRepo, assignmentRepo, cacheRepo, cfg.Cache.ProjectionTTL, logr).
		WithMetrics(metricsSvc)
	fulfillmentSvc := service.NewFulfillmentService(requestRepo, assignmentRepo, equipmentRepo, cacheRepo, logr)
	reportSvc := service.NewReportService(requestSvc, exportStore, signer, logr).
		WithMetrics(metricsSvc)
	lookupSvc := service.NewLookupService(lookupRepo, equipmentRepo, cacheRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	requestHandler := handler.NewRequestHandler(requestSvc)
	fulfillmentHandler := handler.NewFulfillmentHandler(fulfillmentSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	lookupHandler := handler.NewLookupHandler(lookupSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	// Download links carry their own HMAC signature instead of a bearer token.
	api.GET("/export/:token", reportHandler.Download)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.PUT("/auth/password", authHandler.ChangePassword)

		protected.GET("/requests", requestHandler.List)
		protected.GET("/requests/stats", requestHandler.Stats)
		protected.POST("/requests", requestHandler.Create)
		protected.PUT("/requests/:id", requestHandler.Update)
		protected.DELETE("/requests/:id", requestHandler.Delete)

		protected.POST("/requests/:id/assign/own", fulfillmentHandler.AssignOwn)
		protected.POST("/requests/:id/assign/rent", fulfillmentHandler.AssignRent)
		protected.POST("/requests/:id/assign/buy", fulfillmentHandler.AssignBuy)
		protected.PATCH("/assignments/:id/buy", fulfillmentHandler.UpdateBuyDetails)
		protected.POST("/effective/:id/complete", fulfillmentHandler.MarkCompleted)
		protected.DELETE("/effective/:id", fulfillmentHandler.ReturnToPending)

		protected.GET("/reports/:status", reportHandler.Grouped)
		protected.POST("/reports/:status/export", reportHandler.Export)

		protected.GET("/units", lookupHandler.ListUnits)
		protected.POST("/units", lookupHandler.CreateUnit)
		protected.PUT("/units/:id", lookupHandler.RenameUnit)
		protected.DELETE("/units/:id", lookupHandler.DeleteUnit)

		protected.GET("/categories", lookupHandler.ListCategories)
		protected.POST("/categories", lookupHandler.CreateCategory)
		protected.PUT("/categories/:id", lookupHandler.RenameCategory)
		protected.DELETE("/categories/:id", lookupHandler.DeleteCategory)

		protected.GET("/equipment", lookupHandler.ListEquipment)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
