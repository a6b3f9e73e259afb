package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/brewhouse/backend/internal/infrastructure/auth"
	"github.com/brewhouse/backend/internal/infrastructure/config"
	"github.com/brewhouse/backend/internal/infrastructure/event"
	"github.com/brewhouse/backend/internal/infrastructure/logger"
	"github.com/brewhouse/backend/internal/infrastructure/persistence"
	"github.com/brewhouse/backend/internal/infrastructure/sequence"
	"github.com/brewhouse/backend/internal/infrastructure/telemetry"
	"github.com/brewhouse/backend/internal/interfaces/http/handler"
	"github.com/brewhouse/backend/internal/interfaces/http/middleware"
	"github.com/brewhouse/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Brewhouse Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database tracing when telemetry is enabled
	if cfg.Telemetry.Enabled {
		tracingPlugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := tracingPlugin.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Document numbering backed by Redis
	numberer, err := sequence.NewRedisDocumentNumberer(sequence.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := numberer.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Initialize repositories
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	noteRepo := persistence.NewGormBatchNoteRepository(db.DB)
	bottlingRepo := persistence.NewGormBottlingItemRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	issueRepo := persistence.NewGormStockIssueRepository(db.DB)
	levelRepo := persistence.NewGormStockLevelRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := event.NewProductionAuditHandler(log)
	eventBus.Subscribe(auditHandler)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	pricing := appbrewing.NewPricingResolver(log)
	batchService := appbrewing.NewBatchService(txScope, batchRepo, noteRepo, numberer, eventBus, log)
	issueService := appbrewing.NewIssueService(txScope, batchRepo, recipeRepo, itemRepo, unitRepo, issueRepo, movementRepo, numberer, eventBus, log)
	bottlingService := appbrewing.NewBottlingService(txScope, batchRepo, bottlingRepo, eventBus, log)
	receiptService := appbrewing.NewReceiptService(txScope, issueRepo, numberer, pricing, eventBus, log)
	equipmentService := appbrewing.NewEquipmentService(txScope, equipmentRepo, log)
	stockService := appbrewing.NewStockQueryService(levelRepo, movementRepo)

	// JWT authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	batchHandler := handler.NewBatchHandler(batchService)
	issueHandler := handler.NewIssueHandler(issueService)
	bottlingHandler := handler.NewBottlingHandler(bottlingService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	stockHandler := handler.NewStockHandler(stockService)
	systemHandler := handler.NewSystemHandler(appVersion)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, security
	// headers, CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, numberer))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Authentication and tenant resolution on the versioned API
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	r.Use(middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
		HeaderEnabled: cfg.App.Env != "production",
		Required:      false,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	// Brewing domain: batches, lifecycle, bottling, receipts, equipment
	brewingRoutes := router.NewDomainGroup("brewing", "/brewing")
	brewingRoutes.POST("/batches", batchHandler.Plan)
	brewingRoutes.GET("/batches", batchHandler.List)
	brewingRoutes.GET("/batches/:batchId", batchHandler.Get)
	brewingRoutes.PATCH("/batches/:batchId", batchHandler.Update)
	brewingRoutes.POST("/batches/:batchId/transition", batchHandler.Transition)
	brewingRoutes.PUT("/batches/:batchId/equipment", batchHandler.AssignEquipment)
	brewingRoutes.GET("/batches/:batchId/notes", batchHandler.ListNotes)
	brewingRoutes.GET("/batches/:batchId/issuance-plan", issueHandler.GetIssuancePlan)
	brewingRoutes.POST("/batches/:batchId/issues", issueHandler.Create)
	brewingRoutes.PUT("/batches/:batchId/bottling", bottlingHandler.Save)
	brewingRoutes.GET("/batches/:batchId/bottling", bottlingHandler.Get)
	brewingRoutes.POST("/batches/:batchId/receipt", receiptHandler.Create)
	brewingRoutes.GET("/batches/:batchId/receipt", receiptHandler.Get)
	brewingRoutes.GET("/batches/:batchId/movements", stockHandler.ListBatchMovements)
	brewingRoutes.POST("/equipment", equipmentHandler.Create)
	brewingRoutes.GET("/equipment", equipmentHandler.List)
	brewingRoutes.GET("/equipment/:equipmentId", equipmentHandler.Get)

	// Stock domain: issue documents and on-hand levels
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.GET("/issues/:issueId", issueHandler.Get)
	stockRoutes.POST("/issues/:issueId/refill", issueHandler.Refill)
	stockRoutes.POST("/issues/:issueId/confirm", issueHandler.Confirm)
	stockRoutes.POST("/issues/:issueId/cancel", issueHandler.Cancel)
	stockRoutes.GET("/levels", stockHandler.ListLevels)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(brewingRoutes).
		Register(stockRoutes).
		Register(systemRoutes)
	r.Setup()

	// Simple ping at root API level for basic probes
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports readiness of the database and Redis connections
func healthHandler(db *persistence.Database, numberer *sequence.RedisDocumentNumberer) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.String("component", "database"), zap.Error(err))
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}
		if err := numberer.Ping(c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.String("component", "redis"), zap.Error(err))
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		}
		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
