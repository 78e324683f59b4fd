package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/strivehq/backend/internal/application/finance"
	goalapp "github.com/strivehq/backend/internal/application/goal"
	identityapp "github.com/strivehq/backend/internal/application/identity"
	"github.com/strivehq/backend/internal/infrastructure/auth"
	"github.com/strivehq/backend/internal/infrastructure/config"
	"github.com/strivehq/backend/internal/infrastructure/logger"
	"github.com/strivehq/backend/internal/infrastructure/persistence"
	"github.com/strivehq/backend/internal/infrastructure/spreadsheet"
	"github.com/strivehq/backend/internal/infrastructure/storage"
	"github.com/strivehq/backend/internal/interfaces/http/handler"
	"github.com/strivehq/backend/internal/interfaces/http/middleware"
	"github.com/strivehq/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting Strive Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	goalRepo := persistence.NewGormGoalRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	kpiRepo := persistence.NewGormKPIRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	recordRepo := persistence.NewGormFinancialRecordRepository(db.DB)
	metricRepo := persistence.NewGormFinancialMetricRepository(db.DB)

	// Auth: JWT service plus a Redis-backed token blacklist when available
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
	}

	// Statement archive is optional; uploads still ingest without it
	var archive financeapp.StatementArchive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3StatementArchive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Warn("Statement archive disabled", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s3Archive.EnsureBucket(ctx); err != nil {
				log.Warn("Failed to ensure archive bucket", zap.Error(err))
			}
			cancel()
			archive = s3Archive
		}
	}

	// Application services
	goalService := goalapp.NewGoalService(goalRepo, taskRepo, kpiRepo, log)
	taskService := goalapp.NewTaskService(taskRepo, goalService, log)
	kpiService := goalapp.NewKPIService(kpiRepo, goalService, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	ingestionService := financeapp.NewIngestionService(recordRepo, metricRepo, kpiRepo, log)
	syncService := financeapp.NewKPISyncService(recordRepo, metricRepo, kpiRepo, goalService, log)
	statementService := financeapp.NewStatementService(spreadsheet.NewReader(), archive, ingestionService, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, jwtService)
	goalHandler := handler.NewGoalHandler(goalService)
	taskHandler := handler.NewTaskHandler(taskService)
	kpiHandler := handler.NewKPIHandler(kpiService)
	statementHandler := handler.NewStatementHandler(statementService, ingestionService, syncService, cfg.Upload)

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler).
		Register(goalHandler).
		Register(taskHandler).
		Register(kpiHandler).
		Register(statementHandler)
	r.Setup()

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
