package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/studio-api/api/swagger"
	"github.com/noah-isme/studio-api/internal/handler"
	internalmiddleware "github.com/noah-isme/studio-api/internal/middleware"
	"github.com/noah-isme/studio-api/internal/repository"
	"github.com/noah-isme/studio-api/internal/router"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/cache"
	"github.com/noah-isme/studio-api/pkg/config"
	"github.com/noah-isme/studio-api/pkg/database"
	"github.com/noah-isme/studio-api/pkg/logger"
	"github.com/noah-isme/studio-api/pkg/textgen"
)

// @title Studio API
// @version 1.0.0
// @description Students, class schedules and finances for a fitness studio.
// @BasePath /api
// @schemes http https

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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	repos := service.Repositories{}
	var store handler.Pinger
	if cfg.Database.Configured() {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		store = db
		repos.Students = repository.NewStudentRepository(db, metrics)
		repos.Schedules = repository.NewScheduleRepository(db, metrics)
		repos.Transactions = repository.NewTransactionRepository(db, metrics)
	} else {
		logr.Warn("database credentials missing; data routes will fail until configured")
	}

	if cfg.Stats.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, "studio")
			defer cacheRepo.Close() //nolint:errcheck
			repos.Cache = cacheRepo
		}
	}

	location, err := cfg.Location()
	if err != nil {
		logr.Warn("export dates fall back to UTC", zap.Error(err))
	}

	opts := service.Options{
		StatsCacheEnabled: repos.Cache != nil,
		StatsCacheTTL:     cfg.Stats.CacheTTL,
		Export:            service.ExportConfig{StudioName: cfg.StudioName, Location: location},
		Metrics:           metrics,
		Logger:            logr,
	}
	if cfg.AI.Enabled() {
		gen, err := textgen.NewGemini(ctx, textgen.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logr.Warn("text generation disabled", zap.Error(err))
		} else {
			opts.Generator = gen
			logr.Info("text generation enabled", zap.String("model", gen.Model()))
		}
	}

	svcs := service.New(repos, opts)

	fallback, err := assetHandler(cfg, logr)
	if err != nil {
		logr.Warn("ui assets not served", zap.Error(err))
	}

	engine := router.New(router.NewHandlers(svcs, store), router.Options{
		APIPrefix:            cfg.APIPrefix,
		StoreConfigured:      cfg.Database.Configured(),
		AIRateLimitPerMinute: cfg.AI.RateLimitPerMinute,
		AllowedOrigins:       cfg.CORS.AllowedOrigins,
		EnableDocs:           cfg.Env != config.EnvProduction,
		Fallback:             fallback,
		Metrics:              metrics,
		Logger:               logr,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logr.Info("server stopped")
	return nil
}

func assetHandler(cfg *config.Config, logr *zap.Logger) (gin.HandlerFunc, error) {
	if cfg.Env == config.EnvProduction {
		return internalmiddleware.StaticAssets(cfg.Assets.StaticDir, cfg.APIPrefix)
	}
	if cfg.Assets.DevServerURL == "" {
		return nil, nil
	}
	return internalmiddleware.DevProxy(cfg.Assets.DevServerURL, cfg.APIPrefix, logr.Named("devproxy"))
}
