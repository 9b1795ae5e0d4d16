// control-tower/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexgenlogistics/control-tower/internal/api"
	"github.com/nexgenlogistics/control-tower/internal/cache"
	"github.com/nexgenlogistics/control-tower/internal/config"
	"github.com/nexgenlogistics/control-tower/internal/repository"
	"github.com/nexgenlogistics/control-tower/internal/repository/csvdir"
	"github.com/nexgenlogistics/control-tower/internal/repository/postgres"
	"github.com/nexgenlogistics/control-tower/internal/service"
	"github.com/nexgenlogistics/control-tower/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := buildRepository(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize dataset repository")
	}

	results, err := cache.NewResultCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Result cache unavailable, continuing without cache")
		results = cache.NewNoopResultCache()
	}

	svc := service.NewAnalyticsService(repo, results, cfg.Analytics)
	if err := svc.Reload(context.Background()); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildRepository(cfg *config.Config) (repository.DatasetRepository, error) {
	if cfg.App.DataSource == "postgres" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return postgres.NewDatasetRepository(db), nil
	}
	return csvdir.NewRepository(cfg.App.DataDir), nil
}
