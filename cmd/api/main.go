package main

// @title ATL08 Height Map API
// @version 1.0.0
// @description Сервис построения интерактивных карт высоты растительности по наблюдениям ICESat-2 ATL08.
// @description
// @description Основные возможности:
// @description - Построение карты Leaflet по наблюдениям (inline или из гранулы)
// @description - Фильтрация ночных наблюдений, окраска по шкале 0-25 м
// @description - Наложение контуров HRSI CHM
// @description - Асинхронное построение через Redis Streams

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/atl08-heightmap/docs"
	"github.com/atl08-heightmap/internal/config"
	httpDelivery "github.com/atl08-heightmap/internal/delivery/http"
	"github.com/atl08-heightmap/internal/delivery/http/handler"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/logger"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/repository/cache"
	"github.com/atl08-heightmap/internal/repository/csvfile"
	"github.com/atl08-heightmap/internal/repository/overlay"
	"github.com/atl08-heightmap/internal/repository/postgres"
	redisRepo "github.com/atl08-heightmap/internal/repository/redis"
	"github.com/atl08-heightmap/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithName("api"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ATL08 Height Map API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("data_source", cfg.Data.Source),
	)

	checks := map[string]httpDelivery.HealthChecker{}

	// 3. Observation store
	var obsRepo repository.ObservationRepository
	switch cfg.Data.Source {
	case "csv":
		obsRepo = csvfile.NewObservationRepository(cfg.Data.CSVDir, log)
	default:
		db, err := postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		obsRepo, err = postgres.NewObservationRepository(db, cfg.Data.ObservationsTable)
		if err != nil {
			log.Fatal("Invalid observations table", zap.Error(err))
		}
		checks["postgres"] = db
	}

	// 4. Connect to Redis (кеш карт и стримы заданий)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	checks["redis"] = redisClient

	streamsClient := redisClient
	if cfg.GetRedisStreamsAddr() != cfg.GetRedisAddr() || cfg.RedisStreams.DB != cfg.Redis.DB {
		streamsClient, err = cache.NewRedisStreams(&cfg.RedisStreams, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
		}
		defer func() {
			if err := streamsClient.Close(); err != nil {
				log.Error("Failed to close Redis Streams connection", zap.Error(err))
			}
		}()
		checks["redis_streams"] = streamsClient
	}

	log.Info("All connections healthy")

	// 5. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient.Client(), log)
	overlayRepo := overlay.NewGeoJSONRepository(cfg.Data.OverlayDir, log)

	// 6. Initialize Use Cases
	renderer, err := render.NewHTMLRenderer("")
	if err != nil {
		log.Fatal("Failed to initialize HTML renderer", zap.Error(err))
	}

	composer := usecase.NewMapComposer(overlayRepo, usecase.NewMarkerRenderer(log), log)
	defaults, err := usecase.ComposeOptionsFromConfig(&cfg.Map)
	if err != nil {
		log.Fatal("Invalid map defaults", zap.Error(err))
	}

	renderUC := usecase.NewRenderUseCase(
		obsRepo,
		cacheRepo,
		streamRepo,
		composer,
		renderer,
		defaults,
		log,
		cfg.Cache.MapCacheTTL,
	)

	// 7. Initialize Handlers
	mapHandler := handler.NewMapHandler(renderUC, log)

	// 8. Create HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		mapHandler,
		handler.NewBasemapHandler(),
		handler.NewColormapHandler(),
		checks,
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
