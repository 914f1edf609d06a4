package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/config"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/logger"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/repository/cache"
	"github.com/atl08-heightmap/internal/repository/csvfile"
	"github.com/atl08-heightmap/internal/repository/overlay"
	"github.com/atl08-heightmap/internal/repository/postgres"
	redisRepo "github.com/atl08-heightmap/internal/repository/redis"
	"github.com/atl08-heightmap/internal/usecase"
	"github.com/atl08-heightmap/internal/worker"
	renderWorker "github.com/atl08-heightmap/internal/worker/render"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, logger.WithName("worker"))
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ATL08 Render Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

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
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamsClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient.Client(), log)
	overlayRepo := overlay.NewGeoJSONRepository(cfg.Data.OverlayDir, log)

	// 6. Initialize use cases
	renderer, err := render.NewHTMLRenderer("")
	if err != nil {
		log.Fatal("Failed to initialize HTML renderer", zap.Error(err))
	}
	defaults, err := usecase.ComposeOptionsFromConfig(&cfg.Map)
	if err != nil {
		log.Fatal("Invalid map defaults", zap.Error(err))
	}
	composer := usecase.NewMapComposer(overlayRepo, usecase.NewMarkerRenderer(log), log)
	renderUC := usecase.NewRenderUseCase(obsRepo, cacheRepo, streamRepo, composer, renderer, defaults, log, cfg.Cache.MapCacheTTL)

	// 7. Initialize workers
	w := renderWorker.NewRenderWorker(streamRepo, renderUC, renderWorker.Config{
		ConsumerGroup: cfg.Worker.ConsumerGroup,
		BatchSize:     cfg.Worker.BatchSize,
		PollInterval:  cfg.Worker.PollInterval,
		MaxRetries:    cfg.Worker.MaxRetries,
	}, log)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, cfg.Worker.ShutdownTimeout)
	workerManager.Register(w)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
