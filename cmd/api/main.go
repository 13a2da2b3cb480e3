// Package main is the entry point for the ecommerce-search-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/config"
	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/infra/embeddings"
	"ecommerce-search-service/internal/infra/postgres"
	"ecommerce-search-service/internal/infra/postgres/migrations"
	rediscache "ecommerce-search-service/internal/infra/redis"
	"ecommerce-search-service/internal/job"
	"ecommerce-search-service/internal/logger"
	"ecommerce-search-service/internal/transport/httpserver"
	"ecommerce-search-service/internal/validator"
	"ecommerce-search-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting ecommerce-search-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Verify search extensions
	if err := postgres.CheckExtensions(db); err != nil {
		log.Fatal("extension check failed", zap.Error(err))
	}

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	ctx := context.Background()
	if count, err := repo.CountProducts(ctx); err != nil {
		log.Warn("failed to count products", zap.Error(err))
	} else if count == 0 {
		log.Warn("catalog is empty, run the seeder to load demo data")
	} else {
		log.Info("catalog ready", zap.Int64("products", count))
	}

	// Connect to Redis when anything needs it
	var redisClient *redis.Client
	if cfg.Cache.Enabled || cfg.Simulator.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("search_ttl", cfg.Cache.SearchTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create embedding client (optional, based on config)
	var embedder domain.EmbeddingProvider
	if cfg.Embeddings.Enabled {
		embedder = embeddings.New(
			embeddings.Config{
				BaseURL:   cfg.Embeddings.BaseURL,
				Model:     cfg.Embeddings.Model,
				Dimension: cfg.Embeddings.Dimension,
				Timeout:   cfg.Embeddings.Timeout,
				Retry: embeddings.RetryConfig{
					MaxAttempts: cfg.Embeddings.Retry.MaxAttempts,
					WaitTime:    cfg.Embeddings.Retry.WaitTime,
					MaxWaitTime: cfg.Embeddings.Retry.MaxWaitTime,
				},
				CB: embeddings.CBConfig{
					MaxRequests:  cfg.Embeddings.CB.MaxRequests,
					Interval:     cfg.Embeddings.CB.Interval,
					Timeout:      cfg.Embeddings.CB.Timeout,
					FailureRatio: cfg.Embeddings.CB.FailureRatio,
				},
			},
			log.Logger,
		)
		log.Info("embeddings enabled",
			zap.String("base_url", cfg.Embeddings.BaseURL),
			zap.String("model", cfg.Embeddings.Model),
		)
	} else {
		log.Info("embeddings disabled, hybrid search ranks by text relevance only")
	}

	// Create services
	searchSvc := service.NewSearchService(repo, embedder, cache, cfg.Cache.SearchTTL, cfg.Search.Fields, log.Logger)
	catalogSvc := service.NewCatalogService(repo, log.Logger)
	analyticsSvc := service.NewAnalyticsService(repo, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		searchSvc,
		catalogSvc,
		analyticsSvc,
		db,
		v,
		log.Logger,
	)

	// Start order simulator with distributed locking (optional, based
	// on config)
	var simulator *job.OrderSimulator
	if cfg.Simulator.Enabled {
		simulator = job.NewOrderSimulator(
			repo,
			job.SimulatorConfig{
				Interval:      cfg.Simulator.Interval,
				Timeout:       cfg.Simulator.Timeout,
				OrdersPerTick: cfg.Simulator.OrdersPerTick,
			},
			log.Logger,
			locker.NewRedisLocker(redisClient, log.Logger),
		)
		simulator.Start()
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop simulator
		if simulator != nil {
			simulator.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
