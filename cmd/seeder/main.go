// Package main is the demo catalog seeder. It generates products,
// orders and reviews, embeds the product text when an embedding server
// is configured, and writes everything through the same migrations the
// API runs.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/config"
	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/infra/embeddings"
	"ecommerce-search-service/internal/infra/postgres"
	"ecommerce-search-service/internal/infra/postgres/migrations"
	rediscache "ecommerce-search-service/internal/infra/redis"
	"ecommerce-search-service/internal/logger"
)

var (
	configPath = flag.String("config", "", "path to config file")
	reset      = flag.Bool("reset", false, "delete existing demo data before seeding")
	products   = flag.Int("products", 0, "number of products to generate (0 = config value)")
	orders     = flag.Int("orders", 0, "number of orders to generate (0 = config value)")
	reviews    = flag.Int("reviews", 0, "number of reviews to generate (0 = config value)")
	randomSeed = flag.Int64("random-seed", 42, "generator seed, the same seed produces the same catalog")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
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
		logger.SentryConfig{Enabled: false},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

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
	} else {
		log.Info("embeddings disabled, products get deterministic fallback vectors")
	}

	// Connect the cache so a reseed can drop stale search results
	// (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()

		ctx := context.Background()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("failed to connect to Redis, stale cached searches may survive the reseed", zap.Error(err))
		} else {
			cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		}
	}

	seedSvc := service.NewSeedService(
		postgres.NewRepository(db),
		embedder,
		cache,
		cfg.Embeddings.Dimension,
		log.Logger,
	)

	params := service.SeedParams{
		Products:   cfg.Seed.Products,
		Orders:     cfg.Seed.Orders,
		Reviews:    cfg.Seed.Reviews,
		Reset:      *reset,
		RandomSeed: *randomSeed,
	}
	if *products > 0 {
		params.Products = *products
	}
	if *orders > 0 {
		params.Orders = *orders
	}
	if *reviews > 0 {
		params.Reviews = *reviews
	}

	summary, err := seedSvc.Seed(context.Background(), params)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("seeding finished",
		zap.Int("products", summary.Products),
		zap.Int("orders", summary.Orders),
		zap.Int("reviews", summary.Reviews),
		zap.Int("embedded", summary.Embedded),
		zap.Int("fallbacks", summary.Fallbacks),
		zap.Duration("took", summary.Duration),
	)
}
