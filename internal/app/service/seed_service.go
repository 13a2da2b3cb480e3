package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/seed"
)

// embedBatchSize is how many product texts go to the embedding server
// per request.
const embedBatchSize = 50

// orderBackdate spreads seeded orders over the trailing window so the
// analytics endpoints show history instead of a single spike.
const orderBackdate = 90 * 24 * time.Hour

// SeedService populates the demo catalog.
type SeedService struct {
	repo      domain.SeedRepository
	embedder  domain.EmbeddingProvider
	cache     domain.Cache
	dimension int
	logger    *zap.Logger
}

// NewSeedService creates a new SeedService. embedder and cache are
// optional; without an embedder every product gets a locally hashed
// fallback vector.
func NewSeedService(
	repo domain.SeedRepository,
	embedder domain.EmbeddingProvider,
	cache domain.Cache,
	dimension int,
	logger *zap.Logger,
) *SeedService {
	return &SeedService{
		repo:      repo,
		embedder:  embedder,
		cache:     cache,
		dimension: dimension,
		logger:    logger,
	}
}

// SeedParams controls one seeding run.
type SeedParams struct {
	Products   int
	Orders     int
	Reviews    int
	Reset      bool
	RandomSeed int64
}

// SeedSummary holds the result of a seeding run.
type SeedSummary struct {
	Products  int
	Orders    int
	Reviews   int
	Embedded  int
	Fallbacks int
	Duration  time.Duration
}

// Seed generates and stores the demo catalog. Reseeding with the same
// random seed is idempotent, products upsert by ID.
func (s *SeedService) Seed(ctx context.Context, params SeedParams) (*SeedSummary, error) {
	start := time.Now()

	if params.Reset {
		s.logger.Info("resetting demo data")
		if err := s.repo.ResetDemoData(ctx); err != nil {
			return nil, err
		}
	}

	gen := seed.NewGenerator(params.RandomSeed)

	products := gen.Products(params.Products)
	embedded, fallbacks := s.attachEmbeddings(ctx, products)

	s.logger.Info("seeding products",
		zap.Int("count", len(products)),
		zap.Int("embedded", embedded),
		zap.Int("fallback_vectors", fallbacks),
	)
	if err := s.repo.BulkUpsertProducts(ctx, products); err != nil {
		return nil, err
	}

	orders := gen.Orders(products, params.Orders, orderBackdate)
	s.logger.Info("seeding orders", zap.Int("count", len(orders)))
	if err := s.repo.InsertOrders(ctx, orders); err != nil {
		return nil, err
	}

	reviews := gen.Reviews(products, params.Reviews)
	s.logger.Info("seeding reviews", zap.Int("count", len(reviews)))
	if err := s.repo.InsertReviews(ctx, reviews); err != nil {
		return nil, err
	}

	// Cached search results may reference the old catalog.
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn("clearing search cache failed", zap.Error(err))
		}
	}

	summary := &SeedSummary{
		Products:  len(products),
		Orders:    len(orders),
		Reviews:   len(reviews),
		Embedded:  embedded,
		Fallbacks: fallbacks,
		Duration:  time.Since(start),
	}

	s.logger.Info("seeding completed",
		zap.Int("products", summary.Products),
		zap.Int("orders", summary.Orders),
		zap.Int("reviews", summary.Reviews),
		zap.Duration("duration", summary.Duration),
	)

	return summary, nil
}

// attachEmbeddings fills in product vectors, batching through the
// embedding provider when one is configured. After the first provider
// failure the rest of the catalog falls back to local vectors instead
// of hammering a server that is already refusing.
func (s *SeedService) attachEmbeddings(ctx context.Context, products []domain.Product) (embedded, fallbacks int) {
	useProvider := s.embedder != nil

	for offset := 0; offset < len(products); offset += embedBatchSize {
		end := offset + embedBatchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[offset:end]

		if useProvider {
			texts := make([]string, len(batch))
			for i := range batch {
				texts[i] = seed.EmbedText(batch[i])
			}

			vectors, err := s.embedder.Embed(ctx, texts)
			if err == nil {
				for i := range batch {
					batch[i].Embedding = vectors[i]
				}
				embedded += len(batch)
				continue
			}

			s.logger.Warn("embedding provider failed, using fallback vectors from here on",
				zap.Error(err),
			)
			useProvider = false
		}

		for i := range batch {
			batch[i].Embedding = seed.FallbackEmbedding(seed.EmbedText(batch[i]), s.dimension)
		}
		fallbacks += len(batch)
	}

	return embedded, fallbacks
}
