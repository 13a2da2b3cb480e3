package domain

import (
	"context"
	"time"
)

// ProductRepository defines the read side of the product store.
// Implementations: internal/infra/postgres/repository.go
type ProductRepository interface {
	// SearchBM25 runs a full-text search with the given expression and
	// filters, ordered by descending relevance score.
	SearchBM25(ctx context.Context, expression string, filters SearchFilters, limit int) ([]ScoredProduct, error)

	// SearchLike runs a plain pattern-match search over the same
	// fields, used as the baseline in search comparisons.
	SearchLike(ctx context.Context, query string, limit int) ([]ScoredProduct, error)

	// SimilarTo finds the nearest neighbors of the source product's
	// embedding, excluding the source itself and rows without an
	// embedding.
	SimilarTo(ctx context.Context, source *Product, limit int) ([]SimilarProduct, error)

	// SimilarToVector finds the nearest neighbors of an arbitrary query
	// vector, used by hybrid search when a query embedding is available.
	SimilarToVector(ctx context.Context, embedding []float32, limit int) ([]SimilarProduct, error)

	// Facets computes grouped counts over category, brand and price
	// for the exact predicate the main search would use.
	Facets(ctx context.Context, expression string, filters SearchFilters) (*Facets, error)

	// GetProduct retrieves a single product by ID. Returns nil when
	// no product exists with that ID.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// ProductReviews retrieves the most helpful reviews for a product,
	// newest first among equally helpful ones.
	ProductReviews(ctx context.Context, productID int64, limit int) ([]Review, error)

	// Categories lists all distinct product categories in order.
	Categories(ctx context.Context) ([]string, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// AnalyticsRepository defines the aggregate queries behind the
// analytics endpoints.
// Implementations: internal/infra/postgres/repository.go
type AnalyticsRepository interface {
	// SalesByRegion aggregates orders per region, highest revenue first.
	SalesByRegion(ctx context.Context) ([]RegionSales, error)

	// TopProducts aggregates completed orders per product, highest
	// revenue first.
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)

	// CategoryPerformance aggregates catalog and order stats per
	// category, highest revenue first.
	CategoryPerformance(ctx context.Context) ([]CategoryStats, error)
}

// SeedRepository defines the write side used by the seeder and the
// order simulator.
// Implementations: internal/infra/postgres/repository.go
type SeedRepository interface {
	// CountProducts returns the catalog size.
	CountProducts(ctx context.Context) (int64, error)

	// RandomProducts samples n products from the catalog.
	RandomProducts(ctx context.Context, n int) ([]Product, error)

	// BulkUpsertProducts creates or updates products in batches,
	// keyed by ID.
	BulkUpsertProducts(ctx context.Context, products []Product) error

	// InsertOrders appends new orders.
	InsertOrders(ctx context.Context, orders []Order) error

	// InsertReviews appends new reviews.
	InsertReviews(ctx context.Context, reviews []Review) error

	// ResetDemoData removes all products, orders and reviews and
	// resets ID sequences.
	ResetDemoData(ctx context.Context) error
}

// EmbeddingProvider defines the interface for text embedding services.
// Implementations: internal/infra/embeddings/client.go
type EmbeddingProvider interface {
	// Name returns the unique identifier for this provider.
	Name() string

	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// HealthCheck verifies the provider is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
