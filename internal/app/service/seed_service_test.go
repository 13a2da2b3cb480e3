package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
)

// seedRepoStub implements domain.SeedRepository.
type seedRepoStub struct {
	countProducts      func(ctx context.Context) (int64, error)
	randomProducts     func(ctx context.Context, n int) ([]domain.Product, error)
	bulkUpsertProducts func(ctx context.Context, products []domain.Product) error
	insertOrders       func(ctx context.Context, orders []domain.Order) error
	insertReviews      func(ctx context.Context, reviews []domain.Review) error
	resetDemoData      func(ctx context.Context) error
}

func (s *seedRepoStub) CountProducts(ctx context.Context) (int64, error) {
	if s.countProducts == nil {
		return 0, nil
	}
	return s.countProducts(ctx)
}

func (s *seedRepoStub) RandomProducts(ctx context.Context, n int) ([]domain.Product, error) {
	if s.randomProducts == nil {
		return nil, nil
	}
	return s.randomProducts(ctx, n)
}

func (s *seedRepoStub) BulkUpsertProducts(ctx context.Context, products []domain.Product) error {
	if s.bulkUpsertProducts == nil {
		return nil
	}
	return s.bulkUpsertProducts(ctx, products)
}

func (s *seedRepoStub) InsertOrders(ctx context.Context, orders []domain.Order) error {
	if s.insertOrders == nil {
		return nil
	}
	return s.insertOrders(ctx, orders)
}

func (s *seedRepoStub) InsertReviews(ctx context.Context, reviews []domain.Review) error {
	if s.insertReviews == nil {
		return nil
	}
	return s.insertReviews(ctx, reviews)
}

func (s *seedRepoStub) ResetDemoData(ctx context.Context) error {
	if s.resetDemoData == nil {
		return nil
	}
	return s.resetDemoData(ctx)
}

const testDimension = 8

func TestSeed_EmbedsThroughProvider(t *testing.T) {
	var upserted []domain.Product
	var orderCount, reviewCount int
	repo := &seedRepoStub{
		bulkUpsertProducts: func(ctx context.Context, products []domain.Product) error {
			upserted = products
			return nil
		},
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			orderCount = len(orders)
			return nil
		},
		insertReviews: func(ctx context.Context, reviews []domain.Review) error {
			reviewCount = len(reviews)
			return nil
		},
	}

	embedCalls := 0
	embedder := &embedderStub{
		embed: func(ctx context.Context, texts []string) ([][]float32, error) {
			embedCalls++
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = make([]float32, testDimension)
				vectors[i][0] = 1
			}
			return vectors, nil
		},
	}

	cache := newMemoryCache()
	require.NoError(t, cache.Set(context.Background(), "bm25:stale", []byte("{}"), 0))

	svc := NewSeedService(repo, embedder, cache, testDimension, zap.NewNop())

	summary, err := svc.Seed(context.Background(), SeedParams{
		Products:   120,
		Orders:     40,
		Reviews:    30,
		RandomSeed: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, 120, summary.Products)
	assert.Equal(t, 40, summary.Orders)
	assert.Equal(t, 30, summary.Reviews)
	assert.Equal(t, 120, summary.Embedded)
	assert.Equal(t, 0, summary.Fallbacks)

	assert.Equal(t, 3, embedCalls, "120 products should embed in batches of 50")
	require.Len(t, upserted, 120)
	for _, p := range upserted {
		assert.Len(t, p.Embedding, testDimension)
	}
	assert.Equal(t, 40, orderCount)
	assert.Equal(t, 30, reviewCount)

	assert.Equal(t, 0, cache.len(), "stale search results should be cleared after reseeding")
}

func TestSeed_FallbackVectorsWithoutProvider(t *testing.T) {
	var upserted []domain.Product
	repo := &seedRepoStub{
		bulkUpsertProducts: func(ctx context.Context, products []domain.Product) error {
			upserted = products
			return nil
		},
	}
	svc := NewSeedService(repo, nil, nil, testDimension, zap.NewNop())

	summary, err := svc.Seed(context.Background(), SeedParams{Products: 10, RandomSeed: 42})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Embedded)
	assert.Equal(t, 10, summary.Fallbacks)
	require.Len(t, upserted, 10)
	for _, p := range upserted {
		assert.Len(t, p.Embedding, testDimension, "every product should carry a locally hashed vector")
	}
}

func TestSeed_ProviderFailureSwitchesToFallback(t *testing.T) {
	var upserted []domain.Product
	repo := &seedRepoStub{
		bulkUpsertProducts: func(ctx context.Context, products []domain.Product) error {
			upserted = products
			return nil
		},
	}

	embedCalls := 0
	embedder := &embedderStub{
		embed: func(ctx context.Context, texts []string) ([][]float32, error) {
			embedCalls++
			return nil, errors.New("circuit breaker is open")
		},
	}
	svc := NewSeedService(repo, embedder, nil, testDimension, zap.NewNop())

	summary, err := svc.Seed(context.Background(), SeedParams{Products: 120, RandomSeed: 42})
	require.NoError(t, err, "a broken embedding server must not fail the seeding run")

	assert.Equal(t, 1, embedCalls, "after the first failure the provider should not be retried")
	assert.Equal(t, 0, summary.Embedded)
	assert.Equal(t, 120, summary.Fallbacks)
	for _, p := range upserted {
		assert.Len(t, p.Embedding, testDimension)
	}
}

func TestSeed_ResetRunsBeforeUpsert(t *testing.T) {
	var events []string
	repo := &seedRepoStub{
		resetDemoData: func(ctx context.Context) error {
			events = append(events, "reset")
			return nil
		},
		bulkUpsertProducts: func(ctx context.Context, products []domain.Product) error {
			events = append(events, "upsert")
			return nil
		},
	}
	svc := NewSeedService(repo, nil, nil, testDimension, zap.NewNop())

	_, err := svc.Seed(context.Background(), SeedParams{Products: 5, Reset: true, RandomSeed: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"reset", "upsert"}, events)
}

func TestSeed_SkipsResetByDefault(t *testing.T) {
	resets := 0
	repo := &seedRepoStub{
		resetDemoData: func(ctx context.Context) error {
			resets++
			return nil
		},
	}
	svc := NewSeedService(repo, nil, nil, testDimension, zap.NewNop())

	_, err := svc.Seed(context.Background(), SeedParams{Products: 5, RandomSeed: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, resets)
}

func TestSeed_UpsertErrorAborts(t *testing.T) {
	upsertErr := errors.New("deadlock detected")
	orderInserts := 0
	repo := &seedRepoStub{
		bulkUpsertProducts: func(ctx context.Context, products []domain.Product) error {
			return upsertErr
		},
		insertOrders: func(ctx context.Context, orders []domain.Order) error {
			orderInserts++
			return nil
		},
	}
	svc := NewSeedService(repo, nil, nil, testDimension, zap.NewNop())

	_, err := svc.Seed(context.Background(), SeedParams{Products: 5, Orders: 5, RandomSeed: 1})
	require.ErrorIs(t, err, upsertErr)
	assert.Equal(t, 0, orderInserts, "orders must not be written when products failed")
}

func TestSeed_SameSeedSameCatalog(t *testing.T) {
	capture := func() (*seedRepoStub, *[]domain.Product) {
		var products []domain.Product
		return &seedRepoStub{
			bulkUpsertProducts: func(ctx context.Context, p []domain.Product) error {
				products = p
				return nil
			},
		}, &products
	}

	repoA, productsA := capture()
	repoB, productsB := capture()

	_, err := NewSeedService(repoA, nil, nil, testDimension, zap.NewNop()).
		Seed(context.Background(), SeedParams{Products: 20, RandomSeed: 7})
	require.NoError(t, err)

	_, err = NewSeedService(repoB, nil, nil, testDimension, zap.NewNop()).
		Seed(context.Background(), SeedParams{Products: 20, RandomSeed: 7})
	require.NoError(t, err)

	require.Len(t, *productsB, 20)
	for i := range *productsA {
		assert.Equal(t, (*productsA)[i].Name, (*productsB)[i].Name)
		assert.Equal(t, (*productsA)[i].Price, (*productsB)[i].Price)
		assert.Equal(t, (*productsA)[i].Embedding, (*productsB)[i].Embedding)
	}
}
