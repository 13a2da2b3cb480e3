package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
)

// reviewsPerProduct caps how many reviews ride along with a product
// detail response.
const reviewsPerProduct = 10

// CatalogService handles product detail and category listings.
type CatalogService struct {
	products domain.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products domain.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

// GetProductDetail retrieves a product together with its most helpful
// reviews.
func (s *CatalogService) GetProductDetail(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		s.logger.Error("product lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	reviews, err := s.products.ProductReviews(ctx, id, reviewsPerProduct)
	if err != nil {
		s.logger.Error("review lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &domain.ProductDetail{
		Product: *product,
		Reviews: reviews,
	}, nil
}

// ListCategories lists all distinct product categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		s.logger.Error("category listing failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

// Ping verifies the product store is reachable.
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.products.Ping(ctx)
}
