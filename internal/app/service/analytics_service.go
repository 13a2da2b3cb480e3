package service

import (
	"context"

	"go.uber.org/zap"

	"ecommerce-search-service/internal/domain"
)

// AnalyticsService handles the sales and catalog aggregates behind the
// dashboard.
type AnalyticsService struct {
	analytics domain.AnalyticsRepository
	logger    *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analytics domain.AnalyticsRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		logger:    logger,
	}
}

// SalesByRegion aggregates order volume and revenue per region.
func (s *AnalyticsService) SalesByRegion(ctx context.Context) ([]domain.RegionSales, error) {
	sales, err := s.analytics.SalesByRegion(ctx)
	if err != nil {
		s.logger.Error("sales by region failed", zap.Error(err))
		return nil, err
	}

	return sales, nil
}

// TopProducts lists the best selling products by completed-order
// revenue.
func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	if limit <= 0 {
		limit = domain.DefaultTopProductsLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	top, err := s.analytics.TopProducts(ctx, limit)
	if err != nil {
		s.logger.Error("top products failed", zap.Error(err))
		return nil, err
	}

	return top, nil
}

// CategoryPerformance aggregates catalog size and sales per category.
func (s *AnalyticsService) CategoryPerformance(ctx context.Context) ([]domain.CategoryStats, error) {
	stats, err := s.analytics.CategoryPerformance(ctx)
	if err != nil {
		s.logger.Error("category performance failed", zap.Error(err))
		return nil, err
	}

	return stats, nil
}
