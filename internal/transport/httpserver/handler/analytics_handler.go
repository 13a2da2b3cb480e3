package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/transport/httpserver/dto"
	"ecommerce-search-service/internal/validator"
)

// AnalyticsHandler handles the sales aggregate HTTP requests.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, v *validator.Validator, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		validator: v,
		logger:    logger,
	}
}

// SalesByRegion handles GET /api/analytics/sales-by-region
func (h *AnalyticsHandler) SalesByRegion(c *fiber.Ctx) error {
	sales, err := h.analytics.SalesByRegion(c.Context())
	if err != nil {
		h.logger.Error("sales by region failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromRegionSales(sales))
}

// TopProducts handles GET /api/analytics/top-products
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	var req dto.TopProductsRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	top, err := h.analytics.TopProducts(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("top products failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromTopProducts(top))
}

// CategoryPerformance handles GET /api/analytics/category-performance
func (h *AnalyticsHandler) CategoryPerformance(c *fiber.Ctx) error {
	stats, err := h.analytics.CategoryPerformance(c.Context())
	if err != nil {
		h.logger.Error("category performance failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromCategoryPerformance(stats))
}
