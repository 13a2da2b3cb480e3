package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/transport/httpserver/dto"
)

// ProductHandler handles catalog-related HTTP requests.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// GetByID handles GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "product id must be a positive integer")
	}

	detail, err := h.catalog.GetProductDetail(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Product not found",
				Code:  "NOT_FOUND",
			})
		}
		h.logger.Error("product detail failed", zap.Int("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromProductDetail(detail))
}

// Categories handles GET /api/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		h.logger.Error("category listing failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}
	if categories == nil {
		categories = []string{}
	}

	return c.JSON(dto.CategoriesResponse{Categories: categories})
}

// Health handles GET /health
func (h *ProductHandler) Health(c *fiber.Ctx) error {
	if err := h.catalog.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.HealthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
	}

	return c.JSON(dto.HealthResponse{Status: "healthy"})
}
