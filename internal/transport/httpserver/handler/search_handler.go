// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/domain"
	"ecommerce-search-service/internal/metrics"
	"ecommerce-search-service/internal/transport/httpserver/dto"
	"ecommerce-search-service/internal/validator"
)

// SearchHandler handles search-related HTTP requests.
type SearchHandler struct {
	service   *service.SearchService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *service.SearchService, v *validator.Validator, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// BM25 handles GET /api/search/bm25
func (h *SearchHandler) BM25(c *fiber.Ctx) error {
	var req dto.BM25SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.BM25Search(c.Context(), req.ToParams())
	if err != nil {
		return h.serviceError(c, "bm25 search", err)
	}

	metrics.RecordSearch("bm25", string(result.Mode))

	return c.JSON(dto.FromBM25Result(result))
}

// Similarity handles GET /api/search/similarity
func (h *SearchHandler) Similarity(c *fiber.Ctx) error {
	var req dto.SimilarityRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.SimilaritySearch(c.Context(), req.ProductID, req.Limit)
	if err != nil {
		return h.serviceError(c, "similarity search", err)
	}

	metrics.RecordSearch("similarity", "")

	return c.JSON(dto.FromSimilarityResult(result))
}

// Hybrid handles GET /api/search/hybrid
func (h *SearchHandler) Hybrid(c *fiber.Ctx) error {
	var req dto.HybridSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.HybridSearch(c.Context(), req.ToParams())
	if err != nil {
		return h.serviceError(c, "hybrid search", err)
	}

	metrics.RecordSearch("hybrid", "")

	return c.JSON(dto.FromHybridResult(result))
}

// Compare handles GET /api/search/compare
func (h *SearchHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.CompareSearch(c.Context(), req.Query, req.Limit)
	if err != nil {
		return h.serviceError(c, "compare search", err)
	}

	metrics.RecordSearch("compare", "")

	return c.JSON(dto.FromCompareResult(result))
}

// Facets handles GET /api/facets
func (h *SearchHandler) Facets(c *fiber.Ctx) error {
	var req dto.FacetsRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	facets, err := h.service.Facets(c.Context(), req.Query)
	if err != nil {
		return h.serviceError(c, "facet aggregation", err)
	}

	return c.JSON(dto.FromFacets(facets))
}

// serviceError maps domain errors onto HTTP status codes. Anything
// that is not a client mistake or a missing product is a backend
// failure.
func (h *SearchHandler) serviceError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_PARAMS",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Product not found",
			Code:  "NOT_FOUND",
		})
	default:
		h.logger.Error(op+" failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INVALID_PARAMS",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}
