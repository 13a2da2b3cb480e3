package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/app/service"
)

// DashboardHandler handles the HTML search dashboard.
type DashboardHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(catalog *service.CatalogService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Render handles GET /
// Renders the search dashboard page using Fiber's template engine. The
// page drives everything else through the JSON API; only the category
// dropdown is filled in server side.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		h.logger.Warn("category listing for dashboard failed", zap.Error(err))
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":      "E-Commerce Search Demo",
		"Categories": categories,
	}, "layouts/base")
}
