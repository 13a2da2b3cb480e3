// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecommerce-search-service/internal/app/service"
	"ecommerce-search-service/internal/metrics"
	"ecommerce-search-service/internal/transport/httpserver/handler"
	"ecommerce-search-service/internal/transport/httpserver/middleware"
	"ecommerce-search-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	searchSvc *service.SearchService,
	catalogSvc *service.CatalogService,
	analyticsSvc *service.AnalyticsService,
	db *gorm.DB,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	// Template engine for the dashboard page
	engine := html.New("./web/templates", ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "ecommerce-search-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.CORS())
	app.Use(metrics.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(compress.New())

	// Static files
	app.Static("/static", "./web/static")

	// Create handlers
	searchHandler := handler.NewSearchHandler(searchSvc, v, logger)
	productHandler := handler.NewProductHandler(catalogSvc, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, v, logger)
	dashboardHandler := handler.NewDashboardHandler(catalogSvc, logger)

	registerRoutes(app, searchHandler, productHandler, analyticsHandler, dashboardHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	searchHandler *handler.SearchHandler,
	productHandler *handler.ProductHandler,
	analyticsHandler *handler.AnalyticsHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Liveness and readiness are handled by middleware (/livez, /readyz)

	// Dashboard (HTML)
	app.Get("/", dashboardHandler.Render)

	// Operational endpoints
	app.Get("/health", productHandler.Health)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Search
	search := api.Group("/search")
	search.Get("/bm25", searchHandler.BM25)
	search.Get("/similarity", searchHandler.Similarity)
	search.Get("/hybrid", searchHandler.Hybrid)
	search.Get("/compare", searchHandler.Compare)

	api.Get("/facets", searchHandler.Facets)

	// Catalog
	api.Get("/categories", productHandler.Categories)
	api.Get("/products/:id", productHandler.GetByID)

	// Analytics
	analytics := api.Group("/analytics")
	analytics.Get("/sales-by-region", analyticsHandler.SalesByRegion)
	analytics.Get("/top-products", analyticsHandler.TopProducts)
	analytics.Get("/category-performance", analyticsHandler.CategoryPerformance)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
