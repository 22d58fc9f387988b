package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripsearch/internal/cache"
	"tripsearch/internal/db"
	"tripsearch/internal/handlers"
	"tripsearch/internal/handlers/api"
	"tripsearch/internal/middleware"
	"tripsearch/internal/search"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, resolver *search.Resolver, resultCache *cache.ResultCache) {
	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(resolver)
	resolveHandler := api.NewResolveHandler(resolver, resultCache)
	healthHandler := api.NewHealthHandler(database)

	// HTML search surface
	s.App.Get("/", searchHandler.Index)
	s.App.Get("/search", searchHandler.Search)

	// JSON API, optionally guarded by a static key
	apiGroup := s.App.Group("/api", middleware.RequireAPIKey(s.Cfg.APIKey))
	apiGroup.Post("/resolve", resolveHandler.Resolve)
	apiGroup.Get("/health", healthHandler.Live)
	apiGroup.Get("/health/ready", healthHandler.Ready)

	// Prometheus scrape endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Plain probes for load balancers
	s.App.Get("/healthz", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
}
