package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ranktrack/internal/db"
	"ranktrack/internal/engine"
	"ranktrack/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, eng *engine.Engine) {
	rankingsHandler := api.NewRankingsHandler(database, eng)
	healthHandler := api.NewHealthHandler(database)

	// Ranking engine API
	s.App.Post("/api/rankings/bulk", rankingsHandler.Bulk)
	s.App.Get("/api/slots/:id/guarantee", rankingsHandler.Guarantee)

	// Operability
	s.App.Get("/api/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
