/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/simulations/*    Run and history
  /api/scenarios/*      Preset configurations
  /api/units            Sample units
  /api/config/default   Default configuration
  /api/health           Liveness
  /                     Endpoint index

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", h.ListSimulations)
			r.Post("/", h.Simulate)
			r.Get("/{id}", h.GetSimulation)
			r.Post("/{id}/replay", h.ReplaySimulation)
			r.Delete("/{id}", h.DeleteSimulation)
		})

		r.Get("/units", h.ListUnits)
		r.Get("/config/default", h.GetDefaultConfig)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Sales Simulator</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Sales Simulator API</h1>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/simulations - Run a simulation</li>
<li><a href="/api/simulations">/api/simulations</a> - Saved runs</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Preset scenarios</li>
<li><a href="/api/units">/api/units</a> - Sample units</li>
<li><a href="/api/config/default">/api/config/default</a> - Default configuration</li>
</ul>
</body>
</html>`))
	})

	return r
}
