// Package api provides the HTTP API layer for the calculator service.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"calculator-service/internal/api/handlers"
	"calculator-service/internal/api/middleware"
	"calculator-service/internal/api/response"
	"calculator-service/internal/config"
	"calculator-service/internal/operations"
	"calculator-service/internal/storage"
	"calculator-service/web"
)

// Router represents the main API router
type Router struct {
	config  *config.Config
	mux     *chi.Mux
	version string
	history *storage.HistoryStore
	logger  *log.Logger
}

// NewRouter creates a new API router with middleware and routes. The
// history store may be nil when calculation history is disabled.
func NewRouter(cfg *config.Config, history *storage.HistoryStore) *Router {
	r := &Router{
		config:  cfg,
		mux:     chi.NewRouter(),
		version: "1.0.0",
		history: history,
		logger:  log.Default(),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Handler returns the HTTP handler
func (r *Router) Handler() http.Handler {
	return r.mux
}

// setupMiddleware configures the middleware stack
func (r *Router) setupMiddleware() {
	// Recovery middleware (should be first)
	r.mux.Use(chimiddleware.Recoverer)

	// Request timeout middleware
	r.mux.Use(chimiddleware.Timeout(30 * time.Second))

	// Logging middleware
	loggingMiddleware := middleware.NewLoggingMiddleware()
	r.mux.Use(loggingMiddleware.Handler())

	// CORS middleware for the browser UI
	corsMiddleware := middleware.NewDefaultCORSMiddleware(r.config.CORS.AllowedOrigins)
	r.mux.Use(corsMiddleware.Handler())

	// Request size limit (1MB); calculation payloads are tiny
	r.mux.Use(chimiddleware.RequestSize(1 * 1024 * 1024))

	// Heartbeat for load balancer health checks
	r.mux.Use(chimiddleware.Heartbeat("/ping"))
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	calcHandler := handlers.NewCalculateHandler(r.logger, r.history)

	// Operation endpoints at the root, matching the original API surface
	for _, op := range operations.All() {
		r.mux.Post("/"+op.Name, calcHandler.Handle(op))
	}

	// Health check endpoints (no version prefix for load balancers)
	healthHandler := handlers.NewHealthHandler(r.config, r.history)
	r.mux.Get("/health", healthHandler.Handle)
	r.mux.Get("/readiness", healthHandler.HandleReadiness)
	r.mux.Get("/liveness", healthHandler.HandleLiveness)

	// API v1 routes
	r.mux.Route("/api/v1", func(rtr chi.Router) {
		rtr.Get("/", r.handleServerInfo)

		rtr.Get("/health", healthHandler.Handle)
		rtr.Get("/readiness", healthHandler.HandleReadiness)
		rtr.Get("/liveness", healthHandler.HandleLiveness)

		for _, op := range operations.All() {
			rtr.Post("/"+op.Name, calcHandler.Handle(op))
		}

		if r.history != nil {
			historyHandler := handlers.NewHistoryHandler(r.logger, r.history)
			rtr.Route("/history", func(historyRouter chi.Router) {
				historyRouter.Get("/", historyHandler.List)
				historyRouter.Delete("/", historyHandler.Clear)
			})
		}
	})

	// Browser calculator UI
	r.mux.Get("/", r.handleIndex)
	r.mux.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	// 404 handler
	r.mux.NotFound(r.handleNotFound)

	// 405 handler
	r.mux.MethodNotAllowed(r.handleMethodNotAllowed)
}

// handleIndex serves the embedded calculator page.
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	page, err := web.Static.ReadFile("static/index.html")
	if err != nil {
		response.WriteInternalError(w, "Calculator page unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handleServerInfo handles requests to the API root endpoint
func (r *Router) handleServerInfo(w http.ResponseWriter, req *http.Request) {
	endpoints := map[string]string{
		"health":    "/health",
		"readiness": "/readiness",
		"liveness":  "/liveness",
		"ui":        "/",
	}
	for _, op := range operations.All() {
		endpoints[op.Name] = "/" + op.Name
	}
	if r.history != nil {
		endpoints["history"] = "/api/v1/history"
	}

	serverInfo := map[string]interface{}{
		"server":      "calculator-service",
		"version":     r.version,
		"api_version": "v1",
		"endpoints":   endpoints,
		"status":      "running",
		"features": map[string]bool{
			"history": r.history != nil,
		},
	}

	response.WriteJSON(w, serverInfo)
}

// handleNotFound handles 404 errors
func (r *Router) handleNotFound(w http.ResponseWriter, req *http.Request) {
	response.WriteNotFound(w, "Endpoint not found", "The requested resource does not exist")
}

// handleMethodNotAllowed handles 405 errors
func (r *Router) handleMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	response.WriteMethodNotAllowed(w, "Method not allowed", "The HTTP method is not supported for this endpoint")
}

// Stop gracefully shuts down router-owned resources.
func (r *Router) Stop(_ context.Context) error {
	if r.history != nil {
		return r.history.Close()
	}
	return nil
}
