package routes

import (
	"net/http"
	"time"

	"github.com/baristalab/drinks-api/app"
	"github.com/baristalab/drinks-api/handlers"
	mw "github.com/baristalab/drinks-api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// Public catalog
	r.Get("/drinks", handlers.ListDrinksHandler(deps))

	// Protected catalog operations, one permission per route
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequirePermission("get:drinks-detail"))
		r.Get("/drinks-detail", handlers.ListDrinksDetailHandler(deps))
	})
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequirePermission("post:drinks"))
		r.Post("/drinks", handlers.CreateDrinkHandler(deps))
	})
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequirePermission("patch:drinks"))
		r.Patch("/drinks/{id}", handlers.UpdateDrinkHandler(deps))
	})
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequirePermission("delete:drinks"))
		r.Delete("/drinks/{id}", handlers.DeleteDrinkHandler(deps))
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":404,"message":"resource not found"}`))
	})

	return r
}
