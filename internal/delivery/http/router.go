package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront/internal/delivery/http/middleware"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	wishlistHandler *handler.WishlistHandler
	logger          *logger.Logger
	cfg             *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		catalogHandler:  catalogHandler,
		cartHandler:     cartHandler,
		wishlistHandler: wishlistHandler,
		logger:          log,
		cfg:             cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	if rt.cfg.Server.WriteTimeout > 0 {
		r.Use(chimw.Timeout(rt.cfg.Server.WriteTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", rt.catalogHandler.Get)
			r.Get("/categories", rt.catalogHandler.Categories)
			r.Put("/page", rt.catalogHandler.SetPage)
			r.Put("/search", rt.catalogHandler.SetSearch)
			r.Put("/limit", rt.catalogHandler.SetLimit)
			r.Put("/category", rt.catalogHandler.SetCategory)
			r.Put("/sort", rt.catalogHandler.SetSort)
			r.Post("/refresh", rt.catalogHandler.Refresh)
		})

		r.Get("/products/{id}", rt.catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", rt.cartHandler.Get)
			r.Post("/items", rt.cartHandler.AddItem)
			r.Patch("/items/{id}", rt.cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", rt.cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", rt.wishlistHandler.Get)
			r.Post("/toggle", rt.wishlistHandler.Toggle)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
