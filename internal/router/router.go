package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/handler"
	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/menu"
	mw "github.com/kiwari-pos/restaurant/internal/middleware"
	"github.com/kiwari-pos/restaurant/internal/service"
	"github.com/kiwari-pos/restaurant/internal/ws"
)

// Deps are the long-lived components the routes are served from.
type Deps struct {
	Config     *config.Config
	Restaurant *config.Restaurant
	Catalog    *menu.Catalog
	Orders     *service.OrderService
	Hub        *ws.Hub
	Log        *logger.Logger
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	restaurantHandler := handler.NewRestaurantHandler(d.Restaurant, d.Catalog)
	restaurantHandler.RegisterRoutes(r)

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(d.Config.Staff, d.Config.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(d.Hub, d.Config.JWTSecret, d.Log, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(d.Config.JWTSecret))

		restaurantHandler.RegisterManagerRoutes(r)

		orderHandler := handler.NewOrderHandler(d.Orders)
		r.Route("/orders", orderHandler.RegisterRoutes)

		pricingHandler := handler.NewPricingHandler(d.Orders)
		r.Route("/pricing", pricingHandler.RegisterRoutes)
	})

	d.Log.Info("router_init", "router initialized with all handlers")
	return r
}
