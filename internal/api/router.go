package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/mvera/storedash/internal/access"
	"github.com/mvera/storedash/internal/api/handlers"
	"github.com/mvera/storedash/internal/api/middleware"
	"github.com/mvera/storedash/internal/auth"
	"github.com/mvera/storedash/internal/catalog"
	"github.com/mvera/storedash/pkg/crypto"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	Encryptor      *crypto.Encryptor
	AsynqClient    *asynq.Client
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow the dashboard
	// dev server by default
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	catalogService := catalog.NewService(cfg.DB, cfg.Logger)
	resolver := access.NewResolver(access.NewGormDirectory(cfg.DB))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	storeHandler := handlers.NewStoreHandler(cfg.DB)
	staffHandler := handlers.NewStaffHandler(cfg.DB, cfg.Encryptor)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	productHandler := handlers.NewProductHandler(cfg.DB)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh-token", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))
			r.Use(middleware.Identity(resolver))

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/stores", storeHandler.ListMine)

			// Store management
			r.Route("/stores/{storeID}", func(r chi.Router) {
				r.Use(middleware.StoreAccess())

				r.Get("/", storeHandler.Get)
				r.With(middleware.RequirePermission(access.PermStoreUpdate)).
					Put("/", storeHandler.Update)

				r.Route("/staff", func(r chi.Router) {
					r.Use(middleware.RequirePermission(access.PermStaffManage))

					r.Get("/", staffHandler.List)
					r.Post("/", staffHandler.Invite)
					r.Put("/{userID}", staffHandler.Update)
					r.Delete("/{userID}", staffHandler.Remove)
				})
			})

			// Category endpoints
			r.Route("/categories/{storeID}/categories", func(r chi.Router) {
				r.Use(middleware.StoreAccess())

				r.Get("/", categoryHandler.List)
				r.With(middleware.RequirePermission(access.PermCategoriesCreate)).
					Post("/", categoryHandler.Create)
				r.With(middleware.RequirePermission(access.PermCategoriesUpdate)).
					Put("/{id}", categoryHandler.Update)
				r.With(middleware.RequirePermission(access.PermCategoriesDelete)).
					Delete("/{id}", categoryHandler.Delete)
				r.With(middleware.RequirePermission(access.PermCategoriesUpdate)).
					Patch("/bulk/reorder", categoryHandler.Reorder)
				r.With(middleware.RequirePermission(access.PermCategoriesDelete)).
					Delete("/bulk/delete", categoryHandler.BulkDelete)
			})

			// Product endpoints
			r.Route("/products/{storeID}/products", func(r chi.Router) {
				r.Use(middleware.StoreAccess())

				r.Get("/", productHandler.List)
				r.With(middleware.RequirePermission(access.PermProductsCreate)).
					Post("/", productHandler.Create)
				r.With(middleware.RequirePermission(access.PermProductsDelete)).
					Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return &Router{r}
}
