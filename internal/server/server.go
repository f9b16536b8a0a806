// Package server wires the chi router: middleware, the admin back-office
// API under /admin/api, and the public storefront API under /api.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cartloom/cartloom/internal/handler"
	"github.com/cartloom/cartloom/internal/server/middleware"
	"github.com/cartloom/cartloom/internal/service"
	"github.com/cartloom/cartloom/internal/store"
	"github.com/cartloom/cartloom/internal/upload"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// PublicRateLimit is requests per minute per IP on the storefront
	// routes. Zero disables the limiter.
	PublicRateLimit int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
		PublicRateLimit: 120,
	}
}

// Server is the top-level HTTP server. It owns the router and the store;
// Close drains requests before the database shuts down.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	uploads    upload.Storage
	localDir   string
	httpServer *http.Server
	logger     *slog.Logger
}

// New wires all routes and middleware and returns a server ready to
// listen. When uploads is a *upload.Local, its directory is served under
// /uploads/.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, uploads upload.Storage, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		uploads: uploads,
		logger:  logger,
	}
	if l, ok := uploads.(*upload.Local); ok {
		s.localDir = l.Dir()
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	adminHandler := handler.NewAdminHandler(s.store, s.authSvc, s.uploads)
	shopHandler := handler.NewStorefrontHandler(s.store, s.authSvc)

	// Back-office API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.cfg.PublicRateLimit > 0 {
				r.Use(middleware.RateLimit(s.cfg.PublicRateLimit))
			}
			r.Post("/session", adminHandler.Login)
			r.Delete("/session", adminHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authSvc))
			r.Use(middleware.RequireRole(service.RoleAdmin))

			r.Get("/me", adminHandler.Me)

			r.Get("/products", adminHandler.ListProducts)
			r.Post("/products", adminHandler.CreateProduct)
			r.Get("/products/{id}", adminHandler.GetProduct)
			r.Put("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
			r.Patch("/products/{id}/status", adminHandler.ToggleProductStatus)

			r.Get("/orders", adminHandler.ListOrders)
			r.Get("/orders/{id}", adminHandler.GetOrder)
			r.Put("/orders/{id}", adminHandler.UpdateOrder)
			r.Patch("/orders/{id}/shipping", adminHandler.UpdateShipping)
			r.Patch("/orders/{id}/status", adminHandler.ToggleOrderStatus)
			r.Delete("/orders/{id}", adminHandler.DeleteOrder)

			r.Get("/customers", adminHandler.ListCustomers)
			r.Patch("/customers/{id}/status", adminHandler.ToggleCustomerStatus)
			r.Delete("/customers/{id}", adminHandler.DeleteCustomer)

			r.Get("/contacts", adminHandler.ListContacts)
			r.Delete("/contacts/{id}", adminHandler.DeleteContact)

			r.Post("/uploads", adminHandler.Upload)
			r.Delete("/uploads", adminHandler.DeleteUpload)
		})
	})

	// Public storefront API.
	r.Route("/api", func(r chi.Router) {
		if s.cfg.PublicRateLimit > 0 {
			r.Use(middleware.RateLimit(s.cfg.PublicRateLimit))
		}

		r.Get("/products", shopHandler.Catalog)
		r.Get("/products/{sku}", shopHandler.ProductBySKU)
		r.Post("/orders", shopHandler.PlaceOrder)
		r.Post("/contact", shopHandler.Contact)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", shopHandler.Register)
			r.Post("/login", shopHandler.Login)
			r.Post("/logout", shopHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.authSvc))
				r.Use(middleware.RequireRole(service.RoleCustomer))
				r.Get("/me", shopHandler.Me)
			})
		})
	})

	// Locally stored product images.
	if s.localDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.localDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the database is
// reachable, 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded","checks":{"database":"error"}}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","checks":{"database":"ok"}}`))
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests before closing the database.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("closing database", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
