package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fintrackhq/fintrack-be/internal/assistant"
	"github.com/fintrackhq/fintrack-be/internal/auth"
	"github.com/fintrackhq/fintrack-be/internal/charts"
	"github.com/fintrackhq/fintrack-be/internal/config"
	"github.com/fintrackhq/fintrack-be/internal/http/handlers"
	"github.com/fintrackhq/fintrack-be/internal/middleware"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	// Public routes: health, register, login.
	public := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(public)
	authHandler := handlers.NewAuthHandler(store, tokenManager)
	authHandler.Register(public)

	// Authenticated routes: account, transactions, chat, charts.
	protected := http.NewServeMux()
	authHandler.RegisterProtected(protected)
	handlers.NewTransactionHandler(store).Register(protected)
	handlers.NewChatHandler(assistant.New(store)).Register(protected)
	handlers.NewChartHandler(store, charts.NewRenderer()).Register(protected)

	// Admin routes: user management.
	adminMux := http.NewServeMux()
	handlers.NewAdminHandler(store).Register(adminMux)

	root := http.NewServeMux()
	root.Handle("/health", public)
	root.Handle("/register", public)
	root.Handle("/login", public)
	root.Handle("/admin/", middleware.Authenticate(tokenManager, middleware.RequireAdmin(adminMux)))
	root.Handle("/", middleware.Authenticate(tokenManager, protected))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(root))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
