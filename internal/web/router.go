// Package web wires the HTTP routes, handlers and middleware for the
// server-rendered user account pages.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	appmiddleware "github.com/accountweb/accountweb/internal/middleware"
	"github.com/accountweb/accountweb/internal/services/auth"
	"github.com/accountweb/accountweb/internal/web/handler"
	"github.com/accountweb/accountweb/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := appmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := appmiddleware.Recovery(cfg.Logger, appmiddleware.DefaultPanicHandler)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	homeHandler := handler.NewHomeHandler()
	userHandler := handler.NewUserHandler(cfg.AuthService)

	// Public routes (optional auth for showing the user in the nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/users/register", userHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/users/login", userHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/users/logout", userHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require a valid session)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/users/profile", userHandler.ProfilePage).Methods(http.MethodGet)
	protected.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods(http.MethodPost)
	protected.HandleFunc("/users/password", userHandler.PasswordPage).Methods(http.MethodGet)
	protected.HandleFunc("/users/password", userHandler.UpdatePassword).Methods(http.MethodPost)

	return r
}
