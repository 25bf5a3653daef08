package middleware

import (
	"context"
	"net/http"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/services/auth"
)

type contextKey string

const (
	userContextKey contextKey = "user"

	// SessionCookieName is the cookie that carries the session token
	SessionCookieName = "session"
)

// GetUser retrieves the authenticated user from the request context
// Returns nil if no user is authenticated
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// Auth returns middleware that requires authentication
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromSession(r, authService)
			if user == nil {
				http.Redirect(w, r, "/users/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the user in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getUserFromSession(r, authService)
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getUserFromSession(r *http.Request, authService *auth.Service) *model.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := authService.SessionUser(r.Context(), model.SessionID(cookie.Value))
	if err != nil {
		return nil
	}

	return user
}
