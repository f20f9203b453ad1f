// Package middleware holds the layers wrapped around the HTTP handlers.
//
// A middleware is a func(next http.Handler) http.Handler. It does its own
// work (read a token, start a timer), then calls next. Returning without
// calling next stops the request there.
//
// The chain assembled in package main is:
//
//	CORS → RequestLogger → Metrics → mux → UserExtractor → handler
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/bloglist/handlers"
	"github.com/akinalp/bloglist/pkg"
	"github.com/akinalp/bloglist/repository"
	"github.com/akinalp/bloglist/services"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves bearer tokens into users.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// UserExtractor attaches the token's user to the request context.
//
// 1. No "Authorization: Bearer <token>" header: continue anonymously
// 2. Token fails verification: 401, next is not called
// 3. Token valid: load the user, put it in the context, continue
//
// A valid token whose user no longer exists also continues anonymously;
// handlers that need a user answer 401 themselves.
func (m *AuthMiddleware) UserExtractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authService.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			pkg.Error(w, r, err)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				next.ServeHTTP(w, r)
				return
			}
			pkg.Error(w, r, err)
			return
		}

		// The hash has no business travelling with the request.
		user.PasswordHash = ""

		next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
	})
}

// UserExtractorFunc is UserExtractor for a HandlerFunc.
func (m *AuthMiddleware) UserExtractorFunc(next http.HandlerFunc) http.Handler {
	return m.UserExtractor(next)
}
