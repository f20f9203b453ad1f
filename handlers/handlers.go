// Package handlers holds the HTTP request handlers.
//
// A handler stays thin:
// 1. Parse the request (path values, JSON body)
// 2. Call the service
// 3. Write the result or the error
//
// Handlers carry no business rules and never touch the database.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akinalp/bloglist/models"
	"github.com/akinalp/bloglist/pkg"
)

// contextKey is the key type for values this package stores in a request
// context. A private type keeps other packages from colliding with it.
type contextKey string

// UserContextKey carries the authenticated *models.User.
// middleware.UserExtractor sets it; it is absent for anonymous requests.
const UserContextKey contextKey = "user"

// WithUser returns ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON parses the body into dst and writes a 400 on failure.
// It reports whether the handler should go on.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
